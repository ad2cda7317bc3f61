// Package server wires the application together: it owns the database
// handle, builds the service and handler graph, and maps routes to
// handlers. This is the composition root — dependencies are constructed
// here and nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/notes-api/internal/auth"
	"github.com/sakif/notes-api/internal/handler"
	"github.com/sakif/notes-api/internal/middleware"
	sqliteRepo "github.com/sakif/notes-api/internal/repository/sqlite"
	"github.com/sakif/notes-api/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port           int
	DBPath         string
	JWTSecret      string
	AccessTokenTTL time.Duration // lifetime of issued bearer tokens
	SnowflakeNode  int64         // id-generation node, distinct per process
	BcryptCost     int           // 0 means the production default
}

// Server owns the router and the database connection. The connection pool
// is acquired once here and scoped per request by database/sql; handlers
// never open or close connections themselves.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency chain:
// DB → repositories → services → handlers → routes.
// Each layer receives interfaces or services, not the layers beneath them.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath, cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes builds the middleware stack and the route table.
//
// Route map:
//
//	POST   /auth/user/create           public  200 created user
//	POST   /auth/login | /auth/token   public  200 {access_token, token_type}
//	GET    /auth/user/list             auth    200 [users]
//	GET    /auth/user/{id}             auth    200 user
//	PUT    /auth/user/update/email     auth    202 (self)
//	PUT    /auth/user/update/username  auth    202 (self)
//	PUT    /auth/user/update/password  auth    202 (self), 400 on mismatch
//	DELETE /auth/user/delete           auth    204 (self)
//	POST   /note/create                auth    201 note
//	GET    /note/list                  auth    200 {notes}
//	GET    /note/{id}                  auth    200 note
//	PUT    /note/update/{id}           auth    202 note
//	DELETE /note/delete/{id}           auth    204
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	passwords := auth.NewPasswordService()
	if s.config.BcryptCost > 0 {
		passwords = auth.NewPasswordServiceWithCost(s.config.BcryptCost)
	}

	users := s.db.Users()
	notes := s.db.Notes()

	authService := service.NewAuthService(users, tokens, passwords, s.logger)
	userService := service.NewUserService(users, passwords, s.logger)
	noteService := service.NewNoteService(notes, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	noteHandler := handler.NewNoteHandler(noteService, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/auth", func(r chi.Router) {
		// Public: account creation and login must be reachable without a
		// token — you can't authenticate before you exist.
		r.Post("/user/create", userHandler.HandleCreate)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/token", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/user/list", userHandler.HandleList)
			r.Get("/user/{id}", userHandler.HandleGet)
			r.Put("/user/update/email", userHandler.HandleUpdateEmail)
			r.Put("/user/update/username", userHandler.HandleUpdateUsername)
			r.Put("/user/update/password", userHandler.HandleUpdatePassword)
			r.Delete("/user/delete", userHandler.HandleDelete)
		})
	})

	s.router.Route("/note", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/create", noteHandler.HandleCreate)
		r.Get("/list", noteHandler.HandleList)
		r.Get("/{id}", noteHandler.HandleGet)
		r.Put("/update/{id}", noteHandler.HandleUpdate)
		r.Delete("/delete/{id}", noteHandler.HandleDelete)
	})

	return nil
}

// Handler exposes the router, mainly for tests that drive the full stack
// without a listening socket.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Only needed when the server is used without
// Start (tests); Start closes it on the way out.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
