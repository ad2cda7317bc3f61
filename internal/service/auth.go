// Package service contains the business logic layer.
//
// Services sit between HTTP handlers and repositories: handlers parse
// requests and write responses, services enforce the rules (validation,
// credential checks, ownership), repositories run the SQL. Services return
// apperror values, never HTTP status codes — the translation happens once,
// at the boundary.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/auth"
	"github.com/sakif/notes-api/internal/repository"
)

// AuthService handles password login and token issuance.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginResult is what a successful login yields: the compact signed token
// and the scheme the client should present it with.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates a user by email or username plus plaintext password.
//
// Failure modes are distinct on purpose: an unknown identifier is a
// not-found, a wrong password for a known user is invalid credentials.
// On success a bearer token with the configured TTL is issued; nothing is
// stored server-side.
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, apperror.ValidationFailed("username", "username or email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		s.logger.Info("login rejected", slog.Int64("userID", user.ID))
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.Username, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
