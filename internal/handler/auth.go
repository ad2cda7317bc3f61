package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/notes-api/internal/service"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// loginRequest is the login body. The username field carries either the
// email or the username — clients built against OAuth2-style password forms
// send the email under "username", and both are accepted.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin authenticates a user and returns a bearer token.
//
// HTTP: POST /auth/login (also mounted at POST /auth/token)
// Success: 200 {"access_token": "...", "token_type": "bearer"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
