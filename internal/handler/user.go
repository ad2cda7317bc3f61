package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/auth"
	"github.com/sakif/notes-api/internal/model"
	"github.com/sakif/notes-api/internal/service"
)

// UserHandler serves account management endpoints.
//
// Creation is public (you can't hold a token before you have an account).
// Reads require any valid token. Updates and deletion act only on the
// caller's own row — the target id comes from the token, never the path.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateEmailRequest struct {
	Email string `json:"email"`
}

type updateUsernameRequest struct {
	Username string `json:"username"`
}

type updatePasswordRequest struct {
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// userResponse wraps mutation responses: a confirmation message plus the
// resulting record. The model's json tags keep the password hash out.
type userResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// HandleCreate registers a new account.
//
// HTTP: POST /auth/user/create (no auth)
// Success: 200 {"message": ..., "user": {...}}
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Message: "user created successfully",
		User:    user,
	})
}

// HandleGet returns a single user by id.
//
// HTTP: GET /auth/user/{id} (auth)
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "user id must be an integer"))
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleList returns all users.
//
// HTTP: GET /auth/user/list (auth)
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleUpdateEmail changes the caller's email.
//
// HTTP: PUT /auth/user/update/email (auth, self)
// Success: 202
func (h *UserHandler) HandleUpdateEmail(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req updateEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateEmail(r.Context(), identity.ID, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, userResponse{
		Message: "user's email updated successfully",
		User:    user,
	})
}

// HandleUpdateUsername changes the caller's username.
//
// HTTP: PUT /auth/user/update/username (auth, self)
// Success: 202
func (h *UserHandler) HandleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req updateUsernameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateUsername(r.Context(), identity.ID, req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, userResponse{
		Message: "user's username updated successfully",
		User:    user,
	})
}

// HandleUpdatePassword changes the caller's password. The body carries two
// copies of the new plaintext; they must match.
//
// HTTP: PUT /auth/user/update/password (auth, self)
// Success: 202; mismatch: 400
func (h *UserHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdatePassword(r.Context(), identity.ID, req.Password1, req.Password2)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, userResponse{
		Message: "user's password updated successfully",
		User:    user,
	})
}

// HandleDelete removes the caller's account and, via the cascade, their
// notes.
//
// HTTP: DELETE /auth/user/delete (auth, self)
// Success: 204
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.users.Delete(r.Context(), identity.ID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
