package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/auth"
	"github.com/sakif/notes-api/internal/model"
	"github.com/sakif/notes-api/internal/repository"
)

const (
	MaxUsernameLength = 64
	MaxEmailLength    = 255
)

// UserService handles account management rules.
//
// Mutations are self-scoped: callers pass the id resolved from their own
// token, never a path parameter, so one user can never edit another. The
// routing layer enforces this by not exposing id-addressed mutation routes.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Create registers a new account. The plaintext password is hashed here and
// discarded — only the digest travels to the repository, so the stored
// record never holds plaintext.
func (s *UserService) Create(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if len(email) > MaxEmailLength {
		return nil, apperror.ValidationFailed("email",
			fmt.Sprintf("email must be %d characters or less", MaxEmailLength))
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Get returns a user by id. Readable by any authenticated caller; only
// mutation is self-scoped.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UpdateEmail changes the caller's email and returns the updated record.
func (s *UserService) UpdateEmail(ctx context.Context, userID int64, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if len(email) > MaxEmailLength {
		return nil, apperror.ValidationFailed("email",
			fmt.Sprintf("email must be %d characters or less", MaxEmailLength))
	}

	if err := s.users.UpdateEmail(ctx, userID, email); err != nil {
		return nil, err
	}

	s.logger.Info("user email updated", slog.Int64("userID", userID))
	return s.users.GetByID(ctx, userID)
}

// UpdateUsername changes the caller's username and returns the updated
// record. Tokens issued before the change keep the old username in their
// subject claim until they expire; ownership checks key on the id claim,
// so nothing breaks.
func (s *UserService) UpdateUsername(ctx context.Context, userID int64, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if len(username) > MaxUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}

	if err := s.users.UpdateUsername(ctx, userID, username); err != nil {
		return nil, err
	}

	s.logger.Info("user username updated", slog.Int64("userID", userID))
	return s.users.GetByID(ctx, userID)
}

// UpdatePassword changes the caller's password. The two copies must match
// before anything is hashed or written — on mismatch the stored hash is
// untouched.
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, password1, password2 string) (*model.User, error) {
	if password1 == "" {
		return nil, apperror.ValidationFailed("password1", "password is required")
	}
	if password1 != password2 {
		return nil, apperror.PasswordMismatch()
	}

	hash, err := s.passwords.Hash(password1)
	if err != nil {
		return nil, apperror.ValidationFailed("password1", err.Error())
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return nil, err
	}

	s.logger.Info("user password updated", slog.Int64("userID", userID))
	return s.users.GetByID(ctx, userID)
}

// Delete removes the caller's account. Their notes are removed with it.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted", slog.Int64("userID", userID))
	return nil
}
