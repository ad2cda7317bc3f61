// Package repository declares the storage interfaces the service layer
// depends on. Services program against these interfaces, never against a
// concrete database type, so tests can substitute in-memory fakes and the
// backend can change without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/notes-api/internal/model"
)

// UserRepository stores and retrieves user accounts.
type UserRepository interface {
	// Create inserts a new user, assigning ID and CreatedAt on the passed
	// struct. Returns a conflict error if username or email is taken.
	Create(ctx context.Context, user *model.User) error

	// GetByID returns the user with the given id, or a not-found error.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByLogin returns the user whose email or username equals login.
	GetByLogin(ctx context.Context, login string) (*model.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]model.User, error)

	// UpdateEmail, UpdateUsername, and UpdatePassword each change a single
	// column on the row with the given id. UpdatePassword takes an already
	// hashed digest — plaintext never reaches this layer.
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// Delete removes the user row. The user's notes go with it via the
	// foreign key cascade.
	Delete(ctx context.Context, id int64) error
}

// NoteRepository stores and retrieves notes.
//
// Ownership is not enforced here — GetByID returns any note by primary key.
// The service layer owns the "is this yours" decision so the anti-enumeration
// policy (mismatch looks like absence) lives in exactly one place.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	GetByID(ctx context.Context, id int64) (*model.Note, error)

	// ListByUser returns all notes owned by userID, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Note, error)

	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id int64) error
}
