package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/model"
	"github.com/sakif/notes-api/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB implements repository.UserRepository on the shared DB handle.
type UserDB struct {
	db *DB
}

// Create inserts a new user. The caller's struct is filled in with the
// generated id and creation timestamp. Duplicate usernames or emails
// surface as a conflict error rather than a raw constraint failure.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.ID = u.db.newID()
	user.CreatedAt = time.Now().UTC()

	_, err := u.db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("username or email already in use")
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by primary key.
func (u *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User

	err := u.db.conn.GetContext(ctx, &user,
		`SELECT id, username, email, password, created_at
		 FROM users WHERE id = ?`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return &user, nil
}

// GetByLogin retrieves a user by email or username. Login forms send a
// single identifier field, so both columns are matched.
func (u *UserDB) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User

	err := u.db.conn.GetContext(ctx, &user,
		`SELECT id, username, email, password, created_at
		 FROM users WHERE email = ? OR username = ?`,
		login, login,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundMsg("no user with these credentials")
		}
		return nil, fmt.Errorf("sqlite: getting user by login: %w", err)
	}

	return &user, nil
}

// List returns all users, oldest first.
func (u *UserDB) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}

	err := u.db.conn.SelectContext(ctx, &users,
		`SELECT id, username, email, password, created_at
		 FROM users ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}

	return users, nil
}

// UpdateEmail changes a user's email address.
func (u *UserDB) UpdateEmail(ctx context.Context, id int64, email string) error {
	return u.updateColumn(ctx, id, "email", email)
}

// UpdateUsername changes a user's username.
func (u *UserDB) UpdateUsername(ctx context.Context, id int64, username string) error {
	return u.updateColumn(ctx, id, "username", username)
}

// UpdatePassword stores a new password hash. The value must already be a
// bcrypt digest — hashing happens in the service layer.
func (u *UserDB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return u.updateColumn(ctx, id, "password", passwordHash)
}

// updateColumn updates a single users column by id. The column name comes
// only from the fixed callers above, never from input.
func (u *UserDB) updateColumn(ctx context.Context, id int64, column, value string) error {
	res, err := u.db.conn.ExecContext(ctx,
		fmt.Sprintf(`UPDATE users SET %s = ? WHERE id = ?`, column),
		value, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(column + " already in use")
		}
		return fmt.Errorf("sqlite: updating user %s: %w", column, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", column, err)
	}
	if affected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}

// Delete removes a user row. Their notes are removed by the foreign key
// cascade in the same statement's transaction.
func (u *UserDB) Delete(ctx context.Context, id int64) error {
	res, err := u.db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}
