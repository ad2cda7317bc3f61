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

// compile-time check that *NoteDB implements repository.NoteRepository
var _ repository.NoteRepository = (*NoteDB)(nil)

// NoteDB implements repository.NoteRepository on the shared DB handle.
type NoteDB struct {
	db *DB
}

// Create inserts a new note, filling in the generated id and creation
// timestamp on the caller's struct. EditedAt stays nil until the first
// update.
func (n *NoteDB) Create(ctx context.Context, note *model.Note) error {
	note.ID = n.db.newID()
	note.CreatedAt = time.Now().UTC()
	note.EditedAt = nil

	_, err := n.db.conn.ExecContext(ctx,
		`INSERT INTO notes (id, title, body, created_at, edited_at, user_id)
		 VALUES (?, ?, ?, ?, NULL, ?)`,
		note.ID,
		note.Title,
		note.Body,
		note.CreatedAt,
		note.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting note: %w", err)
	}

	return nil
}

// GetByID retrieves a note by primary key, regardless of owner. Ownership
// is the service layer's concern.
func (n *NoteDB) GetByID(ctx context.Context, id int64) (*model.Note, error) {
	var note model.Note

	err := n.db.conn.GetContext(ctx, &note,
		`SELECT id, title, body, created_at, edited_at, user_id
		 FROM notes WHERE id = ?`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("note", id)
		}
		return nil, fmt.Errorf("sqlite: getting note %d: %w", id, err)
	}

	return &note, nil
}

// ListByUser returns all notes owned by userID, newest first.
func (n *NoteDB) ListByUser(ctx context.Context, userID int64) ([]model.Note, error) {
	notes := []model.Note{}

	err := n.db.conn.SelectContext(ctx, &notes,
		`SELECT id, title, body, created_at, edited_at, user_id
		 FROM notes WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes for user %d: %w", userID, err)
	}

	return notes, nil
}

// Update writes the note's title, body, and edited timestamp. The owning
// user id is deliberately absent from the SET clause — ownership never
// changes after creation.
func (n *NoteDB) Update(ctx context.Context, note *model.Note) error {
	res, err := n.db.conn.ExecContext(ctx,
		`UPDATE notes SET title = ?, body = ?, edited_at = ? WHERE id = ?`,
		note.Title,
		note.Body,
		note.EditedAt,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating note %d: %w", note.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating note %d: %w", note.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("note", note.ID)
	}

	return nil
}

// Delete removes a note row by primary key.
func (n *NoteDB) Delete(ctx context.Context, id int64) error {
	res, err := n.db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting note %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting note %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("note", id)
	}

	return nil
}
