package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/model"
	"github.com/sakif/notes-api/internal/repository"
)

const MaxTitleLength = 255

// NoteService handles note CRUD with ownership enforcement.
//
// Every operation takes the caller's user id (resolved from their token by
// the auth middleware) alongside the note id. A note that exists but
// belongs to someone else is reported exactly like a note that doesn't
// exist — the caller can't distinguish "not yours" from "not there", so
// note ids can't be enumerated.
type NoteService struct {
	notes  repository.NoteRepository
	logger *slog.Logger
}

// NewNoteService creates a NoteService.
func NewNoteService(notes repository.NoteRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		notes:  notes,
		logger: logger,
	}
}

// Create saves a new note owned by ownerID. The owner always comes from the
// caller's resolved identity, never from the request body.
func (s *NoteService) Create(ctx context.Context, ownerID int64, title, body string) (*model.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "note title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("note title must be %d characters or less", MaxTitleLength))
	}

	note := &model.Note{
		Title:  title,
		Body:   body,
		UserID: ownerID,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		slog.Int64("noteID", note.ID),
		slog.Int64("userID", ownerID),
	)

	return note, nil
}

// List returns all of the caller's notes and nobody else's.
func (s *NoteService) List(ctx context.Context, ownerID int64) ([]model.Note, error) {
	return s.notes.ListByUser(ctx, ownerID)
}

// Get returns the note with the given id if the caller owns it.
func (s *NoteService) Get(ctx context.Context, ownerID, id int64) (*model.Note, error) {
	return s.getOwned(ctx, ownerID, id)
}

// Update changes a note's title and body and stamps the edited timestamp.
// The owner is immutable; only title, body, and edited_at ever change.
func (s *NoteService) Update(ctx context.Context, ownerID, id int64, title, body string) (*model.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "note title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("note title must be %d characters or less", MaxTitleLength))
	}

	note, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note.Title = title
	note.Body = body
	note.EditedAt = &now

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note updated",
		slog.Int64("noteID", note.ID),
		slog.Int64("userID", ownerID),
	)

	return note, nil
}

// Delete removes the note if the caller owns it.
func (s *NoteService) Delete(ctx context.Context, ownerID, id int64) error {
	note, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		return err
	}

	s.logger.Info("note deleted",
		slog.Int64("noteID", id),
		slog.Int64("userID", ownerID),
	)

	return nil
}

// getOwned fetches a note and verifies the caller owns it. An ownership
// mismatch returns the same not-found error a missing row does.
func (s *NoteService) getOwned(ctx context.Context, ownerID, id int64) (*model.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != ownerID {
		return nil, apperror.NotFound("note", id)
	}
	return note, nil
}
