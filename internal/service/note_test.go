package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/notes-api/internal/apperror"
)

func newTestNoteService() (*NoteService, *mockNoteRepo) {
	repo := newMockNoteRepo()
	return NewNoteService(repo, testLogger()), repo
}

func TestNoteCreate_SetsOwner(t *testing.T) {
	s, _ := newTestNoteService()

	note, err := s.Create(context.Background(), 7, "shopping", "milk, eggs")
	require.NoError(t, err)

	assert.NotZero(t, note.ID)
	assert.Equal(t, int64(7), note.UserID)
	assert.Equal(t, "shopping", note.Title)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Nil(t, note.EditedAt)
}

func TestNoteCreate_RequiresTitle(t *testing.T) {
	s, _ := newTestNoteService()

	_, err := s.Create(context.Background(), 7, "   ", "body")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestNoteCreate_BodyOptional(t *testing.T) {
	s, _ := newTestNoteService()

	note, err := s.Create(context.Background(), 7, "title only", "")
	require.NoError(t, err)
	assert.Empty(t, note.Body)
}

func TestNoteList_OnlyOwnNotes(t *testing.T) {
	s, _ := newTestNoteService()

	_, err := s.Create(context.Background(), 1, "mine", "")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), 2, "theirs", "")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), 1, "also mine", "")
	require.NoError(t, err)

	notes, err := s.List(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, notes, 2)
	for _, n := range notes {
		assert.Equal(t, int64(1), n.UserID)
	}
}

func TestNoteGet_OwnNote(t *testing.T) {
	s, _ := newTestNoteService()

	created, err := s.Create(context.Background(), 1, "mine", "body")
	require.NoError(t, err)

	got, err := s.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestNoteGet_OtherUsersNoteLooksAbsent(t *testing.T) {
	s, _ := newTestNoteService()

	created, err := s.Create(context.Background(), 1, "secret", "")
	require.NoError(t, err)

	// Caller 2 probing caller 1's note gets the same error as probing a
	// nonexistent id.
	_, errOwned := s.Get(context.Background(), 2, created.ID)
	_, errMissing := s.Get(context.Background(), 2, created.ID+1000)

	assert.ErrorIs(t, errOwned, apperror.ErrNotFound)
	assert.ErrorIs(t, errMissing, apperror.ErrNotFound)
}

func TestNoteUpdate_StampsEditedAt(t *testing.T) {
	s, _ := newTestNoteService()

	created, err := s.Create(context.Background(), 1, "before", "old")
	require.NoError(t, err)
	require.Nil(t, created.EditedAt)

	updated, err := s.Update(context.Background(), 1, created.ID, "after", "new")
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "new", updated.Body)
	require.NotNil(t, updated.EditedAt)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestNoteUpdate_CannotChangeOwner(t *testing.T) {
	s, repo := newTestNoteService()

	created, err := s.Create(context.Background(), 1, "title", "")
	require.NoError(t, err)

	_, err = s.Update(context.Background(), 1, created.ID, "new title", "")
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.UserID)
}

func TestNoteUpdate_OtherUsersNote(t *testing.T) {
	s, repo := newTestNoteService()

	created, err := s.Create(context.Background(), 1, "original", "untouched")
	require.NoError(t, err)

	_, err = s.Update(context.Background(), 2, created.ID, "hijacked", "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Title)
}

func TestNoteDelete_OwnNote(t *testing.T) {
	s, _ := newTestNoteService()

	created, err := s.Create(context.Background(), 1, "doomed", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), 1, created.ID))

	_, err = s.Get(context.Background(), 1, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNoteDelete_OtherUsersNote(t *testing.T) {
	s, repo := newTestNoteService()

	created, err := s.Create(context.Background(), 1, "safe", "")
	require.NoError(t, err)

	err = s.Delete(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// Still there.
	_, err = repo.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}
