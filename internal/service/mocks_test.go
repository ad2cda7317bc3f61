package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/model"
	"github.com/sakif/notes-api/internal/repository"
)

// Hand-written in-memory fakes for the repository interfaces. Tests get
// microsecond round-trips and full control over stored state without a
// database.

var _ repository.UserRepository = (*mockUserRepo)(nil)

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperror.Conflict("username or email already in use")
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByLogin(_ context.Context, login string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == login || u.Username == login {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFoundMsg("no user with these credentials")
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) UpdateEmail(_ context.Context, id int64, email string) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Email = email
	return nil
}

func (m *mockUserRepo) UpdateUsername(_ context.Context, id int64, username string) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Username = username
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Password = passwordHash
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

var _ repository.NoteRepository = (*mockNoteRepo)(nil)

type mockNoteRepo struct {
	notes  map[int64]*model.Note
	nextID int64
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[int64]*model.Note)}
}

func (m *mockNoteRepo) Create(_ context.Context, note *model.Note) error {
	m.nextID++
	note.ID = m.nextID
	note.CreatedAt = time.Now().UTC()
	note.EditedAt = nil
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id int64) (*model.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, apperror.NotFound("note", id)
	}
	result := *n
	return &result, nil
}

func (m *mockNoteRepo) ListByUser(_ context.Context, userID int64) ([]model.Note, error) {
	result := []model.Note{}
	for _, n := range m.notes {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNoteRepo) Update(_ context.Context, note *model.Note) error {
	if _, ok := m.notes[note.ID]; !ok {
		return apperror.NotFound("note", note.ID)
	}
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.notes[id]; !ok {
		return apperror.NotFound("note", id)
	}
	delete(m.notes, id)
	return nil
}

// testLogger returns a logger that discards everything, keeping test
// output readable.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
