package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/auth"
)

func newTestUserService() (*UserService, *mockUserRepo) {
	repo := newMockUserRepo()
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	return NewUserService(repo, passwords, testLogger()), repo
}

func TestUserCreate_HashesPassword(t *testing.T) {
	s, repo := newTestUserService()

	user, err := s.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.Password, "plaintext must never be stored")
	assert.True(t, strings.HasPrefix(stored.Password, "$2"), "stored password should be a bcrypt digest")
}

func TestUserCreate_Validation(t *testing.T) {
	s, _ := newTestUserService()

	tests := []struct {
		name                      string
		username, email, password string
	}{
		{"empty username", "", "a@x.com", "pw"},
		{"empty email", "alice", "", "pw"},
		{"empty password", "alice", "a@x.com", ""},
		{"overlong username", strings.Repeat("u", MaxUsernameLength+1), "a@x.com", "pw"},
		{"overlong password", "alice", "a@x.com", strings.Repeat("p", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestUserCreate_DuplicateConflict(t *testing.T) {
	s, _ := newTestUserService()

	_, err := s.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = s.Create(context.Background(), "alice", "other@x.com", "pw2")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUserUpdateEmail(t *testing.T) {
	s, _ := newTestUserService()

	created, err := s.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	updated, err := s.UpdateEmail(context.Background(), created.ID, "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)
}

func TestUserUpdateUsername(t *testing.T) {
	s, _ := newTestUserService()

	created, err := s.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	updated, err := s.UpdateUsername(context.Background(), created.ID, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
}

func TestUserUpdatePassword(t *testing.T) {
	s, repo := newTestUserService()
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)

	created, err := s.Create(context.Background(), "alice", "a@x.com", "old-pw")
	require.NoError(t, err)

	_, err = s.UpdatePassword(context.Background(), created.ID, "new-pw", "new-pw")
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NoError(t, passwords.Verify(stored.Password, "new-pw"))
	assert.Error(t, passwords.Verify(stored.Password, "old-pw"))
}

func TestUserUpdatePassword_MismatchLeavesHashUnchanged(t *testing.T) {
	s, repo := newTestUserService()

	created, err := s.Create(context.Background(), "alice", "a@x.com", "old-pw")
	require.NoError(t, err)

	before, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = s.UpdatePassword(context.Background(), created.ID, "new-pw", "different-pw")
	assert.ErrorIs(t, err, apperror.ErrPasswordMismatch)

	after, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Password, after.Password)
}

func TestUserDelete(t *testing.T) {
	s, _ := newTestUserService()

	created, err := s.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))

	_, err = s.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
