package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/notes-api/internal/apperror"
	"github.com/sakif/notes-api/internal/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	repo := newMockUserRepo()
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 20*time.Minute)
	require.NoError(t, err)

	return NewAuthService(repo, tokens, passwords, testLogger()),
		NewUserService(repo, passwords, testLogger())
}

func TestLogin_ByEmail(t *testing.T) {
	authSvc, users := newTestAuthService(t)

	_, err := users.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	result, err := authSvc.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "bearer", result.TokenType)
}

func TestLogin_ByUsername(t *testing.T) {
	authSvc, users := newTestAuthService(t)

	_, err := users.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	result, err := authSvc.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
}

func TestLogin_TokenCarriesIdentity(t *testing.T) {
	authSvc, users := newTestAuthService(t)

	created, err := users.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	result, err := authSvc.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	identity, err := authSvc.tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestLogin_UnknownUser(t *testing.T) {
	authSvc, _ := newTestAuthService(t)

	_, err := authSvc.Login(context.Background(), "nobody@x.com", "pw")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	authSvc, users := newTestAuthService(t)

	_, err := users.Create(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = authSvc.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLogin_EmptyFields(t *testing.T) {
	authSvc, _ := newTestAuthService(t)

	_, err := authSvc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = authSvc.Login(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
