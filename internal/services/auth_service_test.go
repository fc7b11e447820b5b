package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/storage"
	"github.com/adelr/rolodex-be/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	repo, err := storage.NewFileRepository(filepath.Join(t.TempDir(), "users.json"), models.UserFromDocument)
	require.NoError(t, err)
	return NewAuthService(repo, nil)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "bob", "secret1", "secret1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "bob", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash, "password must be stored hashed")

	authed, err := svc.AuthenticateUser(ctx, "bob", "secret1")
	require.NoError(t, err)
	require.NotNil(t, authed)
	assert.Equal(t, user.ID, authed.ID)

	wrong, err := svc.AuthenticateUser(ctx, "bob", "wrong")
	require.NoError(t, err)
	assert.Nil(t, wrong)
}

func TestAuthenticateNeverExplains(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "bob", "secret1", "secret1", "")
	require.NoError(t, err)

	// Unknown user, bad password and missing input all return plain nil.
	for _, attempt := range []struct{ username, password string }{
		{"nobody", "secret1"},
		{"bob", "nope"},
		{"", "secret1"},
		{"bob", ""},
	} {
		user, err := svc.AuthenticateUser(ctx, attempt.username, attempt.password)
		require.NoError(t, err)
		assert.Nil(t, user)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "bob", "secret1", "secret1", "")
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, "bob", "other12", "other12", "")
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Username already exists", vErr.Message)

	// Duplicate check is case-exact: a different casing registers fine.
	user, err := svc.RegisterUser(ctx, "Bob", "secret1", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Username)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	var vErr *validation.Error

	_, err := svc.RegisterUser(ctx, "ab", "secret1", "secret1", "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Username must be at least 3 characters", vErr.Message)

	_, err = svc.RegisterUser(ctx, "bob", "secret1", "secret2", "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Passwords do not match", vErr.Message)

	_, err = svc.RegisterUser(ctx, "bob", "secret1", "secret1", "bad-email")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Invalid email format", vErr.Message)
}

func TestGetUserByID(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "bob", "secret1", "secret1", "bob@example.com")
	require.NoError(t, err)

	found, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "bob@example.com", found.Email)

	missing, err := svc.GetUserByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
