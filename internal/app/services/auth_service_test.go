package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/auth"
	"github.com/mkaplan/schoolpanel/internal/session"
)

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService(auth.TokenConfig{
		SecretKey:  "test-secret",
		Expiration: time.Hour,
		Issuer:     "schoolpanel-test",
	})
}

func seedAccount(t *testing.T, store *fakeAccountStore, username, password string, role models.Role) *models.Account {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	account := &models.Account{Username: username, PasswordHash: hash, Role: role}
	_, err = store.Create(context.Background(), account)
	require.NoError(t, err)
	return account
}

func TestAuthServiceVerify(t *testing.T) {
	store := newFakeAccountStore()
	seedAccount(t, store, "mrsmith", "s3cret", models.RoleTeacher)
	svc := NewAuthService(store, session.NewMemoryStore(), newTestTokenService(), zerolog.Nop())
	ctx := context.Background()

	account, err := svc.Verify(ctx, "mrsmith", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "mrsmith", account.Username)

	// Wrong password and unknown username must be indistinguishable
	_, err = svc.Verify(ctx, "mrsmith", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Verify(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthServiceLoginIssuesValidSessionToken(t *testing.T) {
	store := newFakeAccountStore()
	seedAccount(t, store, "mrsmith", "s3cret", models.RoleTeacher)
	sessions := session.NewMemoryStore()
	tokenService := newTestTokenService()
	svc := NewAuthService(store, sessions, tokenService, zerolog.Nop())

	account, token, expiresIn, err := svc.Login(context.Background(), "mrsmith", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "mrsmith", account.Username)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "mrsmith", claims.Username)

	sess, err := sessions.Get(claims.SessionID())
	require.NoError(t, err)
	assert.Equal(t, account.ID, sess.AccountID)
	assert.Equal(t, models.RoleTeacher, sess.Role)
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	store := newFakeAccountStore()
	seedAccount(t, store, "mrsmith", "s3cret", models.RoleTeacher)
	svc := NewAuthService(store, session.NewMemoryStore(), newTestTokenService(), zerolog.Nop())

	_, _, _, err := svc.Login(context.Background(), "mrsmith", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthServiceLogoutEndsSession(t *testing.T) {
	store := newFakeAccountStore()
	seedAccount(t, store, "mrsmith", "s3cret", models.RoleTeacher)
	sessions := session.NewMemoryStore()
	tokenService := newTestTokenService()
	svc := NewAuthService(store, sessions, tokenService, zerolog.Nop())
	ctx := context.Background()

	_, token, _, err := svc.Login(ctx, "mrsmith", "s3cret")
	require.NoError(t, err)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)

	svc.Logout(ctx, claims.SessionID())

	// The token still validates cryptographically, but its session is gone
	_, err = sessions.Get(claims.SessionID())
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	// Logging out twice is harmless
	svc.Logout(ctx, claims.SessionID())
}
