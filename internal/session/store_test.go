package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
)

func testAccount() *models.Account {
	return &models.Account{ID: 7, Username: "mrsmith", Role: models.RoleTeacher}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Create(testAccount(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.AccountID)
	assert.Equal(t, "mrsmith", got.Username)
	assert.Equal(t, models.RoleTeacher, got.Role)
}

func TestMemoryStoreSessionIDsAreUnique(t *testing.T) {
	store := NewMemoryStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess, err := store.Create(testAccount(), time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}

func TestMemoryStoreGetUnknownID(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("no-such-session")
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMemoryStoreExpiredSessionIsGone(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Create(testAccount(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	// Still gone on a second lookup
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Create(testAccount(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	store.Delete(sess.ID)

	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	// Deleting an unknown id is a no-op
	store.Delete("no-such-session")
}
