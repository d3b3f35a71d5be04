package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/auth"
)

// fakeAccountStore is an in-memory AccountStore for service tests
type fakeAccountStore struct {
	accounts map[int64]*models.Account
	nextID   int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[int64]*models.Account)}
}

func (f *fakeAccountStore) Create(_ context.Context, account *models.Account) (int64, error) {
	for _, existing := range f.accounts {
		if existing.Username == account.Username {
			return 0, apperrors.ErrDuplicateUsername
		}
	}
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = account
	return account.ID, nil
}

func (f *fakeAccountStore) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (f *fakeAccountStore) GetByID(_ context.Context, id int64) (*models.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeAccountStore) Delete(_ context.Context, id int64) error {
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountStore) List(_ context.Context) ([]*models.Account, error) {
	ids := make([]int64, 0, len(f.accounts))
	for id := range f.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts := make([]*models.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, f.accounts[id])
	}
	return accounts, nil
}

func TestAccountServiceCreate(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store)

	account, err := svc.Create(context.Background(), "mrsmith", "s3cret", models.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, "mrsmith", account.Username)
	assert.Equal(t, models.RoleTeacher, account.Role)

	// The stored value must be a hash, never the plaintext
	assert.NotEqual(t, "s3cret", account.PasswordHash)
	assert.True(t, auth.CheckPassword(account.PasswordHash, "s3cret"))
}

func TestAccountServiceCreateValidation(t *testing.T) {
	svc := NewAccountService(newFakeAccountStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "pw", models.RoleTeacher)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, "   ", "pw", models.RoleTeacher)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, "someone", "", models.RoleTeacher)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, "someone", "pw", models.Role("janitor"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAccountServiceCreateDuplicateUsername(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, "mrsmith", "pw1", models.RoleTeacher)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "mrsmith", "pw2", models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAccountServiceDelete(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store)
	ctx := context.Background()

	account, err := svc.Create(ctx, "mrsmith", "pw", models.RoleTeacher)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, account.ID))

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAccountServiceDeleteUnknownIDIsNoOp(t *testing.T) {
	svc := NewAccountService(newFakeAccountStore())

	assert.NoError(t, svc.Delete(context.Background(), 999))
}

func TestAccountServiceDeleteProtectedAdminIsNoOp(t *testing.T) {
	store := newFakeAccountStore()
	svc := NewAccountService(store)
	ctx := context.Background()

	admin, err := svc.Create(ctx, models.ProtectedAdminUsername, "admin", models.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin.ID))

	// The admin account must survive deletion attempts
	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, models.ProtectedAdminUsername, accounts[0].Username)
}
