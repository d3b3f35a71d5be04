package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/auth"
)

// AccountService defines account administration operations
type AccountService interface {
	Create(ctx context.Context, username, password string, role models.Role) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Account, error)
}

// accountServiceImpl implements the AccountService interface
type accountServiceImpl struct {
	accountRepo AccountStore
}

// NewAccountService creates a new account service instance
func NewAccountService(accountRepo AccountStore) AccountService {
	return &accountServiceImpl{
		accountRepo: accountRepo,
	}
}

// Create stores a new account with a freshly computed password hash
func (s *accountServiceImpl) Create(ctx context.Context, username, password string, role models.Role) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	if _, err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

// Delete removes an account. Unknown ids and the protected admin account are
// silent no-ops.
func (s *accountServiceImpl) Delete(ctx context.Context, id int64) error {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("error deleting account: %w", err)
	}

	if account.Username == models.ProtectedAdminUsername {
		return nil
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	return nil
}

// List retrieves all accounts
func (s *accountServiceImpl) List(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return accounts, nil
}
