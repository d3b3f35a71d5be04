package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/dberrors"
)

// AccountRepository handles account database operations
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// Create inserts a new account. Username uniqueness is enforced by the
// accounts_username_key constraint; a violation maps to ErrDuplicateUsername.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id`,
		account.Username, account.PasswordHash, account.Role).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("error creating account: %w", err)
	}

	account.ID = id
	return id, nil
}

// GetByUsername retrieves an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE username = $1`,
		username).Scan(
		&account.ID, &account.Username, &account.PasswordHash, &account.Role, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE id = $1`,
		id).Scan(
		&account.ID, &account.Username, &account.PasswordHash, &account.Role, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}

// UsernameExists checks if a username is already taken
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`,
		username).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}

	return exists, nil
}

// Delete removes an account by ID. The protected admin username is skipped at
// the database level so no request path can remove it.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM accounts
		WHERE id = $1 AND username <> $2`,
		id, models.ProtectedAdminUsername)

	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	return nil
}

// List retrieves all accounts ordered by creation
func (r *AccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Role, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}

	return accounts, nil
}
