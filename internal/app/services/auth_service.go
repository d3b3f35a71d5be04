package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/auth"
	"github.com/mkaplan/schoolpanel/internal/session"
)

// AccountStore is the subset of the account repository used by services
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Account, error)
}

// AuthService defines login and logout operations
type AuthService interface {
	// Verify checks credentials and returns the account on success.
	Verify(ctx context.Context, username, password string) (*models.Account, error)
	// Login verifies credentials, opens a session and issues a session token.
	Login(ctx context.Context, username, password string) (*models.Account, string, int, error)
	// Logout ends the session; later requests with its token are unauthenticated.
	Logout(ctx context.Context, sessionID string)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	accountRepo  AccountStore
	sessions     session.Store
	tokenService *auth.TokenService
	logger       zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(accountRepo AccountStore, sessions session.Store, tokenService *auth.TokenService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		accountRepo:  accountRepo,
		sessions:     sessions,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Verify checks a username/password pair. Unknown usernames and wrong
// passwords are indistinguishable to the caller. Neither the plaintext nor
// the stored hash is ever logged.
func (s *authServiceImpl) Verify(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error verifying credentials: %w", err)
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return account, nil
}

// Login verifies credentials and binds a new session
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*models.Account, string, int, error) {
	account, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, "", 0, err
	}

	sess, err := s.sessions.Create(account, s.tokenService.SessionExpiry())
	if err != nil {
		return nil, "", 0, fmt.Errorf("error creating session: %w", err)
	}

	token, expiresIn, err := s.tokenService.GenerateSessionToken(account, sess.ID)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return nil, "", 0, fmt.Errorf("error issuing session token: %w", err)
	}

	s.logger.Info().Str("username", account.Username).Str("role", string(account.Role)).Msg("Login successful")
	return account, token, expiresIn, nil
}

// Logout ends the session
func (s *authServiceImpl) Logout(ctx context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
	s.logger.Info().Str("sessionId", sessionID).Msg("Session ended")
}
