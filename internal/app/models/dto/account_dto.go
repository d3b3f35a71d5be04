package dto

import "github.com/mkaplan/schoolpanel/internal/app/models"

// CreateAccountRequest represents an admin account-creation request
type CreateAccountRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=admin teacher student"`
}

// AccountResponse represents account information without credentials
type AccountResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"jdoe"`
	Role     string `json:"role" example:"teacher"`
}

// NewAccountResponse maps an account model to its external representation.
// The password hash never crosses this boundary.
func NewAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID,
		Username: account.Username,
		Role:     string(account.Role),
	}
}

// NewAccountResponseList maps a slice of accounts
func NewAccountResponseList(accounts []*models.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewAccountResponse(a))
	}
	return out
}
