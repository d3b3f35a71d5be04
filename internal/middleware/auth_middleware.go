package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/app/models/dto"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
	"github.com/mkaplan/schoolpanel/internal/pkg/auth"
	"github.com/mkaplan/schoolpanel/internal/session"
)

// Context keys set by SessionAuth
const (
	ContextAccountID = "accountID"
	ContextUsername  = "username"
	ContextRole      = "role"
	ContextSessionID = "sessionID"
)

// AuthMiddleware gates requests on an authenticated session
type AuthMiddleware struct {
	tokenService *auth.TokenService
	sessions     session.Store
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokenService *auth.TokenService, sessions session.Store) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		sessions:     sessions,
	}
}

// SessionAuth validates the bearer token and requires the session it names to
// still be active. A token that outlives its session (logout) is rejected.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthenticated(c, "Invalid token format")
			return
		}

		claims, err := m.tokenService.ValidateToken(tokenString)
		if err != nil {
			detail := "Invalid token"
			code := dto.ErrorCodeInvalidToken
			if errors.Is(err, apperrors.ErrTokenExpired) {
				detail = "Token has expired"
				code = dto.ErrorCodeExpiredToken
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.NewErrorDetail(code, "Authentication failed").WithDetails(detail)))
			return
		}

		// A valid signature is not enough; the session must still exist
		sess, err := m.sessions.Get(claims.SessionID())
		if err != nil {
			abortUnauthenticated(c, "Session has ended")
			return
		}

		c.Set(ContextAccountID, sess.AccountID)
		c.Set(ContextUsername, sess.Username)
		c.Set(ContextRole, string(sess.Role))
		c.Set(ContextSessionID, sess.ID)

		c.Next()
	}
}

// RoleRequired requires the bound role to be one of the allowed roles.
// SessionAuth must have run first.
func (m *AuthMiddleware) RoleRequired(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortUnauthenticated(c, "No session bound to request")
			return
		}

		roleStr, ok := role.(string)
		if ok {
			for _, a := range allowed {
				if roleStr == string(a) {
					c.Next()
					return
				}
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

func abortUnauthenticated(c *gin.Context, detail string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	errorDetail = errorDetail.WithDetails(detail)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
