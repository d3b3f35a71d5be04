package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/auth"
	"github.com/mkaplan/schoolpanel/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	router       *gin.Engine
	tokenService *auth.TokenService
	sessions     *session.MemoryStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tokenService := auth.NewTokenService(auth.TokenConfig{
		SecretKey:  "test-secret",
		Expiration: time.Hour,
		Issuer:     "schoolpanel-test",
	})
	sessions := session.NewMemoryStore()
	mw := NewAuthMiddleware(tokenService, sessions)

	router := gin.New()
	router.GET("/protected", mw.SessionAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username":  c.GetString(ContextUsername),
			"role":      c.GetString(ContextRole),
			"sessionId": c.GetString(ContextSessionID),
		})
	})
	router.GET("/admin-only", mw.SessionAuth(), mw.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return &authFixture{router: router, tokenService: tokenService, sessions: sessions}
}

// loginAs opens a session and returns a token bound to it
func (f *authFixture) loginAs(t *testing.T, role models.Role) (string, *session.Session) {
	t.Helper()

	account := &models.Account{ID: 1, Username: "someone", Role: role}
	sess, err := f.sessions.Create(account, time.Now().Add(time.Hour))
	require.NoError(t, err)

	token, _, err := f.tokenService.GenerateSessionToken(account, sess.ID)
	require.NoError(t, err)
	return token, sess
}

func (f *authFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuthMissingHeader(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.get("/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthGarbageToken(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.get("/protected", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthValidSession(t *testing.T) {
	f := newAuthFixture(t)
	token, sess := f.loginAs(t, models.RoleTeacher)

	rec := f.get("/protected", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "someone")
	assert.Contains(t, rec.Body.String(), sess.ID)
}

func TestSessionAuthRejectsRevokedSession(t *testing.T) {
	f := newAuthFixture(t)
	token, sess := f.loginAs(t, models.RoleTeacher)

	// Token works while the session lives
	assert.Equal(t, http.StatusOK, f.get("/protected", token).Code)

	// After logout the same token must be rejected
	f.sessions.Delete(sess.ID)
	assert.Equal(t, http.StatusUnauthorized, f.get("/protected", token).Code)
}

func TestSessionAuthRejectsExpiredToken(t *testing.T) {
	f := newAuthFixture(t)

	expiredService := auth.NewTokenService(auth.TokenConfig{
		SecretKey:  "test-secret",
		Expiration: -time.Minute,
	})
	account := &models.Account{ID: 1, Username: "someone", Role: models.RoleTeacher}
	sess, err := f.sessions.Create(account, time.Now().Add(time.Hour))
	require.NoError(t, err)
	token, _, err := expiredService.GenerateSessionToken(account, sess.ID)
	require.NoError(t, err)

	rec := f.get("/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestRoleRequired(t *testing.T) {
	f := newAuthFixture(t)

	adminToken, _ := f.loginAs(t, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, f.get("/admin-only", adminToken).Code)

	teacherToken, _ := f.loginAs(t, models.RoleTeacher)
	assert.Equal(t, http.StatusForbidden, f.get("/admin-only", teacherToken).Code)

	studentToken, _ := f.loginAs(t, models.RoleStudent)
	assert.Equal(t, http.StatusForbidden, f.get("/admin-only", studentToken).Code)
}
