package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alijimale/institute-backend/internal/app/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testManager(maxAge time.Duration) *Manager {
	return NewManager(Config{
		Secret:     testSecret,
		CookieName: "aj_session",
		MaxAge:     maxAge,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    7,
		Email: "jane@school.test",
		Name:  "Jane Doe",
		Role:  models.RoleManager,
	}
}

// issueCookie runs Issue on a throwaway response and returns the cookie.
func issueCookie(t *testing.T, m *Manager) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	require.NoError(t, m.Issue(c, testUser()))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestIssueSetsHTTPOnlyCookie(t *testing.T) {
	m := testManager(time.Hour)

	cookie := issueCookie(t, m)

	assert.Equal(t, "aj_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
}

func TestReadRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := testManager(time.Hour)
	cookie := issueCookie(t, m)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/students", nil)
	c.Request.AddCookie(cookie)

	claims, err := m.Read(c)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jane@school.test", claims.Email)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, "Jane Doe", claims.DisplayName)
	assert.True(t, claims.IsLoggedIn)
}

func TestReadMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := testManager(time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/students", nil)

	_, err := m.Read(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	m := testManager(time.Hour)
	cookie := issueCookie(t, m)

	tampered := cookie.Value + "xx"
	_, err := m.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	cookie := issueCookie(t, m)

	other := NewManager(Config{
		Secret:     "ffffffffffffffffffffffffffffffff",
		CookieName: "aj_session",
		MaxAge:     time.Hour,
	})
	_, err := other.Validate(cookie.Value)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := testManager(-time.Minute)
	cookie := issueCookie(t, m)

	_, err := m.Validate(cookie.Value)
	assert.ErrorIs(t, err, ErrExpiredSession)
}

func TestClearExpiresCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := testManager(time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	m.Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
