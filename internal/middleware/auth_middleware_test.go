package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/pkg/session"
)

func testSessions() *session.Manager {
	return session.NewManager(session.Config{
		Secret:     "0123456789abcdef0123456789abcdef",
		CookieName: "aj_session",
		MaxAge:     time.Hour,
	})
}

func sessionRouter(sessions *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authMW := NewAuthMiddleware(sessions)
	router.GET("/protected", authMW.RequireSession(), func(c *gin.Context) {
		p := PrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	return router
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	router := sessionRouter(testSessions())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, w.Body.String())
}

func TestRequireSessionAcceptsValidCookie(t *testing.T) {
	sessions := testSessions()
	router := sessionRouter(sessions)

	// Issue a cookie through the manager the way the login handler does.
	issueRec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(issueRec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	user := &models.User{ID: 9, Email: "sam@school.test", Name: "Sam", Role: models.RoleTeacher}
	require.NoError(t, sessions.Issue(c, user))
	cookies := issueRec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookies[0])
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":9,"role":"TEACHER"}`, w.Body.String())
}

func TestRequireSessionRejectsGarbageCookie(t *testing.T) {
	router := sessionRouter(testSessions())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "aj_session", Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
