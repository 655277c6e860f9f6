package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alijimale/institute-backend/internal/app/models"
	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/pkg/apperrors"
	"github.com/alijimale/institute-backend/internal/pkg/session"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.user, s.err
}

func authTestSessions() *session.Manager {
	return session.NewManager(session.Config{
		Secret:     "0123456789abcdef0123456789abcdef",
		CookieName: "aj_session",
		MaxAge:     time.Hour,
	})
}

func authRouter(svc *stubAuthService, sessions *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := NewAuthController(svc, sessions)
	router.POST("/auth/register", ctrl.Register)
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/logout", ctrl.Logout)
	router.GET("/auth/session", ctrl.Session)
	return router
}

func staffUser() *models.User {
	return &models.User{ID: 4, Email: "sam@school.test", Name: "Sam", Role: models.RoleTeacher}
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	router := authRouter(&stubAuthService{user: staffUser()}, authTestSessions())

	body := `{"email":"sam@school.test","name":"Sam","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"sam@school.test"`)
	assert.NotContains(t, w.Body.String(), "passwordHash")
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, "aj_session", w.Result().Cookies()[0].Name)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := authRouter(&stubAuthService{err: apperrors.ErrInvalidCredentials}, authTestSessions())

	body := `{"email":"sam@school.test","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestSessionWithoutCookie(t *testing.T) {
	router := authRouter(&stubAuthService{user: staffUser()}, authTestSessions())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isLoggedIn":false`)
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := authTestSessions()
	svc := &stubAuthService{user: staffUser()}
	router := authRouter(svc, sessions)

	// Log in to obtain the cookie.
	body := `{"email":"sam@school.test","password":"secret1"}`
	loginReq := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookies := loginRec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(cookies[0])
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isLoggedIn":true`)
	assert.Contains(t, w.Body.String(), `"name":"Sam"`)
}

func TestSessionClearsCookieForDeletedAccount(t *testing.T) {
	sessions := authTestSessions()
	router := authRouter(&stubAuthService{user: staffUser()}, sessions)

	body := `{"email":"sam@school.test","password":"secret1"}`
	loginReq := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)
	cookies := loginRec.Result().Cookies()
	require.Len(t, cookies, 1)

	// The account vanishes between login and the session check.
	deletedRouter := authRouter(&stubAuthService{err: apperrors.ErrUnauthorized}, sessions)
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(cookies[0])
	w := httptest.NewRecorder()
	deletedRouter.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isLoggedIn":false`)
}

func TestLogoutClearsCookie(t *testing.T) {
	router := authRouter(&stubAuthService{}, authTestSessions())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}
