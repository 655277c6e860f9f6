// Package session implements cookie-backed stateless sessions. The session
// payload is a signed JWT stored in an httpOnly cookie; nothing is kept
// server side, so logout simply clears the cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/alijimale/institute-backend/internal/app/models"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// Config defines session behavior.
type Config struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Claims is the payload carried inside the session cookie.
type Claims struct {
	UserID      int64       `json:"userId"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	DisplayName string      `json:"displayName"`
	IsLoggedIn  bool        `json:"isLoggedIn"`
	jwt.RegisteredClaims
}

// Manager issues, reads and clears session cookies.
type Manager struct {
	config Config
}

// NewManager creates a session manager.
func NewManager(config Config) *Manager {
	return &Manager{config: config}
}

// CookieName returns the configured cookie name.
func (m *Manager) CookieName() string {
	return m.config.CookieName
}

// Issue signs a session for the user and sets it as an httpOnly cookie on
// the response.
func (m *Manager) Issue(c *gin.Context, user *models.User) error {
	now := time.Now()
	claims := &Claims{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		DisplayName: user.Name,
		IsLoggedIn:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.MaxAge)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.CookieName, signed, int(m.config.MaxAge.Seconds()), "/", "", m.config.Secure, true)
	return nil
}

// Read extracts and validates the session from the request cookie.
func (m *Manager) Read(c *gin.Context) (*Claims, error) {
	raw, err := c.Cookie(m.config.CookieName)
	if err != nil || raw == "" {
		return nil, ErrNoSession
	}
	return m.Validate(raw)
}

// Validate parses and verifies a raw session token.
func (m *Manager) Validate(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.IsLoggedIn || claims.UserID <= 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.config.CookieName, "", -1, "/", "", m.config.Secure, true)
}
