package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alijimale/institute-backend/internal/app/models/dto"
	"github.com/alijimale/institute-backend/internal/app/services"
	"github.com/alijimale/institute-backend/internal/middleware"
	"github.com/alijimale/institute-backend/internal/pkg/session"
)

// AuthController handles registration, login and session endpoints
type AuthController struct {
	authService services.AuthService
	sessions    *session.Manager
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *session.Manager) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
	}
}

// Register handles account creation
// @Summary Register a new account
// @Description Creates a staff account and starts a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account information"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} dto.MessageResponse "Invalid request data"
// @Failure 409 {object} dto.MessageResponse "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	user, err := c.authService.Register(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessions.Issue(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    dto.FromUser(user),
	})
}

// Login handles credential verification
// @Summary Log in
// @Description Verifies credentials and starts a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse "Logged in"
// @Failure 401 {object} dto.MessageResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request data"))
		return
	}

	user, err := c.authService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessions.Issue(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Logged in successfully",
		User:    dto.FromUser(user),
	})
}

// Logout clears the session cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessions.Clear(ctx)
	ctx.JSON(http.StatusOK, dto.OK("Logged out"))
}

// Session reports the current session state
// @Summary Inspect the current session
// @Description Returns the logged-in user, or isLoggedIn false without one
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse "Session state"
// @Router /auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	claims, err := c.sessions.Read(ctx)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.SessionResponse{Success: true, IsLoggedIn: false})
		return
	}

	// Refresh from storage so a deleted account doesn't keep a live session.
	user, err := c.authService.GetUserByID(ctx, claims.UserID)
	if err != nil {
		c.sessions.Clear(ctx)
		ctx.JSON(http.StatusOK, dto.SessionResponse{Success: true, IsLoggedIn: false})
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionResponse{
		Success:    true,
		IsLoggedIn: true,
		User:       dto.FromUser(user),
	})
}
