package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/app/services"
	"github.com/omniafit/omnia-backend/internal/middleware"
	"github.com/omniafit/omnia-backend/internal/pkg/auth"
)

// AuthController handles the admin login gate.
type AuthController struct {
	authService  services.AuthService
	jwtService   *auth.JWTService
	secureCookie bool
}

// NewAuthController creates a new AuthController. secureCookie should be
// true in production so the session cookie is HTTPS-only.
func NewAuthController(authService services.AuthService, jwtService *auth.JWTService, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		jwtService:   jwtService,
		secureCookie: secureCookie,
	}
}

// Login validates credentials and sets the session cookie
// @Summary Admin login
// @Description Validates the configured admin credentials and sets the httpOnly session cookie
// @Tags auth
// @Accept json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 204 "Session cookie set"
// @Failure 400 {object} dto.ErrorResponse "Missing credentials"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ReasonInvalidArgument, "username and password are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, err := c.authService.Login(req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	maxAge := int(c.jwtService.SessionDuration().Seconds())
	ctx.SetSameSite(c.sameSite())
	ctx.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", c.secureCookie, true)
	ctx.Status(http.StatusNoContent)
}

// Logout clears the session cookie
// @Summary Admin logout
// @Tags auth
// @Success 204 "Session cookie cleared"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(c.sameSite())
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", c.secureCookie, true)
	ctx.Status(http.StatusNoContent)
}

// Me describes the authenticated session
// @Summary Current session
// @Description Returns the principal behind the session cookie
// @Tags auth
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.SessionResponse "Session details"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SessionResponse{
		User: ctx.GetString(middleware.ContextUserKey),
		Role: ctx.GetString(middleware.ContextRoleKey),
	})
}

// sameSite picks the cookie policy: None for cross-origin production
// deployments, Lax for local development.
func (c *AuthController) sameSite() http.SameSite {
	if c.secureCookie {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
