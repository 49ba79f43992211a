package handler

import (
	"errors"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler sets up the routing dependencies for auth endpoints
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Me)
	}
}

// Register handles POST /auth/register
// @Summary      Register a new account
// @Description  Creates a user, hashes the password and logs the user in immediately
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration payload"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorBody
// @Failure      409      {object}  response.ErrorBody
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Err("Invalid request payload"))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			c.JSON(http.StatusConflict, response.Err("Email already registered"))
			return
		}
		respondError(c, err)
		return
	}

	middleware.SetRefreshCookie(c, result.RefreshToken)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "User created successfully",
		"accessToken": result.AccessToken,
		"user":        result.User,
	})
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Verifies credentials, returns an access token and sets the refresh cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorBody
// @Failure      401      {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Err("Invalid request payload"))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetRefreshCookie(c, result.RefreshToken)

	c.JSON(http.StatusOK, gin.H{"accessToken": result.AccessToken})
}

// Refresh handles POST /auth/refresh
// @Summary      Refresh the access token
// @Description  Mints a new access token from the refresh cookie; the refresh token is not rotated
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	// Missing or invalid cookies all fail the same way: an empty access
	// token, nothing else. The client treats it as "signed out".
	rawToken, err := c.Cookie(middleware.RefreshCookieName)
	if err != nil || rawToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"accessToken": ""})
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"accessToken": ""})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Me handles GET /auth/me
// @Summary      Current user
// @Description  Returns the identity claims from the presented access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  response.ErrorBody
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	// Identity comes from the token, not the database: a changed admin
	// flag shows up only once the access token expires and is refreshed.
	c.JSON(http.StatusOK, gin.H{
		"loggedIn": true,
		"user": gin.H{
			"id":       c.GetString("userID"),
			"name":     c.GetString("userName"),
			"email":    c.GetString("userEmail"),
			"is_admin": c.GetBool("isAdmin"),
		},
	})
}

// Logout handles POST /auth/logout
// @Summary      Log out
// @Description  Clears the refresh cookie; the client discards the access token itself
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
