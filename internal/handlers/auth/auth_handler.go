// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"vms-service/internal/domain/auth"
	"vms-service/internal/middleware"
	"vms-service/internal/pkg/response"
	service "vms-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.Service
}

func NewAuthHandler(authService *service.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid registration payload", err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "registration failed")
		return
	}

	response.Success(c, http.StatusCreated, "account created", user)
}

// Login verifies credentials and issues tokens
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid login payload", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req, clientMeta(c))
	if err != nil {
		response.FromError(c, err, "login failed")
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid refresh payload", err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), &req, clientMeta(c))
	if err != nil {
		response.FromError(c, err, "token refresh failed")
		return
	}

	response.Success(c, http.StatusOK, "token refreshed", result)
}

// Logout revokes the caller's current token
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.authService.Logout(
		c.Request.Context(),
		middleware.MustGetUserID(c),
		middleware.MustGetJTI(c),
		middleware.GetTokenExpiry(c),
	)
	if err != nil {
		response.FromError(c, err, "logout failed")
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// LogoutAll revokes every session the caller holds
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.authService.LogoutAll(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.FromError(c, err, "logout failed")
		return
	}

	response.Success(c, http.StatusOK, "all sessions revoked", nil)
}

// ChangePassword rotates the caller's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid password payload", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.MustGetUserID(c), &req); err != nil {
		response.FromError(c, err, "password change failed")
		return
	}

	response.Success(c, http.StatusOK, "password changed", nil)
}

// Me returns the caller's profile
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "profile lookup failed")
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", user)
}

// UpdateProfile updates the caller's own profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid profile payload", err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err, "profile update failed")
		return
	}

	response.Success(c, http.StatusOK, "profile updated", user)
}

// Sessions lists the caller's active sessions
func (h *AuthHandler) Sessions(c *gin.Context) {
	sessions, err := h.authService.Sessions(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err, "session lookup failed")
		return
	}

	response.Success(c, http.StatusOK, "sessions retrieved", sessions)
}

func clientMeta(c *gin.Context) service.ClientMeta {
	return service.ClientMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Device:    c.GetHeader("X-Device-ID"),
	}
}
