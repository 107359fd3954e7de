// internal/handlers/user/user_handler.go
package user

import (
	"net/http"
	"strconv"

	"vms-service/internal/domain/auth"
	"vms-service/internal/middleware"
	"vms-service/internal/pkg/response"
	service "vms-service/internal/service/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.Service
}

func NewUserHandler(userService *service.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers retrieves accounts, paginated
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.FromError(c, err, "failed to list users")
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", gin.H{
		"users":     users,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetUser retrieves one account
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "user not found")
		return
	}

	response.Success(c, http.StatusOK, "user retrieved", user)
}

// UpdateUserRoles replaces an account's role set
func (h *UserHandler) UpdateUserRoles(c *gin.Context) {
	var req auth.UpdateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid roles payload", err)
		return
	}

	err := h.userService.UpdateRoles(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"), req.Roles)
	if err != nil {
		response.FromError(c, err, "failed to update roles")
		return
	}

	response.Success(c, http.StatusOK, "roles updated", nil)
}

// ActivateUser re-enables an account
func (h *UserHandler) ActivateUser(c *gin.Context) {
	err := h.userService.SetActive(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"), true)
	if err != nil {
		response.FromError(c, err, "failed to activate user")
		return
	}

	response.Success(c, http.StatusOK, "user activated", nil)
}

// DeactivateUser disables an account and revokes its sessions
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	err := h.userService.SetActive(c.Request.Context(), middleware.MustGetUserID(c), c.Param("id"), false)
	if err != nil {
		response.FromError(c, err, "failed to deactivate user")
		return
	}

	response.Success(c, http.StatusOK, "user deactivated", nil)
}
