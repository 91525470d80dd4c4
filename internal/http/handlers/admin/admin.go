package admin

import (
	"errors"
	"net/http"

	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "username and password are required", nil)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, "login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "old and new passwords are required", nil)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "old password is incorrect", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "new password must be at least 8 characters", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, response.CodeNotFound, "admin not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to change password", err)
		}
		return
	}

	response.Success(c, "password changed", nil)
}
