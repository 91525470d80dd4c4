package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/swifttrack/internal/constants"
	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminActionRequest 管理端动作请求（POST /admin/packages）
type AdminActionRequest struct {
	Action    string `json:"action"`
	ContactID uint   `json:"contact_id"`
}

// HandleAdminAction 按 action 分派管理端动作，目前支持 resolve-contact
func (h *Handler) HandleAdminAction(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body", nil)
		return
	}

	switch strings.TrimSpace(req.Action) {
	case constants.AdminActionResolveContact:
		h.resolveContact(c, principal, req.ContactID)
	default:
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "unknown action", nil)
	}
}

func (h *Handler) resolveContact(c *gin.Context, principal service.Principal, contactID uint) {
	if contactID == 0 {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "contact_id is required", nil)
		return
	}

	if err := h.PackageAdminService.ResolveContact(principal, contactID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, response.CodeNotFound, "contact inquiry not found", nil)
		case errors.Is(err, service.ErrUnauthorized):
			respondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required", nil)
		default:
			respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to resolve contact inquiry", err)
		}
		return
	}

	response.Success(c, "contact inquiry resolved", gin.H{"contact_id": contactID})
}
