package admin

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/swifttrack/internal/constants"
	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/service"
	"github.com/swifttrack/internal/validation"

	"github.com/gin-gonic/gin"
)

// PackageFields 创建/更新共用的包裹字段。
// 更新场景下全部为指针，缺省字段保持原值。
type PackageFields struct {
	Status            *string       `json:"status"`
	CurrentLocation   *string       `json:"current_location"`
	Destination       *string       `json:"destination"`
	CustomerName      *string       `json:"customer_name"`
	CustomerEmail     *string       `json:"customer_email"`
	DeclaredValue     *models.Money `json:"declared_value"`
	EstimatedDelivery *string       `json:"estimated_delivery"`
	Notes             *string       `json:"notes"`
}

// CreatePackageRequest 创建包裹请求
type CreatePackageRequest struct {
	TrackingNumber string `json:"tracking_number"`
	PackageFields
}

// UpdatePackageRequest 更新包裹请求，action 决定创建或更新
type UpdatePackageRequest struct {
	Action         string `json:"action"`
	TrackingNumber string `json:"tracking_number"`
	PackageFields
}

// CreatePackage 创建包裹，运单号缺省时自动生成
func (h *Handler) CreatePackage(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body", nil)
		return
	}

	h.createPackage(c, principal, req.TrackingNumber, req.PackageFields)
}

// UpdatePackage 按 action 分派：create 走创建流程，update 走部分更新
func (h *Handler) UpdatePackage(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body", nil)
		return
	}

	switch strings.TrimSpace(req.Action) {
	case constants.AdminActionCreate:
		h.createPackage(c, principal, req.TrackingNumber, req.PackageFields)
	case constants.AdminActionUpdate:
		h.updatePackage(c, principal, req.TrackingNumber, req.PackageFields)
	default:
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "unknown action", nil)
	}
}

// ListPackages 列表查询：?type=packages 返回包裹，?type=contacts 返回联系咨询
func (h *Handler) ListPackages(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		return
	}

	listType := strings.TrimSpace(c.DefaultQuery("type", constants.AdminListTypePackages))
	switch listType {
	case constants.AdminListTypePackages:
		packages, err := h.PackageAdminService.ListPackages(principal)
		if err != nil {
			respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to list packages", err)
			return
		}
		response.Success(c, "packages listed", gin.H{"packages": packages})
	case constants.AdminListTypeContacts:
		contacts, err := h.PackageAdminService.ListContacts(principal)
		if err != nil {
			respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to list contact inquiries", err)
			return
		}
		response.Success(c, "contact inquiries listed", gin.H{"contacts": contacts})
	default:
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "unknown list type", nil)
	}
}

func (h *Handler) createPackage(c *gin.Context, principal service.Principal, trackingNumber string, fields PackageFields) {
	result := validation.ValidateForm(map[string]interface{}{
		"current_location": stringValue(fields.CurrentLocation),
		"destination":      stringValue(fields.Destination),
	}, validation.Schema{
		{Name: "current_location", Rules: []validation.Rule{validation.Required("Current location is required")}},
		{Name: "destination", Rules: []validation.Rule{validation.Required("Destination is required")}},
	})
	if !result.IsValid() {
		response.ValidationFailed(c, result.AllErrors()[0], result.FieldErrors())
		return
	}

	estimated, err := parseEstimatedDelivery(fields.EstimatedDelivery)
	if err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "estimated_delivery must be a date (YYYY-MM-DD)", nil)
		return
	}

	input := service.CreatePackageInput{
		TrackingNumber:    trackingNumber,
		Status:            models.PackageStatus(stringValue(fields.Status)),
		CurrentLocation:   stringValue(fields.CurrentLocation),
		Destination:       stringValue(fields.Destination),
		CustomerName:      stringValue(fields.CustomerName),
		CustomerEmail:     stringValue(fields.CustomerEmail),
		DeclaredValue:     fields.DeclaredValue,
		EstimatedDelivery: estimated,
		Notes:             stringValue(fields.Notes),
	}

	pkg, err := h.PackageAdminService.CreatePackage(principal, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateTrackingNumber):
			respondError(c, http.StatusConflict, response.CodeConflict, "tracking number already exists", nil)
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid package status", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid package fields", nil)
		case errors.Is(err, service.ErrUnauthorized):
			respondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required", nil)
		default:
			respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to create package", err)
		}
		return
	}

	response.Created(c, "Package created", gin.H{"package": pkg})
}

func (h *Handler) updatePackage(c *gin.Context, principal service.Principal, trackingNumber string, fields PackageFields) {
	if strings.TrimSpace(trackingNumber) == "" {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "tracking_number is required", nil)
		return
	}

	estimated, err := parseEstimatedDelivery(fields.EstimatedDelivery)
	if err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "estimated_delivery must be a date (YYYY-MM-DD)", nil)
		return
	}

	update := service.PackageUpdate{
		CurrentLocation:   fields.CurrentLocation,
		Destination:       fields.Destination,
		CustomerName:      fields.CustomerName,
		CustomerEmail:     fields.CustomerEmail,
		DeclaredValue:     fields.DeclaredValue,
		EstimatedDelivery: estimated,
		Notes:             fields.Notes,
	}
	if fields.Status != nil {
		status := models.PackageStatus(strings.TrimSpace(*fields.Status))
		update.Status = &status
	}

	pkg, err := h.PackageAdminService.UpdatePackage(principal, trackingNumber, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, response.CodeNotFound, "Package not found", nil)
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid package status", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid package fields", nil)
		case errors.Is(err, service.ErrUnauthorized):
			respondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required", nil)
		default:
			respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to update package", err)
		}
		return
	}

	response.Success(c, "Package updated", gin.H{"package": pkg})
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// parseEstimatedDelivery 接受 YYYY-MM-DD 或 RFC3339 格式
func parseEstimatedDelivery(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
