package public

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/swifttrack/internal/cache"
	"github.com/swifttrack/internal/constants"
	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/service"
	"github.com/swifttrack/internal/validation"

	"github.com/gin-gonic/gin"
)

// 公开查询结果的短缓存，降低高频轮询对数据库的压力
const trackCacheTTL = 30 * time.Second

// TrackRequest 查询请求（POST 形式）
type TrackRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

type trackPayload struct {
	Package       *models.Package       `json:"package"`
	StatusHistory []models.StatusUpdate `json:"status_history"`
}

// TrackPackage 按运单号查询包裹。
// GET 从 query 读取 tracking_number，POST 从 JSON 体读取，两者行为一致。
func (h *Handler) TrackPackage(c *gin.Context) {
	raw := c.Query("tracking_number")
	if c.Request.Method == http.MethodPost {
		var req TrackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			// 空请求体回退到 query 参数，两种携带方式等价
			if !errors.Is(err, io.EOF) {
				respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body", nil)
				return
			}
		}
		if strings.TrimSpace(req.TrackingNumber) != "" {
			raw = req.TrackingNumber
		}
	}

	normalized := validation.FormatTrackingNumber(strings.TrimSpace(raw))
	result := validation.ValidateField(normalized, []validation.Rule{
		validation.Required("Tracking number is required"),
		validation.Pattern(validation.TrackingNumberPattern, "Tracking number format is invalid"),
	})
	if !result.IsValid {
		response.ValidationFailed(c, result.Errors[0], gin.H{"tracking_number": result.Errors})
		return
	}

	cacheKey := constants.TrackCacheKeyPrefix + normalized
	var cached trackPayload
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		response.Success(c, "Package found", gin.H{
			"package":        cached.Package,
			"status_history": cached.StatusHistory,
		})
		return
	}

	pkg, history, err := h.TrackingService.Track(normalized)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, http.StatusNotFound, response.CodeNotFound, "Package not found", nil)
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "Tracking number is required", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to look up package", err)
		return
	}

	if err := cache.SetJSON(c.Request.Context(), cacheKey, trackPayload{Package: pkg, StatusHistory: history}, trackCacheTTL); err != nil {
		requestLog(c).Warnw("track_cache_write_failed", "tracking_number", normalized, "error", err)
	}

	response.Success(c, "Package found", gin.H{
		"package":        pkg,
		"status_history": history,
	})
}
