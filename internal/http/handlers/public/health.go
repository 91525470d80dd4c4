package public

import (
	"net/http"
	"time"

	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/models"

	"github.com/gin-gonic/gin"
)

// Health 健康检查：数据库可达返回 200，否则 503
func (h *Handler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "up"

	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		requestLog(c).Errorw("health_db_ping_failed", "error", err)
		status = "degraded"
		dbStatus = "down"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "service degraded",
			"error":   response.CodeUnavailable,
			"status":  status,
			"checks":  gin.H{"database": dbStatus},
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	response.Success(c, "service healthy", gin.H{
		"status": status,
		"checks": gin.H{"database": dbStatus},
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
