package admin

import (
	handlershared "github.com/swifttrack/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, status int, code, message string, err error) {
	handlershared.RespondError(c, status, code, message, err)
}
