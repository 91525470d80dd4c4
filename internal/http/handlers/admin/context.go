package admin

import (
	handlershared "github.com/swifttrack/internal/http/handlers/shared"
	"github.com/swifttrack/internal/service"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "admin_id")
}

// getPrincipal 取出中间件解析好的管理员主体，显式传给服务层
func getPrincipal(c *gin.Context) (service.Principal, bool) {
	id, ok := getAdminID(c)
	if !ok {
		return service.Principal{}, false
	}
	username := ""
	if value, exists := c.Get("admin_username"); exists {
		if name, ok := value.(string); ok {
			username = name
		}
	}
	return service.Principal{AdminID: id, Username: username}, true
}
