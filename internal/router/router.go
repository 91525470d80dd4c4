package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/swifttrack/internal/cache"
	"github.com/swifttrack/internal/config"
	adminhandlers "github.com/swifttrack/internal/http/handlers/admin"
	publichandlers "github.com/swifttrack/internal/http/handlers/public"
	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/logger"
	"github.com/swifttrack/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "st"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 未注册路径与方法的统一信封响应
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "resource not found")
	})
	r.NoMethod(func(ctx *gin.Context) {
		response.MethodNotAllowed(ctx, allowedMethodsForPath(r, ctx.Request.URL.Path))
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开查询：GET 与 POST 行为一致，便于表单与链接两种入口
		apiV1.GET("/track", publicHandler.TrackPackage)
		apiV1.POST("/track", publicHandler.TrackPackage)

		// 联系表单
		apiV1.POST("/contact", publicHandler.SubmitContact)

		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权，带限流）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 包裹管理
				authorized.POST("/create-package", adminHandler.CreatePackage)
				authorized.POST("/update-package", adminHandler.UpdatePackage)
				authorized.GET("/packages", adminHandler.ListPackages)
				authorized.POST("/packages", adminHandler.HandleAdminAction)

				// 账号
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)
			}
		}
	}

	// 健康检查
	r.GET("/health", publicHandler.Health)

	return r
}

// allowedMethodsForPath 根据已注册路由为 405 响应计算 Allow 头
func allowedMethodsForPath(engine *gin.Engine, path string) string {
	if engine == nil {
		return ""
	}
	seen := make(map[string]struct{})
	var methods []string
	for _, item := range engine.Routes() {
		if item.Path != path {
			continue
		}
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" {
			continue
		}
		if _, exists := seen[method]; exists {
			continue
		}
		seen[method] = struct{}{}
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
