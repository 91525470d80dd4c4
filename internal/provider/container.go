package provider

import (
	"github.com/swifttrack/internal/authz"
	"github.com/swifttrack/internal/cache"
	"github.com/swifttrack/internal/config"
	"github.com/swifttrack/internal/logger"
	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/queue"
	"github.com/swifttrack/internal/repository"
	"github.com/swifttrack/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	PackageRepo      repository.PackageRepository
	StatusUpdateRepo repository.StatusUpdateRepository
	ContactRepo      repository.ContactRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	TrackingService     *service.TrackingService
	ContactService      *service.ContactService
	PackageAdminService *service.PackageAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.PackageRepo = repository.NewPackageRepository(db)
	c.StatusUpdateRepo = repository.NewStatusUpdateRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.TrackingService = service.NewTrackingService(c.PackageRepo, c.StatusUpdateRepo)
	c.ContactService = service.NewContactService(c.ContactRepo, c.CaptchaService, c.QueueClient)
	c.PackageAdminService = service.NewPackageAdminService(c.PackageRepo, c.StatusUpdateRepo, c.ContactRepo, c.QueueClient)
}
