package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/swifttrack/internal/cache"
	"github.com/swifttrack/internal/constants"
	"github.com/swifttrack/internal/logger"
	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/queue"
	"github.com/swifttrack/internal/repository"
	"github.com/swifttrack/internal/validation"
)

// Principal 已完成鉴权的管理员主体。
// 由 HTTP 层的 JWT 中间件解析一次后显式传入每个管理操作，服务层不读取任何全局会话状态。
type Principal struct {
	AdminID  uint
	Username string
}

// Authenticated 判断主体是否有效
func (p Principal) Authenticated() bool {
	return p.AdminID != 0
}

// CreatePackageInput 创建包裹输入
type CreatePackageInput struct {
	TrackingNumber    string // 为空时自动生成
	Status            models.PackageStatus
	CurrentLocation   string
	Destination       string
	CustomerName      string
	CustomerEmail     string
	DeclaredValue     *models.Money
	EstimatedDelivery *time.Time
	Notes             string
}

// PackageUpdate 部分字段更新：每个可变属性一个可选槽位，
// 指针为 nil 表示该字段未提供（未提供的字段保持原值）。
type PackageUpdate struct {
	Status            *models.PackageStatus
	CurrentLocation   *string
	Destination       *string
	CustomerName      *string
	CustomerEmail     *string
	DeclaredValue     *models.Money
	EstimatedDelivery *time.Time
	Notes             *string
}

// PackageAdminService 管理端包裹服务
type PackageAdminService struct {
	packageRepo repository.PackageRepository
	historyRepo repository.StatusUpdateRepository
	contactRepo repository.ContactRepository
	queueClient *queue.Client
}

// NewPackageAdminService 创建管理端包裹服务
func NewPackageAdminService(
	packageRepo repository.PackageRepository,
	historyRepo repository.StatusUpdateRepository,
	contactRepo repository.ContactRepository,
	queueClient *queue.Client,
) *PackageAdminService {
	return &PackageAdminService{
		packageRepo: packageRepo,
		historyRepo: historyRepo,
		contactRepo: contactRepo,
		queueClient: queueClient,
	}
}

// CreatePackage 创建包裹并在同一事务内写入首条状态记录。
// 运单号缺省时自动生成；生成冲突按 ErrDuplicateTrackingNumber 上报，不做静默重试。
func (s *PackageAdminService) CreatePackage(principal Principal, input CreatePackageInput) (*models.Package, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}

	location := strings.TrimSpace(input.CurrentLocation)
	destination := strings.TrimSpace(input.Destination)
	if location == "" || destination == "" {
		return nil, ErrInvalidInput
	}

	status := input.Status
	if status == "" {
		status = models.StatusCreated
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	number := strings.TrimSpace(input.TrackingNumber)
	if number == "" {
		number = GenerateTrackingNumber()
	} else {
		number = validation.FormatTrackingNumber(number)
		if !validation.TrackingNumberPattern.MatchString(number) {
			return nil, ErrInvalidInput
		}
	}

	// 客户邮箱可选，非空时必须是合法邮箱
	email := validation.SanitizeInput(strings.TrimSpace(input.CustomerEmail))
	if email != "" && !validation.EmailPattern.MatchString(email) {
		return nil, ErrInvalidInput
	}

	pkg := &models.Package{
		TrackingNumber:    number,
		Status:            status,
		CurrentLocation:   validation.SanitizeInput(location),
		Destination:       validation.SanitizeInput(destination),
		CustomerName:      validation.SanitizeInput(strings.TrimSpace(input.CustomerName)),
		CustomerEmail:     email,
		EstimatedDelivery: input.EstimatedDelivery,
		LastUpdated:       time.Now(),
	}
	if input.DeclaredValue != nil {
		pkg.DeclaredValue = *input.DeclaredValue
	}

	notes := validation.SanitizeInput(strings.TrimSpace(input.Notes))
	if notes == "" {
		notes = "Package created"
	}

	err := s.packageRepo.Transaction(func(pkgs repository.PackageRepository, history repository.StatusUpdateRepository) error {
		if err := pkgs.Create(pkg); err != nil {
			return err
		}
		return history.Create(&models.StatusUpdate{
			PackageID: pkg.ID,
			Status:    pkg.Status,
			Location:  pkg.CurrentLocation,
			Notes:     notes,
			Timestamp: pkg.LastUpdated,
		})
	})
	if err != nil {
		if err == repository.ErrDuplicateTrackingNumber {
			return nil, ErrDuplicateTrackingNumber
		}
		return nil, err
	}

	s.invalidateTrackCache(pkg.TrackingNumber)
	s.enqueueStatusEmail(pkg)
	logger.Infow("package_created",
		"admin_id", principal.AdminID,
		"tracking_number", pkg.TrackingNumber,
		"status", pkg.Status,
	)
	return pkg, nil
}

// UpdatePackage 按运单号做部分字段更新。
// 当提供了状态或位置时，在包裹字段落库之后基于更新后的值追加一条状态记录；
// 两步写入在同一事务内完成，并对包裹行加锁，保证并发更新不会让
// Package.status 与其最新 StatusUpdate 不一致。
func (s *PackageAdminService) UpdatePackage(principal Principal, trackingNumberRaw string, update PackageUpdate) (*models.Package, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}

	number := validation.FormatTrackingNumber(strings.TrimSpace(trackingNumberRaw))
	if number == "" {
		return nil, ErrInvalidInput
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if update.CustomerEmail != nil {
		email := validation.SanitizeInput(strings.TrimSpace(*update.CustomerEmail))
		if email != "" && !validation.EmailPattern.MatchString(email) {
			return nil, ErrInvalidInput
		}
	}

	var updated *models.Package
	err := s.packageRepo.Transaction(func(pkgs repository.PackageRepository, history repository.StatusUpdateRepository) error {
		existing, err := pkgs.GetByTrackingNumberForUpdate(number)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotFound
		}

		updates, changes := buildPackageUpdates(existing, update)
		if err := pkgs.UpdateFields(existing.ID, updates); err != nil {
			return err
		}

		// 先提交包裹字段，再回读最新值生成派生状态记录，避免记录到过期数据
		updated, err = pkgs.GetByID(existing.ID)
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrNotFound
		}

		// 仅在提供了状态或位置时追加审计记录；
		// 静默字段更新（如仅改客户邮箱）不产生历史条目，属有意为之
		if update.Status == nil && update.CurrentLocation == nil {
			return nil
		}

		notes := strings.Join(changes, "; ")
		if update.Notes != nil {
			if extra := validation.SanitizeInput(strings.TrimSpace(*update.Notes)); extra != "" {
				notes = notes + " — " + extra
			}
		}
		return history.Create(&models.StatusUpdate{
			PackageID: updated.ID,
			Status:    updated.Status,
			Location:  updated.CurrentLocation,
			Notes:     notes,
			Timestamp: updated.LastUpdated,
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTrackCache(updated.TrackingNumber)
	if update.Status != nil || update.CurrentLocation != nil {
		s.enqueueStatusEmail(updated)
	}
	logger.Infow("package_updated",
		"admin_id", principal.AdminID,
		"tracking_number", updated.TrackingNumber,
		"status", updated.Status,
	)
	return updated, nil
}

// ListPackages 返回全部包裹（最后更新时间倒序）
func (s *PackageAdminService) ListPackages(principal Principal) ([]models.Package, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	return s.packageRepo.ListAll()
}

// ListContacts 返回全部联系咨询（提交时间倒序）
func (s *PackageAdminService) ListContacts(principal Principal) ([]models.ContactSubmission, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	return s.contactRepo.ListAll()
}

// ResolveContact 将联系咨询标记为已处理
func (s *PackageAdminService) ResolveContact(principal Principal, contactID uint) error {
	if !principal.Authenticated() {
		return ErrUnauthorized
	}
	found, err := s.contactRepo.MarkResolved(contactID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	logger.Infow("contact_resolved", "admin_id", principal.AdminID, "contact_id", contactID)
	return nil
}

// buildPackageUpdates 把提供的字段转为更新映射，并生成变更描述
func buildPackageUpdates(existing *models.Package, update PackageUpdate) (map[string]interface{}, []string) {
	now := time.Now()
	updates := map[string]interface{}{"last_updated": now}
	var changes []string

	if update.Status != nil {
		updates["status"] = *update.Status
		changes = append(changes, fmt.Sprintf("Status changed from %s to %s", existing.Status, *update.Status))
	}
	if update.CurrentLocation != nil {
		location := validation.SanitizeInput(strings.TrimSpace(*update.CurrentLocation))
		updates["current_location"] = location
		changes = append(changes, fmt.Sprintf("Location updated to %s", location))
	}
	if update.Destination != nil {
		updates["destination"] = validation.SanitizeInput(strings.TrimSpace(*update.Destination))
	}
	if update.CustomerName != nil {
		updates["customer_name"] = validation.SanitizeInput(strings.TrimSpace(*update.CustomerName))
	}
	if update.CustomerEmail != nil {
		updates["customer_email"] = validation.SanitizeInput(strings.TrimSpace(*update.CustomerEmail))
	}
	if update.DeclaredValue != nil {
		updates["declared_value"] = *update.DeclaredValue
	}
	if update.EstimatedDelivery != nil {
		updates["estimated_delivery"] = *update.EstimatedDelivery
	}
	return updates, changes
}

// invalidateTrackCache 清除公开查询缓存，保证前台立即看到最新状态
func (s *PackageAdminService) invalidateTrackCache(trackingNumber string) {
	if err := cache.Del(context.Background(), constants.TrackCacheKeyPrefix+trackingNumber); err != nil {
		logger.Warnw("track_cache_invalidate_failed", "tracking_number", trackingNumber, "error", err)
	}
}

func (s *PackageAdminService) enqueueStatusEmail(pkg *models.Package) {
	if s.queueClient == nil || pkg == nil || strings.TrimSpace(pkg.CustomerEmail) == "" {
		return
	}
	err := s.queueClient.EnqueuePackageStatusEmail(queue.PackageStatusEmailPayload{
		PackageID: pkg.ID,
		Status:    string(pkg.Status),
	})
	if err != nil {
		logger.Warnw("package_status_email_enqueue_failed",
			"tracking_number", pkg.TrackingNumber,
			"error", err,
		)
	}
}
