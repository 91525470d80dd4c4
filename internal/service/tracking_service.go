package service

import (
	"strings"

	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/repository"
	"github.com/swifttrack/internal/validation"
)

// TrackingService 公开查询服务（只读、幂等，供前台高频轮询）
type TrackingService struct {
	packageRepo repository.PackageRepository
	historyRepo repository.StatusUpdateRepository
}

// NewTrackingService 创建查询服务
func NewTrackingService(packageRepo repository.PackageRepository, historyRepo repository.StatusUpdateRepository) *TrackingService {
	return &TrackingService{
		packageRepo: packageRepo,
		historyRepo: historyRepo,
	}
}

// Track 按运单号查询包裹及其完整状态历史。
// 输入去首尾空白后不能为空；运单号按存储规格（大写字母数字）规整后精确匹配。
func (s *TrackingService) Track(trackingNumberRaw string) (*models.Package, []models.StatusUpdate, error) {
	trimmed := strings.TrimSpace(trackingNumberRaw)
	if trimmed == "" {
		return nil, nil, ErrInvalidInput
	}

	number := validation.FormatTrackingNumber(trimmed)
	pkg, err := s.packageRepo.GetByTrackingNumber(number)
	if err != nil {
		return nil, nil, err
	}
	if pkg == nil {
		return nil, nil, ErrNotFound
	}

	history, err := s.historyRepo.ListByPackageID(pkg.ID)
	if err != nil {
		return nil, nil, err
	}
	return pkg, history, nil
}
