package repository

import (
	"time"

	"github.com/swifttrack/internal/models"

	"gorm.io/gorm"
)

// StatusUpdateRepository 包裹状态历史数据访问接口（只追加）
type StatusUpdateRepository interface {
	Create(update *models.StatusUpdate) error
	ListByPackageID(packageID uint) ([]models.StatusUpdate, error)
}

// GormStatusUpdateRepository GORM 实现
type GormStatusUpdateRepository struct {
	db *gorm.DB
}

// NewStatusUpdateRepository 创建状态历史仓库
func NewStatusUpdateRepository(db *gorm.DB) *GormStatusUpdateRepository {
	return &GormStatusUpdateRepository{db: db}
}

// Create 追加一条带时间戳的状态记录
func (r *GormStatusUpdateRepository) Create(update *models.StatusUpdate) error {
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now()
	}
	return r.db.Create(update).Error
}

// ListByPackageID 返回指定包裹的状态历史，按时间升序（同时间按插入顺序）
func (r *GormStatusUpdateRepository) ListByPackageID(packageID uint) ([]models.StatusUpdate, error) {
	var updates []models.StatusUpdate
	if err := r.db.Where("package_id = ?", packageID).
		Order("timestamp ASC, id ASC").
		Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}
