package repository

import (
	"errors"
	"time"

	"github.com/swifttrack/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系咨询数据访问接口
type ContactRepository interface {
	Create(submission *models.ContactSubmission) error
	GetByID(id uint) (*models.ContactSubmission, error)
	ListAll() ([]models.ContactSubmission, error)
	MarkResolved(id uint) (bool, error)
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系咨询仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create 创建咨询记录
func (r *GormContactRepository) Create(submission *models.ContactSubmission) error {
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now()
	}
	return r.db.Create(submission).Error
}

// GetByID 按主键查找，不存在时返回 (nil, nil)
func (r *GormContactRepository) GetByID(id uint) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	if err := r.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// ListAll 返回全部咨询记录，按提交时间倒序
func (r *GormContactRepository) ListAll() ([]models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	if err := r.db.Order("submitted_at DESC, id DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// MarkResolved 将咨询标记为已处理，返回记录是否存在（本系统约定用布尔而非错误表达未找到）
func (r *GormContactRepository) MarkResolved(id uint) (bool, error) {
	result := r.db.Model(&models.ContactSubmission{}).
		Where("id = ?", id).
		Update("resolved", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
