package repository

import (
	"errors"
	"time"

	"github.com/swifttrack/internal/models"

	"gorm.io/gorm"
)

// PackageRepository 包裹数据访问接口
type PackageRepository interface {
	Create(pkg *models.Package) error
	GetByTrackingNumber(number string) (*models.Package, error)
	GetByTrackingNumberForUpdate(number string) (*models.Package, error)
	GetByID(id uint) (*models.Package, error)
	UpdateFields(id uint, updates map[string]interface{}) error
	ListAll() ([]models.Package, error)
	Transaction(fn func(pkgs PackageRepository, history StatusUpdateRepository) error) error
}

// GormPackageRepository GORM 实现
type GormPackageRepository struct {
	db *gorm.DB
}

// NewPackageRepository 创建包裹仓库
func NewPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

// Create 创建包裹，运单号重复时返回 ErrDuplicateTrackingNumber
func (r *GormPackageRepository) Create(pkg *models.Package) error {
	if pkg.LastUpdated.IsZero() {
		pkg.LastUpdated = time.Now()
	}
	var count int64
	if err := r.db.Model(&models.Package{}).
		Where("tracking_number = ?", pkg.TrackingNumber).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateTrackingNumber
	}
	if err := r.db.Create(pkg).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTrackingNumber
		}
		return err
	}
	return nil
}

// GetByTrackingNumber 按运单号精确查找，不存在时返回 (nil, nil)
func (r *GormPackageRepository) GetByTrackingNumber(number string) (*models.Package, error) {
	return r.getByTrackingNumber(r.db, number)
}

// GetByTrackingNumberForUpdate 按运单号查找并加行锁（事务内使用）
func (r *GormPackageRepository) GetByTrackingNumberForUpdate(number string) (*models.Package, error) {
	return r.getByTrackingNumber(applyRowLock(r.db), number)
}

func (r *GormPackageRepository) getByTrackingNumber(db *gorm.DB, number string) (*models.Package, error) {
	var pkg models.Package
	if err := db.Where("tracking_number = ?", number).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

// GetByID 按主键查找，不存在时返回 (nil, nil)
func (r *GormPackageRepository) GetByID(id uint) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

// UpdateFields 应用部分字段更新并刷新 last_updated。
// 运单号不在可更新字段之列（创建后不可变）。
func (r *GormPackageRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		updates = map[string]interface{}{}
	}
	delete(updates, "tracking_number")
	if _, ok := updates["last_updated"]; !ok {
		updates["last_updated"] = time.Now()
	}
	return r.db.Model(&models.Package{}).Where("id = ?", id).Updates(updates).Error
}

// ListAll 返回全部包裹，按最后更新时间倒序（展示顺序由仓储保证）
func (r *GormPackageRepository) ListAll() ([]models.Package, error) {
	var packages []models.Package
	if err := r.db.Order("last_updated DESC, id DESC").Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

// Transaction 在单个数据库事务内执行包裹与状态历史的联动写入
func (r *GormPackageRepository) Transaction(fn func(pkgs PackageRepository, history StatusUpdateRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewPackageRepository(tx), NewStatusUpdateRepository(tx))
	})
}
