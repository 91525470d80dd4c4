package models

import "time"

// StatusUpdate 包裹状态历史记录（只追加，不修改不删除）
type StatusUpdate struct {
	ID        uint          `gorm:"primarykey" json:"id"`               // 主键
	PackageID uint          `gorm:"index;not null" json:"package_id"`   // 所属包裹ID
	Status    PackageStatus `gorm:"not null" json:"status"`             // 记录时的状态
	Location  string        `gorm:"not null" json:"location"`           // 记录时的位置
	Notes     string        `json:"notes,omitempty"`                    // 备注
	Timestamp time.Time     `gorm:"index;not null" json:"timestamp"`    // 记录时间（按包裹单调不减）
}

// TableName 指定表名
func (StatusUpdate) TableName() string {
	return "status_updates"
}
