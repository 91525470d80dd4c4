package models

import (
	"time"
)

// PackageStatus 包裹状态（闭合枚举）
type PackageStatus string

const (
	StatusCreated        PackageStatus = "created"
	StatusPickedUp       PackageStatus = "picked_up"
	StatusInTransit      PackageStatus = "in_transit"
	StatusOutForDelivery PackageStatus = "out_for_delivery"
	StatusDelivered      PackageStatus = "delivered"
	StatusException      PackageStatus = "exception"
)

// Valid 判断状态是否为合法枚举值
func (s PackageStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusException:
		return true
	default:
		return false
	}
}

// AllPackageStatuses 返回全部合法状态
func AllPackageStatuses() []PackageStatus {
	return []PackageStatus{
		StatusCreated,
		StatusPickedUp,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusException,
	}
}

// Package 包裹表
type Package struct {
	ID                uint          `gorm:"primarykey" json:"id"`                               // 主键
	TrackingNumber    string        `gorm:"uniqueIndex;not null" json:"tracking_number"`        // 运单号（创建后不可变）
	Status            PackageStatus `gorm:"index;not null" json:"status"`                       // 当前状态
	CurrentLocation   string        `gorm:"not null" json:"current_location"`                   // 当前位置
	Destination       string        `gorm:"not null" json:"destination"`                        // 目的地
	CustomerName      string        `json:"customer_name,omitempty"`                            // 客户姓名
	CustomerEmail     string        `json:"customer_email,omitempty"`                           // 客户邮箱
	DeclaredValue     Money         `gorm:"type:decimal(20,2);default:0" json:"declared_value"` // 申报价值
	EstimatedDelivery *time.Time    `json:"estimated_delivery"`                                 // 预计送达日期
	LastUpdated       time.Time     `gorm:"index;not null" json:"last_updated"`                 // 最后更新时间（每次变更刷新）
	CreatedAt         time.Time     `gorm:"index" json:"created_at"`                            // 创建时间

	StatusUpdates []StatusUpdate `gorm:"foreignKey:PackageID" json:"status_history,omitempty"` // 状态历史
}

// TableName 指定表名
func (Package) TableName() string {
	return "packages"
}
