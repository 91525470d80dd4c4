package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateTrackingNumber 运单号已存在
var ErrDuplicateTrackingNumber = errors.New("tracking number already exists")

// isUniqueViolation 判断底层驱动返回的唯一约束冲突
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") ||
		strings.Contains(message, "duplicate key") ||
		strings.Contains(message, "unique failed")
}
