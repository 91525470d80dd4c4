package models

import "time"

// ContactSubmission 联系咨询表
type ContactSubmission struct {
	ID          uint      `gorm:"primarykey" json:"id"`                        // 主键
	Name        string    `gorm:"not null" json:"name"`                        // 姓名
	Email       string    `gorm:"index;not null" json:"email"`                 // 邮箱
	Message     string    `gorm:"type:text;not null" json:"message"`           // 咨询内容
	Resolved    bool      `gorm:"not null;default:false;index" json:"resolved"` // 是否已处理
	SubmittedAt time.Time `gorm:"index;not null" json:"submitted_at"`          // 提交时间
}

// TableName 指定表名
func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
