package queue

import (
	"encoding/json"

	"github.com/swifttrack/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskContactReceived 联系咨询通知任务
	TaskContactReceived = constants.TaskContactReceived
	// TaskPackageStatusEmail 包裹状态邮件通知任务
	TaskPackageStatusEmail = constants.TaskPackageStatusEmail
)

// ContactReceivedPayload 联系咨询通知任务载荷
type ContactReceivedPayload struct {
	ContactID uint `json:"contact_id"`
}

// PackageStatusEmailPayload 包裹状态邮件任务载荷
type PackageStatusEmailPayload struct {
	PackageID uint   `json:"package_id"`
	Status    string `json:"status"`
}

// NewContactReceivedTask 创建联系咨询通知任务
func NewContactReceivedTask(payload ContactReceivedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactReceived, body), nil
}

// NewPackageStatusEmailTask 创建包裹状态邮件任务
func NewPackageStatusEmailTask(payload PackageStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPackageStatusEmail, body), nil
}
