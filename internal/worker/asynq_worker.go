package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/swifttrack/internal/logger"
	"github.com/swifttrack/internal/provider"
	"github.com/swifttrack/internal/queue"
	"github.com/swifttrack/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskContactReceived, c.handleContactReceived)
	mux.HandleFunc(queue.TaskPackageStatusEmail, c.handlePackageStatusEmail)
}

// handleContactReceived 将新联系咨询通知到管理员邮箱
func (c *Consumer) handleContactReceived(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_contact_received_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ContactReceivedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_contact_received_unmarshal_failed", "error", err)
		return err
	}
	if payload.ContactID == 0 {
		logger.Debugw("worker_contact_received_skip_invalid_payload", "contact_id", payload.ContactID)
		return nil
	}
	contact, err := c.ContactRepo.GetByID(payload.ContactID)
	if err != nil {
		logger.Warnw("worker_contact_received_fetch_failed", "contact_id", payload.ContactID, "error", err)
		return err
	}
	if contact == nil {
		logger.Debugw("worker_contact_received_skip_not_found", "contact_id", payload.ContactID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_contact_received_skip_email_service_nil", "contact_id", contact.ID)
		return nil
	}

	err = c.EmailService.SendContactReceivedEmail(service.ContactReceivedEmailInput{
		ContactID: contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
	})
	if err != nil {
		// 邮件未配置时静默跳过，不触发重试
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_contact_received_skip_email_unconfigured", "contact_id", contact.ID)
			return nil
		}
		logger.Warnw("worker_contact_received_send_failed", "contact_id", contact.ID, "error", err)
		return err
	}
	return nil
}

// handlePackageStatusEmail 向客户发送包裹状态变更通知
func (c *Consumer) handlePackageStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_package_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PackageStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_package_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.PackageID == 0 {
		logger.Debugw("worker_package_status_email_skip_invalid_payload", "package_id", payload.PackageID)
		return nil
	}
	pkg, err := c.PackageRepo.GetByID(payload.PackageID)
	if err != nil {
		logger.Warnw("worker_package_status_email_fetch_failed", "package_id", payload.PackageID, "error", err)
		return err
	}
	if pkg == nil {
		logger.Debugw("worker_package_status_email_skip_not_found", "package_id", payload.PackageID)
		return nil
	}
	receiverEmail := strings.TrimSpace(pkg.CustomerEmail)
	if receiverEmail == "" {
		logger.Debugw("worker_package_status_email_skip_empty_receiver", "package_id", pkg.ID, "tracking_number", pkg.TrackingNumber)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_package_status_email_skip_email_service_nil", "package_id", pkg.ID)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = string(pkg.Status)
	}
	err = c.EmailService.SendPackageStatusEmail(receiverEmail, service.PackageStatusEmailInput{
		TrackingNumber:    pkg.TrackingNumber,
		Status:            status,
		Location:          pkg.CurrentLocation,
		EstimatedDelivery: pkg.EstimatedDelivery,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_package_status_email_skip_email_unconfigured", "package_id", pkg.ID)
			return nil
		}
		logger.Warnw("worker_package_status_email_send_failed",
			"package_id", pkg.ID,
			"tracking_number", pkg.TrackingNumber,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}
