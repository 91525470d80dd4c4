package service

import (
	"strings"
	"time"

	"github.com/swifttrack/internal/logger"
	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/queue"
	"github.com/swifttrack/internal/repository"
	"github.com/swifttrack/internal/validation"
)

// ContactInput 联系表单输入
type ContactInput struct {
	Name    string
	Email   string
	Message string
	Captcha CaptchaVerifyPayload
}

// ContactService 联系咨询服务
type ContactService struct {
	contactRepo    repository.ContactRepository
	captchaService *CaptchaService
	queueClient    *queue.Client
}

// NewContactService 创建联系咨询服务
func NewContactService(contactRepo repository.ContactRepository, captchaService *CaptchaService, queueClient *queue.Client) *ContactService {
	return &ContactService{
		contactRepo:    contactRepo,
		captchaService: captchaService,
		queueClient:    queueClient,
	}
}

// Submit 提交联系咨询。
// 字段格式校验在 HTTP 边界完成，这里只做验证码校验、净化与落库。
func (s *ContactService) Submit(input ContactInput) (*models.ContactSubmission, error) {
	if s.captchaService != nil {
		if err := s.captchaService.VerifyForContact(input.Captcha); err != nil {
			return nil, err
		}
	}

	name := validation.SanitizeInput(strings.TrimSpace(input.Name))
	email := strings.TrimSpace(input.Email)
	message := validation.SanitizeInput(strings.TrimSpace(input.Message))
	if name == "" || email == "" || message == "" {
		return nil, ErrInvalidInput
	}

	submission := &models.ContactSubmission{
		Name:        name,
		Email:       email,
		Message:     message,
		Resolved:    false,
		SubmittedAt: time.Now(),
	}
	if err := s.contactRepo.Create(submission); err != nil {
		return nil, err
	}

	if s.queueClient != nil {
		err := s.queueClient.EnqueueContactReceived(queue.ContactReceivedPayload{ContactID: submission.ID})
		if err != nil {
			logger.Warnw("contact_received_enqueue_failed", "contact_id", submission.ID, "error", err)
		}
	}

	logger.Infow("contact_submitted", "contact_id", submission.ID, "email", email)
	return submission, nil
}
