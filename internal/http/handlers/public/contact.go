package public

import (
	"errors"
	"net/http"

	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/service"
	"github.com/swifttrack/internal/validation"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系表单请求
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`

	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

func contactSchema() validation.Schema {
	return validation.Schema{
		{Name: "name", Rules: []validation.Rule{
			validation.Required("Name is required"),
			validation.Pattern(validation.NamePattern, "Name must be 2-50 letters"),
		}},
		{Name: "email", Rules: []validation.Rule{
			validation.Required("Email is required"),
			validation.Pattern(validation.EmailPattern, "Email format is invalid"),
		}},
		{Name: "message", Rules: []validation.Rule{
			validation.Required("Message is required"),
			validation.MinLength(10, "Message must be at least 10 characters"),
			validation.MaxLength(2000, "Message must be at most 2000 characters"),
		}},
	}
}

// SubmitContact 提交联系咨询
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body", nil)
		return
	}

	// 字段格式在边界校验，净化与落库由服务层完成
	result := validation.ValidateForm(map[string]interface{}{
		"name":    req.Name,
		"email":   req.Email,
		"message": req.Message,
	}, contactSchema())
	if !result.IsValid() {
		response.ValidationFailed(c, result.AllErrors()[0], result.FieldErrors())
		return
	}

	submission, err := h.ContactService.Submit(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Captcha: service.CaptchaVerifyPayload{
			CaptchaID:   req.CaptchaID,
			CaptchaCode: req.CaptchaCode,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaRequired):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "captcha is required", nil)
		case errors.Is(err, service.ErrCaptchaInvalid):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "captcha is invalid", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "invalid contact submission", nil)
		default:
			respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to submit contact inquiry", err)
		}
		return
	}

	response.Created(c, "Thank you for contacting us. We will get back to you soon.", gin.H{
		"contact": gin.H{
			"id":           submission.ID,
			"submitted_at": submission.SubmittedAt,
		},
	})
}
