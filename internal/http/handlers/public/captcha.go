package public

import (
	"net/http"

	"github.com/swifttrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, http.StatusServiceUnavailable, response.CodeUnavailable, "captcha unavailable", nil)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, http.StatusInternalServerError, response.CodeInternal, "failed to generate captcha", err)
		return
	}

	response.Success(c, "captcha generated", gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
		"required":     h.CaptchaService.RequiredForContact(),
	})
}
