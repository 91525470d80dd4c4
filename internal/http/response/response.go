package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一响应信封：{success, message, error?, ...payload}。
// success 反映业务结果，HTTP 状态码同时承载错误类别，
// 错误响应的 error 字段是机器可读错误码（见 codes.go）。

// Success 200 成功响应，payload 的键并入信封顶层
func Success(c *gin.Context, message string, payload gin.H) {
	c.JSON(http.StatusOK, buildEnvelope(c, true, message, "", payload))
}

// Created 201 成功响应
func Created(c *gin.Context, message string, payload gin.H) {
	c.JSON(http.StatusCreated, buildEnvelope(c, true, message, "", payload))
}

// Fail 通用失败响应
func Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, buildEnvelope(c, false, message, code, nil))
}

// BadRequest 400 响应
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, CodeBadRequest, message)
}

// ValidationFailed 400 响应（带逐字段错误明细）
func ValidationFailed(c *gin.Context, message string, fieldErrors interface{}) {
	envelope := buildEnvelope(c, false, message, CodeValidationFailed, nil)
	if fieldErrors != nil {
		envelope["errors"] = fieldErrors
	}
	c.JSON(http.StatusBadRequest, envelope)
}

// Unauthorized 401 响应
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden 403 响应
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound 404 响应
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, CodeNotFound, message)
}

// MethodNotAllowed 405 响应，Allow 头由路由层计算后传入
func MethodNotAllowed(c *gin.Context, allow string) {
	if allow != "" {
		c.Header("Allow", allow)
	}
	Fail(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
}

// Conflict 409 响应
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, CodeConflict, message)
}

// TooManyRequests 429 响应
func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, CodeTooManyRequests, message)
}

// Internal 500 响应
func Internal(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, CodeInternal, message)
}

// Unavailable 503 响应
func Unavailable(c *gin.Context, message string) {
	Fail(c, http.StatusServiceUnavailable, CodeUnavailable, message)
}

func buildEnvelope(c *gin.Context, success bool, message, code string, payload gin.H) gin.H {
	envelope := gin.H{
		"success": success,
		"message": message,
	}
	if code != "" {
		envelope["error"] = code
	}
	for key, value := range payload {
		if key == "success" || key == "message" || key == "error" {
			continue
		}
		envelope[key] = value
	}
	attachRequestID(c, envelope)
	return envelope
}

func attachRequestID(c *gin.Context, envelope gin.H) {
	if c == nil {
		return
	}
	value, ok := c.Get("request_id")
	if !ok {
		return
	}
	if id, ok := value.(string); ok && id != "" {
		envelope["request_id"] = id
	}
}
