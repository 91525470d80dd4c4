package service

import "errors"

// 服务层错误哨兵，由 HTTP 层用 errors.Is 匹配后映射为响应码
var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized 未通过管理员鉴权
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput 输入缺失或格式非法
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateTrackingNumber 运单号已存在
	ErrDuplicateTrackingNumber = errors.New("duplicate tracking number")
	// ErrInvalidStatus 非法的包裹状态值
	ErrInvalidStatus = errors.New("invalid package status")
	// ErrInvalidCredentials 账号或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPassword 原密码不正确
	ErrInvalidPassword = errors.New("invalid password")
	// ErrCaptchaRequired 需要验证码
	ErrCaptchaRequired = errors.New("captcha required")
	// ErrCaptchaInvalid 验证码错误
	ErrCaptchaInvalid = errors.New("captcha invalid")
	// ErrEmailServiceDisabled 邮件服务未启用
	ErrEmailServiceDisabled = errors.New("email service disabled")
	// ErrEmailServiceNotConfigured 邮件服务缺少必要配置
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	// ErrInvalidEmail 收件地址非法
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrEmailRecipientRejected 收件地址被服务器拒收
	ErrEmailRecipientRejected = errors.New("email recipient rejected")
)
