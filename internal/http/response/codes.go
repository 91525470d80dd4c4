package response

// error 字段使用的机器可读错误码
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeConflict         = "conflict"
	CodeTooManyRequests  = "too_many_requests"
	CodeInternal         = "internal_error"
	CodeUnavailable      = "service_unavailable"
)
