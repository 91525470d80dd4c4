package validation

import (
	"regexp"
	"strings"
)

var (
	angleBracketPattern = regexp.MustCompile(`[<>]`)
	javascriptPattern   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+=`)
	nonAlnumPattern     = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonDigitPattern     = regexp.MustCompile(`\D`)
)

// SanitizeInput 清理自由文本输入：去首尾空白、去尖括号、
// 去 javascript: 协议与内联事件属性片段。
// 只防脚本注入，不是完整的 HTML 清洗器。
func SanitizeInput(value string) string {
	cleaned := strings.TrimSpace(value)
	cleaned = angleBracketPattern.ReplaceAllString(cleaned, "")
	cleaned = javascriptPattern.ReplaceAllString(cleaned, "")
	cleaned = eventHandlerPattern.ReplaceAllString(cleaned, "")
	return cleaned
}

// FormatTrackingNumber 规整运单号：转大写并去掉非字母数字字符
func FormatTrackingNumber(value string) string {
	return nonAlnumPattern.ReplaceAllString(strings.ToUpper(value), "")
}

// FormatPhoneNumber 格式化电话号码。
// 10 位数字输出 (XXX) XXX-XXXX，带前导 1 的 11 位输出 +1 (XXX) XXX-XXXX，
// 其余位数无法格式化，原样返回。
func FormatPhoneNumber(value string) string {
	digits := nonDigitPattern.ReplaceAllString(value, "")
	switch {
	case len(digits) == 10:
		return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return "+1 (" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	default:
		return value
	}
}
