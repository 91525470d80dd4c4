// Package validation 提供声明式的表单字段校验规则引擎。
// 无外部依赖，供 HTTP 边界在进入仓储层之前使用。
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// 内置正则
var (
	// EmailPattern 邮箱格式
	EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// TrackingNumberPattern 运单号格式（大写字母数字 8-20 位）
	TrackingNumberPattern = regexp.MustCompile(`^[A-Z0-9]{8,20}$`)
	// NamePattern 姓名格式
	NamePattern = regexp.MustCompile(`^[a-zA-Z\s\-']{2,50}$`)
	// PhonePattern 电话格式
	PhonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

type ruleKind int

const (
	ruleRequired ruleKind = iota
	ruleMinLength
	ruleMaxLength
	rulePattern
	ruleCustom
)

// Rule 单条校验规则，携带各自的失败提示
type Rule struct {
	kind      ruleKind
	message   string
	length    int
	pattern   *regexp.Regexp
	predicate func(string) bool
}

// Required 必填规则
func Required(message string) Rule {
	return Rule{kind: ruleRequired, message: message}
}

// MinLength 最小长度规则
func MinLength(length int, message string) Rule {
	return Rule{kind: ruleMinLength, length: length, message: message}
}

// MaxLength 最大长度规则
func MaxLength(length int, message string) Rule {
	return Rule{kind: ruleMaxLength, length: length, message: message}
}

// Pattern 正则规则
func Pattern(pattern *regexp.Regexp, message string) Rule {
	return Rule{kind: rulePattern, pattern: pattern, message: message}
}

// Custom 自定义谓词规则
func Custom(predicate func(string) bool, message string) Rule {
	return Rule{kind: ruleCustom, predicate: predicate, message: message}
}

// FieldResult 单字段校验结果
type FieldResult struct {
	IsValid bool
	Errors  []string
}

// ValidateField 按序应用规则校验单个值。
// 必填且为空：只记录必填提示并短路；可选且为空：直接通过；
// 其余规则独立求值，失败提示逐条累积。
func ValidateField(value interface{}, rules []Rule) FieldResult {
	text := coerceString(value)
	blank := strings.TrimSpace(text) == ""

	if blank {
		for _, rule := range rules {
			if rule.kind == ruleRequired {
				return FieldResult{IsValid: false, Errors: []string{rule.message}}
			}
		}
		// 空的可选字段不做格式检查
		return FieldResult{IsValid: true}
	}

	var errs []string
	for _, rule := range rules {
		switch rule.kind {
		case ruleRequired:
			// 非空值必填恒成立
		case ruleMinLength:
			if utf8.RuneCountInString(text) < rule.length {
				errs = append(errs, rule.message)
			}
		case ruleMaxLength:
			if utf8.RuneCountInString(text) > rule.length {
				errs = append(errs, rule.message)
			}
		case rulePattern:
			if rule.pattern != nil && !rule.pattern.MatchString(text) {
				errs = append(errs, rule.message)
			}
		case ruleCustom:
			if rule.predicate != nil && !rule.predicate(text) {
				errs = append(errs, rule.message)
			}
		}
	}
	return FieldResult{IsValid: len(errs) == 0, Errors: errs}
}

// SchemaField 表单中一个字段及其规则
type SchemaField struct {
	Name  string
	Rules []Rule
}

// Schema 按声明顺序排列的表单校验模式
type Schema []SchemaField

// FormResult 表单校验结果
type FormResult struct {
	fields  []string
	results map[string]FieldResult
}

// ValidateForm 按模式逐字段校验表单数据
func ValidateForm(data map[string]interface{}, schema Schema) FormResult {
	result := FormResult{
		fields:  make([]string, 0, len(schema)),
		results: make(map[string]FieldResult, len(schema)),
	}
	for _, field := range schema {
		result.fields = append(result.fields, field.Name)
		result.results[field.Name] = ValidateField(data[field.Name], field.Rules)
	}
	return result
}

// IsValid 全部字段通过才算有效
func (r FormResult) IsValid() bool {
	for _, field := range r.fields {
		if !r.results[field].IsValid {
			return false
		}
	}
	return true
}

// Field 返回指定字段的校验结果
func (r FormResult) Field(name string) FieldResult {
	return r.results[name]
}

// FieldErrors 返回仍有错误的字段到提示列表的映射
func (r FormResult) FieldErrors() map[string][]string {
	errs := make(map[string][]string)
	for _, field := range r.fields {
		if result := r.results[field]; !result.IsValid {
			errs[field] = result.Errors
		}
	}
	return errs
}

// AllErrors 按模式声明顺序展平全部失败提示
func (r FormResult) AllErrors() []string {
	var errs []string
	for _, field := range r.fields {
		errs = append(errs, r.results[field].Errors...)
	}
	return errs
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
