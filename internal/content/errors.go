package content

import (
	"errors"
	"fmt"
	"strings"
)

// 内容存储层的错误分类，调用方使用 errors.Is 判断
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("record not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError 描述一次创建/过滤/更新请求中不合法的字段。
type ValidationError struct {
	// Missing 是缺失或为空的必填字段 (JSON 字段名)
	Missing []string
	// Invalid 是存在但取值不合法的字段
	Invalid []string
	// Msg 用于没有具体字段的情况，例如请求体无法解析
	Msg string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if len(e.Missing) > 0 {
		parts = append(parts, "缺少必填字段: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "字段取值无效: "+strings.Join(e.Invalid, ", "))
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Fields 返回所有出错字段，缺失字段在前。
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Missing)+len(e.Invalid))
	fields = append(fields, e.Missing...)
	return append(fields, e.Invalid...)
}

// NewValidationError 构造一个不指向具体字段的校验错误。
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError 包装底层存储引擎返回的错误。
type StorageError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s 失败: %v", e.Kind, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorageUnavailable, e.Err}
}

// WrapStorage 将存储引擎错误标记为 ErrStorageUnavailable，nil 原样返回。
func WrapStorage(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Kind: kind, Op: op, Err: err}
}

// NotFound 返回带上下文信息的 ErrNotFound。
func NotFound(kind Kind, f Filter) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, f)
}
