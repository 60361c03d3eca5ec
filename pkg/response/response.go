// Package response 在 handler 边界把错误统一转换为 JSON 响应。
package response

import (
	"errors"
	"net/http"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/gin-gonic/gin"
)

// 错误类型，出现在响应体的 error.type 中
const (
	TypeValidation = "VALIDATION"
	TypeNotFound   = "NOT_FOUND"
	TypeStorage    = "STORAGE_UNAVAILABLE"
	TypeInternal   = "INTERNAL"
)

// ErrorBody 是所有错误响应的结构
type ErrorBody struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// Envelope 包裹 ErrorBody，使响应体形如 {"error": {...}}
type Envelope struct {
	Error ErrorBody `json:"error"`
}

// Classify 返回错误对应的 HTTP 状态码和响应体。
// 存储错误与未知错误只返回通用信息，细节留在日志里。
func Classify(err error) (int, ErrorBody) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorBody{Type: TypeValidation, Message: verr.Error(), Fields: verr.Fields()}
	case errors.Is(err, content.ErrValidation):
		return http.StatusBadRequest, ErrorBody{Type: TypeValidation, Message: err.Error()}
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Type: TypeNotFound, Message: "找不到匹配的记录"}
	case errors.Is(err, content.ErrStorageUnavailable):
		return http.StatusInternalServerError, ErrorBody{Type: TypeStorage, Message: "存储服务暂时不可用，请稍后重试"}
	default:
		return http.StatusInternalServerError, ErrorBody{Type: TypeInternal, Message: "服务器内部错误"}
	}
}

// Error 写入错误响应，并把原始错误挂到 gin 上下文上供访问日志使用。
func Error(c *gin.Context, err error) {
	code, body := Classify(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, Envelope{Error: body})
}

// BadRequest 用于请求体无法解析等没有具体字段的校验失败。
func BadRequest(c *gin.Context, err error) {
	Error(c, content.NewValidationError("请求格式错误: %v", err))
}
