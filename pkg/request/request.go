// Package request 处理过滤条件既可能在请求体、也可能在查询串中的情况。
package request

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindFilter 绑定过滤条件：请求体是 JSON 时读取请求体，否则读取查询串。
// 不依赖 Content-Type 和 Content-Length，curl -d 与分块传输的请求体同样可以识别。
func BindFilter(c *gin.Context, obj any) error {
	if body := c.Request.Body; body != nil && body != http.NoBody {
		data, err := c.GetRawData()
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(data)) > 0 && (json.Valid(data) || c.ContentType() == binding.MIMEJSON) {
			return binding.JSON.BindBody(data, obj)
		}
	}
	return c.ShouldBindQuery(obj)
}
