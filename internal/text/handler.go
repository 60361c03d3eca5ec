package text

import (
	"net/http"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/SlpAus/impact-report-backend/pkg/request"
	"github.com/SlpAus/impact-report-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler 把 /text 下的路由翻译为 Text 存储操作，每个请求只执行一次存储操作。
type Handler struct {
	store content.Store[*content.Text]
}

func NewHandler(store content.Store[*content.Text]) *Handler {
	return &Handler{store: store}
}

// Register 在路由组上注册 Text 的全部路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/add-text", h.AddText)
	rg.GET("/get-texts", h.GetTexts)
	rg.GET("/get-text", h.GetText)
	rg.PUT("/update-text", h.UpdateText)
	rg.DELETE("/delete-text", h.DeleteText)
}

// AddText 创建一条文字记录
func (h *Handler) AddText(c *gin.Context) {
	var in content.TextInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	txt, err := content.NewText(in)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.store.Create(c.Request.Context(), txt)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTexts 按插入顺序返回全部文字记录
func (h *Handler) GetTexts(c *gin.Context) {
	texts, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, texts)
}

// GetText 返回第一条匹配 Component/ID 的文字记录
func (h *Handler) GetText(c *gin.Context) {
	var sf content.SlotFilter
	if err := c.ShouldBindQuery(&sf); err != nil {
		response.BadRequest(c, err)
		return
	}
	f, err := sf.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}

	txt, err := h.store.Find(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, txt)
}

// UpdateText 替换所有匹配记录的 textDescription
func (h *Handler) UpdateText(c *gin.Context) {
	var u content.TextUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		response.BadRequest(c, err)
		return
	}
	f, changes, err := u.Changes()
	if err != nil {
		response.Error(c, err)
		return
	}

	n, err := h.store.Update(c.Request.Context(), f, changes)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功", "updated": n})
}

// DeleteText 删除所有匹配 Component/ID 的文字记录
func (h *Handler) DeleteText(c *gin.Context) {
	var sf content.SlotFilter
	if err := request.BindFilter(c, &sf); err != nil {
		response.BadRequest(c, err)
		return
	}
	f, err := sf.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}

	n, err := h.store.Delete(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功", "deleted": n})
}
