package picture

import (
	"net/http"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/SlpAus/impact-report-backend/pkg/request"
	"github.com/SlpAus/impact-report-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler 把 /picture 下的路由翻译为 Picture 存储操作，每个请求只执行一次存储操作。
type Handler struct {
	store content.Store[*content.Picture]
}

func NewHandler(store content.Store[*content.Picture]) *Handler {
	return &Handler{store: store}
}

// Register 在路由组上注册 Picture 的全部路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/add-picture", h.AddPicture)
	rg.GET("/get-pictures", h.GetPictures)
	rg.GET("/get-picture", h.GetPicture)
	rg.PUT("/update-picture", h.UpdatePicture)
	rg.DELETE("/delete-picture", h.DeletePicture)
}

// AddPicture 创建一条图片记录
func (h *Handler) AddPicture(c *gin.Context) {
	var in content.PictureInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	pic, err := content.NewPicture(in)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.store.Create(c.Request.Context(), pic)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetPictures 按插入顺序返回全部图片记录
func (h *Handler) GetPictures(c *gin.Context) {
	pictures, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pictures)
}

// GetPicture 返回第一条匹配 Component/ID 的图片记录
func (h *Handler) GetPicture(c *gin.Context) {
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

	pic, err := h.store.Find(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pic)
}

// UpdatePicture 替换所有匹配记录的 ImageURL
func (h *Handler) UpdatePicture(c *gin.Context) {
	var u content.PictureUpdate
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

// DeletePicture 删除所有匹配 Component/ID 的图片记录
func (h *Handler) DeletePicture(c *gin.Context) {
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
