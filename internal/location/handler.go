package location

import (
	"net/http"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/SlpAus/impact-report-backend/pkg/request"
	"github.com/SlpAus/impact-report-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler 处理 /location 下的地图标记点路由
type Handler struct {
	store content.Store[*content.Location]
}

func NewHandler(store content.Store[*content.Location]) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/add-location", h.AddLocation)
	rg.GET("/get-locations", h.GetLocations)
	rg.GET("/get-location", h.GetLocation)
	rg.PUT("/update-location", h.UpdateLocation)
	rg.DELETE("/delete-location", h.DeleteLocation)
}

// AddLocation 校验坐标范围后创建标记点
func (h *Handler) AddLocation(c *gin.Context) {
	var in content.LocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err)
		return
	}
	loc, err := content.NewLocation(in)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.store.Create(c.Request.Context(), loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetLocations(c *gin.Context) {
	locations, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocation 按 name 或 _id 查询单个标记点
func (h *Handler) GetLocation(c *gin.Context) {
	var lf content.LocationFilter
	if err := c.ShouldBindQuery(&lf); err != nil {
		response.BadRequest(c, err)
		return
	}
	f, err := lf.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}

	loc, err := h.store.Find(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// UpdateLocation 移动所有匹配的标记点
func (h *Handler) UpdateLocation(c *gin.Context) {
	var u content.LocationUpdate
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

// DeleteLocation 删除所有匹配的标记点，重复删除同一标记点会再次得到 404
func (h *Handler) DeleteLocation(c *gin.Context) {
	var lf content.LocationFilter
	if err := request.BindFilter(c, &lf); err != nil {
		response.BadRequest(c, err)
		return
	}
	f, err := lf.Filter()
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
