package api

import (
	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/SlpAus/impact-report-backend/internal/location"
	"github.com/SlpAus/impact-report-backend/internal/picture"
	"github.com/SlpAus/impact-report-backend/internal/text"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有内容路由，health 为 nil 时不注册健康检查
func SetupRoutes(router *gin.Engine, repo *content.Repository, health gin.HandlerFunc) {
	if health != nil {
		router.GET("/healthz", health)
	}

	picture.NewHandler(repo.Pictures).Register(router.Group("/picture"))
	text.NewHandler(repo.Texts).Register(router.Group("/text"))
	location.NewHandler(repo.Locations).Register(router.Group("/location"))
}
