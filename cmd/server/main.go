package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/SlpAus/impact-report-backend/api"
	"github.com/SlpAus/impact-report-backend/internal/platform/config"
	"github.com/SlpAus/impact-report-backend/internal/platform/health"
	"github.com/SlpAus/impact-report-backend/internal/platform/logging"
	"github.com/SlpAus/impact-report-backend/internal/platform/shutdown"
	"github.com/SlpAus/impact-report-backend/internal/platform/startup"
	"github.com/SlpAus/impact-report-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	repo, err := startup.OpenRepository(cfg.Database, log)
	if err != nil {
		log.Fatal("内容存储初始化失败，无法启动", zap.Error(err))
	}

	// 启动前先做一次健康检查，再把检查器交给后台
	checker := health.NewChecker(repo.Backend, log, 0)
	checker.PerformCheck(context.Background())
	mgr := lifecycle.NewManager(log)
	if err := mgr.Go("storage-health", checker.Run); err != nil {
		log.Fatal("无法启动健康检查器", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(logging.GinLogger(log), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, repo, checker.Handler)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	coordinator := shutdown.NewCoordinator(mgr, repo, log)
	go func() {
		log.Info("服务器已准备就绪，开始监听", zap.String("address", cfg.Server.Address), zap.String("backend", repo.Backend.Name()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	coordinator.ListenForSignalsAndShutdown(server)
}
