package shutdown

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/impact-report-backend/pkg/lifecycle"
	"go.uber.org/zap"
)

const (
	httpTimeout       = 15 * time.Second
	backgroundTimeout = 5 * time.Second
)

// Coordinator 负责编排应用程序的优雅停机流程。
type Coordinator struct {
	Manager *lifecycle.Manager
	// Store 在所有请求与后台服务结束后关闭
	Store io.Closer
	Log   *zap.Logger
}

// NewCoordinator 创建一个新的停机协调器。
func NewCoordinator(mgr *lifecycle.Manager, store io.Closer, log *zap.Logger) *Coordinator {
	return &Coordinator{Manager: mgr, Store: store, Log: log.Named("shutdown")}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	sig := <-sigChan
	c.Log.Info("收到关闭信号，开始优雅停机", zap.String("signal", sig.String()))
	c.Shutdown(server)
}

// Shutdown 依次关闭HTTP服务器、后台服务和存储连接。
func (c *Coordinator) Shutdown(server *http.Server) {
	// 关闭HTTP服务器，允许正在进行的请求完成
	ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		c.Log.Error("HTTP服务器关闭错误", zap.Error(err))
	} else {
		c.Log.Info("HTTP服务器已关闭")
	}

	c.Manager.Shutdown()
	if remaining := c.Manager.WaitWithTimeout(backgroundTimeout); len(remaining) > 0 {
		c.Log.Warn("部分后台服务未能按时退出", zap.Strings("services", remaining))
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.Log.Error("关闭存储连接失败", zap.Error(err))
		}
	}
	c.Log.Info("优雅停机完成")
}
