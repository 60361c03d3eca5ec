package health

import (
	"context"
	"net/http"
	"time"

	"github.com/SlpAus/impact-report-backend/pkg/lifecycle"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultInterval = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

// Pinger 是被检查的存储引擎
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Checker 定期 Ping 存储引擎并维护健康状态。
type Checker struct {
	target   Pinger
	log      *zap.Logger
	interval time.Duration
	status   *statusManager
	now      func() time.Time
}

// NewChecker 创建检查器，interval <= 0 时使用默认间隔。
func NewChecker(target Pinger, log *zap.Logger, interval time.Duration) *Checker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Checker{
		target:   target,
		log:      log.Named("health"),
		interval: interval,
		status:   newStatusManager(),
		now:      time.Now,
	}
}

// Status 返回最近一次检查后的状态。
func (c *Checker) Status() Snapshot {
	return c.status.Get()
}

// PerformCheck 执行一次检查。
func (c *Checker) PerformCheck(ctx context.Context) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := c.target.Ping(ctx)
	changed, snap := c.status.Assess(err, c.now())
	if changed {
		if snap.State == StateHealthy {
			c.log.Info("存储状态已更新为 [可用]", zap.String("backend", c.target.Name()))
		} else {
			c.log.Warn("存储状态已更新为 [不可用]", zap.String("backend", c.target.Name()), zap.Error(err))
		}
	}
	return snap
}

// Run 在后台循环执行检查，直到生命周期句柄被取消。
func (c *Checker) Run(handle *lifecycle.Handle) {
	defer handle.Close()
	c.log.Info("存储健康检查器已启动", zap.Duration("interval", c.interval))

	for {
		if err := handle.Sleep(c.interval); err != nil {
			c.log.Info("健康检查器: 收到停机信号，正在关闭")
			return
		}
		c.PerformCheck(handle.Ctx())
	}
}

// Handler 以 JSON 形式暴露最近一次检查的结果，不可用时返回 503。
func (c *Checker) Handler(ctx *gin.Context) {
	snap := c.Status()
	code := http.StatusOK
	if snap.State != StateHealthy {
		code = http.StatusServiceUnavailable
	}
	body := gin.H{
		"status":  snap.State.String(),
		"backend": c.target.Name(),
	}
	if !snap.CheckedAt.IsZero() {
		body["checkedAt"] = snap.CheckedAt
	}
	if snap.LastError != "" {
		body["error"] = snap.LastError
	}
	ctx.JSON(code, body)
}
