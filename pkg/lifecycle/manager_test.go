package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManagerRejectsDuplicateService(t *testing.T) {
	m := NewManager(zap.NewNop())
	h, err := m.NewServiceHandle("health")
	require.NoError(t, err)
	defer h.Close()

	_, err = m.NewServiceHandle("health")
	assert.Error(t, err)
}

func TestManagerShutdownWakesSleepers(t *testing.T) {
	m := NewManager(zap.NewNop())

	exited := make(chan error, 1)
	require.NoError(t, m.Go("sleeper", func(h *Handle) {
		defer h.Close()
		exited <- h.Sleep(time.Hour)
	}))

	m.Shutdown()
	remaining := m.WaitWithTimeout(time.Second)
	assert.Empty(t, remaining)
	assert.ErrorIs(t, <-exited, context.Canceled)
}

func TestManagerWaitReportsStragglers(t *testing.T) {
	m := NewManager(zap.NewNop())
	h, err := m.NewServiceHandle("stuck")
	require.NoError(t, err)

	m.Shutdown()
	remaining := m.WaitWithTimeout(20 * time.Millisecond)
	assert.Equal(t, []string{"stuck"}, remaining)

	h.Close()
	h.Close() // 重复关闭不会让 WaitGroup 变为负数
	assert.Empty(t, m.WaitWithTimeout(time.Second))
}

func TestHandleSleepCompletes(t *testing.T) {
	m := NewManager(zap.NewNop())
	h, err := m.NewServiceHandle("short")
	require.NoError(t, err)
	defer h.Close()

	assert.NoError(t, h.Sleep(time.Millisecond))
}
