package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SlpAus/impact-report-backend/pkg/lifecycle"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakePinger) Name() string { return "fake" }

func (f *fakePinger) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakePinger) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakePinger) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPerformCheckTransitions(t *testing.T) {
	p := &fakePinger{}
	c := NewChecker(p, zap.NewNop(), time.Second)

	snap := c.PerformCheck(context.Background())
	assert.Equal(t, StateHealthy, snap.State)

	p.setErr(errors.New("connection refused"))
	snap = c.PerformCheck(context.Background())
	assert.Equal(t, StateDegraded, snap.State)
	assert.Equal(t, "connection refused", snap.LastError)
	assert.Equal(t, 1, snap.Failures)

	snap = c.PerformCheck(context.Background())
	assert.Equal(t, 2, snap.Failures)

	p.setErr(nil)
	snap = c.PerformCheck(context.Background())
	assert.Equal(t, StateHealthy, snap.State)
	assert.Empty(t, snap.LastError)
	assert.Zero(t, snap.Failures)
}

func TestHandlerReportsState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := &fakePinger{}
	c := NewChecker(p, zap.NewNop(), time.Second)

	r := gin.New()
	r.GET("/healthz", c.Handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	p.setErr(errors.New("down"))
	c.PerformCheck(context.Background())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "fake", body["backend"])
	assert.Equal(t, "down", body["error"])
}

func TestRunStopsOnShutdown(t *testing.T) {
	p := &fakePinger{}
	c := NewChecker(p, zap.NewNop(), 5*time.Millisecond)
	m := lifecycle.NewManager(zap.NewNop())
	require.NoError(t, m.Go("health", c.Run))

	assert.Eventually(t, func() bool { return p.callCount() >= 2 }, time.Second, 5*time.Millisecond)

	m.Shutdown()
	assert.Empty(t, m.WaitWithTimeout(time.Second))
}
