package shutdown

import (
	"net/http"
	"testing"
	"time"

	"github.com/SlpAus/impact-report-backend/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type closeRecorder struct{ closed bool }

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestShutdownStopsServicesAndClosesStore(t *testing.T) {
	mgr := lifecycle.NewManager(zap.NewNop())
	stopped := make(chan struct{})
	require.NoError(t, mgr.Go("worker", func(h *lifecycle.Handle) {
		defer h.Close()
		<-h.Done()
		close(stopped)
	}))

	store := &closeRecorder{}
	c := NewCoordinator(mgr, store, zap.NewNop())
	c.Shutdown(&http.Server{})

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("worker was not stopped")
	}
	assert.True(t, store.closed)
}
