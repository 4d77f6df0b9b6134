package health

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/log"
)

func quietLogger() *log.Logger {
	return log.New(log.Config{Level: log.LevelError, Format: log.FormatText, Output: io.Discard})
}

func TestMonitor_ReadyWhenHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/health", r.URL.Path)
		io.WriteString(w, Sentinel)
	}))
	defer server.Close()

	m := NewMonitor(api.NewClient(server.URL), quietLogger())
	snapshot := m.CheckNow(context.Background())
	assert.Equal(t, StatusReady, snapshot.Status)
	assert.Equal(t, StatusReady, m.Current().Status)
}

func TestMonitor_UnreachableWhenDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := NewMonitor(api.NewClient(url), quietLogger())
	snapshot := m.CheckNow(context.Background())
	assert.Equal(t, StatusUnreachable, snapshot.Status)
}

func TestMonitor_InitialStateIsChecking(t *testing.T) {
	m := NewMonitor(api.NewClient("http://localhost:0"), quietLogger())
	assert.Equal(t, StatusChecking, m.Current().Status)
}

// Ready must be re-derived on the next poll: a backend that goes down is
// noticed within one interval, and one that comes back is too.
func TestMonitor_RederivesEachInterval(t *testing.T) {
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, Sentinel)
	}))
	defer server.Close()

	m := NewMonitor(api.NewClient(server.URL), quietLogger()).
		WithInterval(10*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := m.Subscribe()
	go m.Run(ctx)

	waitFor := func(want Status) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case snap := <-sub:
				if snap.Status == want {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for status %v", want)
			}
		}
	}

	waitFor(StatusUnreachable)
	healthy.Store(true)
	waitFor(StatusReady)
	healthy.Store(false)
	waitFor(StatusUnreachable)
}

// Cancelling the owning context must stop the poll loop: no further health
// calls may be observed after teardown.
func TestMonitor_StopsOnCancel(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, Sentinel)
	}))
	defer server.Close()

	m := NewMonitor(api.NewClient(server.URL), quietLogger()).
		WithInterval(5*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after cancellation")
	}

	observed := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, observed, calls.Load(), "no probes may run after teardown")
}
