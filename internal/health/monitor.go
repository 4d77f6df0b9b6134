package health

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/log"
)

// Sentinel is the plain-text liveness body the backend returns. Any 2xx
// also counts as healthy; the sentinel covers proxies that rewrite status
// codes.
const Sentinel = "APEER Backend is running"

// Status is the probe's last-derived availability state.
type Status int

const (
	// StatusChecking is the initial state before the first probe resolves.
	StatusChecking Status = iota
	// StatusReady means the last probe succeeded.
	StatusReady
	// StatusUnreachable means the last probe failed.
	StatusUnreachable
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusReady:
		return "ready"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Snapshot is one derived availability reading.
type Snapshot struct {
	Status    Status
	CheckedAt time.Time
}

// Default probe cadence and per-call budget.
const (
	DefaultInterval     = 5 * time.Second
	DefaultCheckTimeout = 3 * time.Second
)

// Monitor re-derives backend availability on a fixed interval by calling
// the health endpoint with a short per-call timeout. The entire
// authenticated application is gated behind its status.
//
// The poll goroutine is owned by the context passed to Run; cancelling it
// releases the ticker on every exit path.
type Monitor struct {
	client   *api.Client
	logger   *log.Logger
	interval time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	snapshot Snapshot
	subs     []chan Snapshot
}

// NewMonitor creates a monitor against the given API client.
func NewMonitor(client *api.Client, logger *log.Logger) *Monitor {
	return &Monitor{
		client:   client,
		logger:   logger,
		interval: DefaultInterval,
		timeout:  DefaultCheckTimeout,
		snapshot: Snapshot{Status: StatusChecking},
	}
}

// WithInterval overrides the poll cadence.
func (m *Monitor) WithInterval(interval, timeout time.Duration) *Monitor {
	m.interval = interval
	m.timeout = timeout
	return m
}

// Current returns the last derived snapshot.
func (m *Monitor) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Subscribe returns a channel receiving every derived snapshot. The
// channel is buffered; a slow subscriber drops readings rather than
// blocking the poll loop.
func (m *Monitor) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 8)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// Run probes immediately, then on every tick, until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.CheckNow(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckNow(ctx)
		}
	}
}

// CheckNow performs one probe and publishes the derived snapshot. Also
// the manual "check again" path of the blocking notice.
func (m *Monitor) CheckNow(ctx context.Context) Snapshot {
	checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	status := StatusUnreachable
	if m.probe(checkCtx) {
		status = StatusReady
	}

	snapshot := Snapshot{Status: status, CheckedAt: time.Now()}

	m.mu.Lock()
	prev := m.snapshot.Status
	m.snapshot = snapshot
	subs := make([]chan Snapshot, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	if prev != status {
		m.logger.Info("backend availability changed", "from", prev.String(), "to", status.String())
	}

	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
	return snapshot
}

// probe reports whether one health call succeeded.
func (m *Monitor) probe(ctx context.Context) bool {
	resp, err := m.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/auth/health"})
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if resp.StatusCode == http.StatusOK {
		return true
	}
	return strings.TrimSpace(string(body)) == Sentinel
}
