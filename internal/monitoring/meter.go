package monitoring

import (
	"fmt"
	"sync"
	"time"
)

// FrameMeter counts processed and gated frames and accumulates the time
// spent in update work. It is safe for concurrent use.
type FrameMeter struct {
	mu        sync.Mutex
	processed int64
	gated     int64
	rejected  int64
	busy      time.Duration
	slowest   time.Duration
}

// MeterSnapshot is a point-in-time copy of a FrameMeter.
type MeterSnapshot struct {
	Processed int64         `json:"processed"`
	Gated     int64         `json:"gated"`
	Rejected  int64         `json:"rejected"`
	Busy      time.Duration `json:"busy_ns"`
	Slowest   time.Duration `json:"slowest_ns"`
}

// ObserveProcessed records a frame that ran the update stages and took d.
func (m *FrameMeter) ObserveProcessed(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed++
	m.busy += d
	if d > m.slowest {
		m.slowest = d
	}
}

// ObserveGated records a frame skipped by the update interval gate.
func (m *FrameMeter) ObserveGated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gated++
}

// ObserveRejected records a frame dropped because its input was invalid.
func (m *FrameMeter) ObserveRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected++
}

// Snapshot returns the current counters.
func (m *FrameMeter) Snapshot() MeterSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MeterSnapshot{
		Processed: m.processed,
		Gated:     m.gated,
		Rejected:  m.rejected,
		Busy:      m.busy,
		Slowest:   m.slowest,
	}
}

// MeanBusy returns the average update time per processed frame.
func (s MeterSnapshot) MeanBusy() time.Duration {
	if s.Processed == 0 {
		return 0
	}
	return s.Busy / time.Duration(s.Processed)
}

// String formats the snapshot for log lines.
func (s MeterSnapshot) String() string {
	return fmt.Sprintf("processed=%d gated=%d rejected=%d mean=%v slowest=%v",
		s.Processed, s.Gated, s.Rejected, s.MeanBusy(), s.Slowest)
}
