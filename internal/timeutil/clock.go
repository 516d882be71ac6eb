// Package timeutil supplies the pipeline's notion of "now" and the frame
// ticks that drive it. The engine, the synthetic pose source and the CLI all
// take a Clock, so a session can run against the wall clock or against a
// simulated one that tests and offline runs step frame by frame.
package timeutil

import (
	"sync"
	"time"
)

// Clock is the time source for a gesture session.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration

	// NewFrameTicker returns a ticker that fires once per frame interval.
	NewFrameTicker(interval time.Duration) FrameTicker
}

// FrameTicker delivers one tick per frame. A consumer that falls behind
// sees at most one pending tick; missed frames are dropped, not queued.
type FrameTicker interface {
	C() <-chan time.Time
	Stop()
}

// WallClock is the real-time Clock.
type WallClock struct{}

func (WallClock) Now() time.Time                  { return time.Now() }
func (WallClock) Since(t time.Time) time.Duration { return time.Since(t) }

// NewFrameTicker wraps time.NewTicker, which already drops ticks for slow
// consumers.
func (WallClock) NewFrameTicker(interval time.Duration) FrameTicker {
	return wallTicker{time.NewTicker(interval)}
}

type wallTicker struct{ *time.Ticker }

func (t wallTicker) C() <-chan time.Time { return t.Ticker.C }

// SimClock is a simulated Clock. Time only moves when Set or Advance is
// called, which makes frame timing in tests and offline runs exact.
type SimClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[*SimTicker]struct{}
}

// NewSimClock returns a SimClock reading start.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{now: start, tickers: make(map[*SimTicker]struct{})}
}

func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

// Set jumps the clock to t without firing tickers. Setting it backwards is
// allowed so callers can replay out-of-order frames.
func (c *SimClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d and fires every ticker whose next
// frame boundary has been reached.
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	due := make([]*SimTicker, 0, len(c.tickers))
	for t := range c.tickers {
		due = append(due, t)
	}
	c.mu.Unlock()

	for _, t := range due {
		t.reach(now)
	}
}

// NewFrameTicker registers a ticker whose first frame is one interval from
// now.
func (c *SimClock) NewFrameTicker(interval time.Duration) FrameTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &SimTicker{
		clock:    c,
		ch:       make(chan time.Time, 1),
		interval: interval,
		next:     c.now.Add(interval),
	}
	c.tickers[t] = struct{}{}
	return t
}

func (c *SimClock) forget(t *SimTicker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tickers, t)
}

// SimTicker is the FrameTicker of a SimClock.
type SimTicker struct {
	clock    *SimClock
	ch       chan time.Time
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func (t *SimTicker) C() <-chan time.Time { return t.ch }

// Stop detaches the ticker from its clock. Later advances never fire it.
func (t *SimTicker) Stop() { t.clock.forget(t) }

// Fire delivers a tick at now regardless of the frame schedule.
func (t *SimTicker) Fire(now time.Time) {
	select {
	case t.ch <- now:
	default:
	}
}

// reach fires once if now has passed the next frame boundary. Boundaries
// stay on the original phase, so a large jump skips whole frames.
func (t *SimTicker) reach(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if now.Before(t.next) {
		return
	}
	t.Fire(now)
	if t.interval <= 0 {
		t.next = now
		return
	}
	missed := now.Sub(t.next) / t.interval
	t.next = t.next.Add((missed + 1) * t.interval)
}
