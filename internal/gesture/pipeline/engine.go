package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
	"github.com/banshee-data/tau.report/internal/gesture/l2triangles"
	"github.com/banshee-data/tau.report/internal/gesture/l3euler"
	"github.com/banshee-data/tau.report/internal/gesture/l4tau"
	"github.com/banshee-data/tau.report/internal/monitoring"
	"github.com/banshee-data/tau.report/internal/timeutil"
)

// ErrNoSource is returned by Step when the engine was built without a
// pose source.
var ErrNoSource = errors.New("engine has no pose source")

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used by Step and Run. Defaults to the real clock.
func WithClock(c timeutil.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithSource sets the pose source used by Step and Run.
func WithSource(s l1pose.Source) Option {
	return func(e *Engine) { e.source = s }
}

// WithSession pins the session ID instead of generating one.
func WithSession(id uuid.UUID) Option {
	return func(e *Engine) { e.session = id }
}

// Engine is the frame orchestrator. It owns every tau buffer for the
// session, indexed by triangle.
type Engine struct {
	mu sync.Mutex

	cfg     Config
	clock   timeutil.Clock
	source  l1pose.Source
	session uuid.UUID

	history *l1pose.History
	builder *l2triangles.Builder
	buffers []*l4tau.Buffer
	euler   []l3euler.Sample

	epoch      time.Time
	started    bool
	lastUpdate time.Time
	updated    bool
	frame      uint64

	throttled atomic.Uint64
	meter     monitoring.FrameMeter
}

// NewEngine validates cfg and creates an engine with no buffers. Buffers
// appear as triangles are first seen.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	builder := l2triangles.NewBuilder(cfg.Triples)
	e := &Engine{
		cfg:     cfg,
		clock:   timeutil.WallClock{},
		history: l1pose.NewHistory(cfg.PoseHistoryLength),
		builder: builder,
		buffers: make([]*l4tau.Buffer, len(builder.Triples())),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.session == uuid.Nil {
		e.session = uuid.New()
	}
	logs.Diagf("session %s: %d triangles, window %d, gate %v, workers %d",
		e.session, len(e.buffers), cfg.SmoothingWindow, cfg.MinUpdateInterval, cfg.Workers)
	return e, nil
}

// Update runs one frame. A sample the triangle table cannot be resolved
// against is rejected with an error and leaves the engine unchanged apart
// from the frame counter. Per-triangle failures never fail the frame.
//
// ctx is checked once, before anything is recorded. A frame that starts
// always advances every buffer; a cancelled one leaves no trace beyond the
// frame counter.
func (e *Engine) Update(ctx context.Context, sample l1pose.Sample, now time.Time) (FrameResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.clock.Now()
	e.frame++
	result := FrameResult{Session: e.session, Frame: e.frame, Time: now}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := sample.Validate(); err != nil {
		e.meter.ObserveRejected()
		logs.Opsf("frame %d rejected: %v", e.frame, err)
		return result, fmt.Errorf("frame %d: %w", e.frame, err)
	}
	set, err := e.builder.Build(sample)
	if err != nil {
		e.meter.ObserveRejected()
		logs.Opsf("frame %d rejected: %v", e.frame, err)
		return result, fmt.Errorf("frame %d: %w", e.frame, err)
	}
	e.history.Push(sample)

	if !e.started {
		e.epoch = now
		e.started = true
	}
	result.Elapsed = now.Sub(e.epoch).Seconds()

	if e.updated && now.Sub(e.lastUpdate) < e.cfg.MinUpdateInterval {
		count := e.throttled.Add(1)
		if count%50 == 0 {
			logs.Diagf("gated %d frames (min interval %v)", count, e.cfg.MinUpdateInterval)
		}
		e.meter.ObserveGated()
		result.Gated = true
		return result, nil
	}

	euler := l3euler.Extract(set, e.cfg.eulerOptions())
	results := make([]TriangleResult, len(euler))
	e.advance(set, euler, results, result.Elapsed)

	e.lastUpdate = now
	e.updated = true
	e.euler = euler
	result.Triangles = results
	result.Stats = summarise(results)
	e.meter.ObserveProcessed(e.clock.Since(start))
	logs.Tracef("frame %d: tracked %d, degenerate %d, with tau %d, growing %d",
		e.frame, result.Stats.Tracked, result.Stats.Degenerate, result.Stats.WithTau, result.Stats.Growing)
	return result, nil
}

// advance updates every triangle's buffer. Each index is owned by exactly
// one goroutine, which touches only buffers[i] and results[i]. Once started
// it runs to completion.
func (e *Engine) advance(set l2triangles.Set, euler []l3euler.Sample, results []TriangleResult, t float64) {
	if e.cfg.Workers <= 1 {
		for i := range euler {
			results[i] = e.updateTriangle(set.Triangles[i], euler[i], t)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i := range euler {
		g.Go(func() error {
			results[i] = e.updateTriangle(set.Triangles[i], euler[i], t)
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Engine) updateTriangle(tri l2triangles.Triangle, s l3euler.Sample, t float64) TriangleResult {
	i := tri.Index
	r := TriangleResult{
		Index:        i,
		Name:         tri.Name(),
		Centroid:     s.Centroid,
		Circumcenter: s.Circumcenter,
		EulerLine:    s.EulerLine,
		Debug:        s.Debug,
	}
	if d, ok := e.builder.Deltas(i); ok {
		r.Deltas = &d
	}

	if !s.OK() {
		r.Err = s.Err
		r.Error = s.Err.Error()
		return r
	}

	b := e.buffers[i]
	if b == nil {
		b = l4tau.New(BufferName(tri), s.EulerLine, s.Circumcenter, s.Anchor, t, e.cfg.tauParams())
		e.buffers[i] = b
		r.Created = true
	} else {
		r.Outcome = b.Update(s.EulerLine, t)
	}

	reading := b.Reading()
	r.Reading = &reading
	return r
}

// BufferName returns the display name of a triangle's tau buffer.
func BufferName(tri l2triangles.Triangle) string {
	return fmt.Sprintf("Triangle Tau Buffer %d%s", tri.Index, tri.Name())
}

// Step pulls the next sample from the source and runs it at the clock's
// current time.
func (e *Engine) Step(ctx context.Context) (FrameResult, error) {
	if e.source == nil {
		return FrameResult{}, ErrNoSource
	}
	sample, err := e.source.Next()
	if err != nil {
		return FrameResult{}, err
	}
	return e.Update(ctx, sample, e.clock.Now())
}

// Session returns the session ID.
func (e *Engine) Session() uuid.UUID { return e.session }

// Frames returns the number of frames submitted so far.
func (e *Engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

// TriangleCount returns the number of triangles in the table.
func (e *Engine) TriangleCount() int { return len(e.buffers) }

// Buffer returns triangle i's tau buffer, or nil if it has not been
// created yet.
func (e *Engine) Buffer(i int) *l4tau.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.buffers) {
		return nil
	}
	return e.buffers[i]
}

// EulerLines returns the Euler-line samples of the last processed frame.
func (e *Engine) EulerLines() []l3euler.Sample {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]l3euler.Sample, len(e.euler))
	copy(out, e.euler)
	return out
}

// History returns copies of the retained pose frames, oldest first.
func (e *Engine) History() []l1pose.Sample {
	e.mu.Lock()
	defer e.mu.Unlock()
	held := e.history.Samples()
	out := make([]l1pose.Sample, len(held))
	for i, sample := range held {
		out[i] = sample.Clone()
	}
	return out
}

// Meter returns the engine's frame counters.
func (e *Engine) Meter() monitoring.MeterSnapshot {
	return e.meter.Snapshot()
}
