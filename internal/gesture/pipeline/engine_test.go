package pipeline

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/tau.report/internal/config"
	"github.com/banshee-data/tau.report/internal/gesture/geometry"
	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
	"github.com/banshee-data/tau.report/internal/gesture/l2triangles"
	"github.com/banshee-data/tau.report/internal/monitoring"
	"github.com/banshee-data/tau.report/internal/testutil"
)

const frameDt = 16 * time.Millisecond

func singleTriangleConfig() Config {
	cfg := DefaultConfig()
	cfg.MinUpdateInterval = 0
	cfg.Triples = []l2triangles.Triple{{A: 0, B: 1, C: 2}}
	return cfg
}

func feed(t *testing.T, e *Engine, samples []l1pose.Sample, dt time.Duration) []FrameResult {
	t.Helper()
	out := make([]FrameResult, 0, len(samples))
	for n, s := range samples {
		res, err := e.Update(context.Background(), s, testutil.Epoch.Add(time.Duration(n)*dt))
		require.NoError(t, err)
		out = append(out, res)
	}
	return out
}

func TestNewEngineValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "window too small", mutate: func(c *Config) { c.SmoothingWindow = 4 }},
		{name: "negative gate", mutate: func(c *Config) { c.MinUpdateInterval = -time.Millisecond }},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }},
		{name: "short history", mutate: func(c *Config) { c.PoseHistoryLength = 1 }},
		{name: "empty table", mutate: func(c *Config) { c.Triples = []l2triangles.Triple{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := NewEngine(cfg)
			assert.Error(t, err)
		})
	}

	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, len(l2triangles.DefaultTriples), e.TriangleCount())
	assert.NotEqual(t, uuid.Nil, e.Session())
	assert.Nil(t, e.Buffer(0))
	assert.Nil(t, e.Buffer(-1))
}

func TestConfigFromTuning(t *testing.T) {
	diff := cmp.Diff(DefaultConfig(), ConfigFromTuning(config.MustLoadDefaultConfig()))
	assert.Empty(t, diff)

	cfg := DefaultConfig()
	assert.Equal(t, 20, cfg.SmoothingWindow)
	assert.Equal(t, 100*time.Millisecond, cfg.MinUpdateInterval)
	assert.Equal(t, 1, cfg.Workers)
}

func TestEngineTauFromSpinningTriangle(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(singleTriangleConfig())
	require.NoError(t, err)

	results := feed(t, e, testutil.Spinning(6, 0.1), frameDt)
	want := math.Pi / (0.1 / frameDt.Seconds())

	first := results[0].Triangles[0]
	assert.True(t, first.Created)
	assert.Nil(t, first.Deltas)
	require.NotNil(t, first.Reading)
	assert.Nil(t, first.Reading.IncrementalTau)
	assert.Equal(t, "Triangle Tau Buffer 0j0j1j2", first.Reading.Name)

	second := results[1].Triangles[0]
	assert.False(t, second.Created)
	require.NotNil(t, second.Deltas)
	assert.Nil(t, second.Reading.IncrementalTau, "one angle sample is not enough for tau")

	for _, res := range results[2:] {
		r := res.Triangles[0].Reading
		require.NotNil(t, r.IncrementalTau)
		assert.InDelta(t, want, *r.IncrementalTau, 1e-6)
		require.NotNil(t, r.FullGestureTau)
		assert.InDelta(t, want, *r.FullGestureTau, 1e-6)
	}

	last := results[5]
	assert.Equal(t, uint64(6), last.Frame)
	assert.InDelta(t, 5*frameDt.Seconds(), last.Elapsed, 1e-12)
	assert.Equal(t, 1, last.Stats.Tracked)
	assert.Equal(t, 1, last.Stats.WithTau)
	assert.InDelta(t, want, last.Stats.MeanTau, 1e-6)
	assert.InDelta(t, want, last.Stats.MedianTau, 1e-6)

	b := e.Buffer(0)
	require.NotNil(t, b)
	assert.Equal(t, 4, b.Incremental().Taus.Len())
	assert.Len(t, b.MotionPath(), 6)
	assert.Len(t, e.History(), 6)
	assert.Equal(t, int64(6), e.Meter().Processed)
}

func TestEngineGate(t *testing.T) {
	t.Parallel()

	cfg := singleTriangleConfig()
	cfg.MinUpdateInterval = 100 * time.Millisecond
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	// Frames every 16ms: 0ms passes, 16..96ms are gated, 112ms passes.
	results := feed(t, e, testutil.Spinning(8, 0.1), frameDt)
	gated := make([]bool, len(results))
	for i, r := range results {
		gated[i] = r.Gated
	}
	assert.Equal(t, []bool{false, true, true, true, true, true, true, false}, gated)

	assert.Empty(t, results[3].Triangles)
	assert.Len(t, results[7].Triangles, 1)

	// Gated frames still feed the pose history.
	assert.Len(t, e.History(), 8)

	m := e.Meter()
	assert.Equal(t, int64(2), m.Processed)
	assert.Equal(t, int64(6), m.Gated)

	// The buffer saw only the two processed frames.
	b := e.Buffer(0)
	require.NotNil(t, b)
	assert.Len(t, b.MotionPath(), 2)
	assert.InDelta(t, 0.112, b.Ending().T, 1e-12)
}

func TestEngineGateRejectsTimeGoingBackwards(t *testing.T) {
	t.Parallel()

	cfg := singleTriangleConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	frames := testutil.Spinning(3, 0.1)
	ctx := context.Background()
	_, err = e.Update(ctx, frames[0], testutil.Epoch.Add(time.Second))
	require.NoError(t, err)

	res, err := e.Update(ctx, frames[1], testutil.Epoch)
	require.NoError(t, err)
	assert.True(t, res.Gated)
	assert.Len(t, e.Buffer(0).MotionPath(), 1)
}

func TestEngineDegenerateTriangle(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MinUpdateInterval = 0
	cfg.Triples = []l2triangles.Triple{{A: 0, B: 1, C: 2}, {A: 0, B: 1, C: 3}}
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	tri := testutil.Scalene
	sample := testutil.Joints(tri[0], tri[1], tri[2], r3.Vec{X: 8})
	res, err := e.Update(context.Background(), sample, testutil.Epoch)
	require.NoError(t, err)

	require.Len(t, res.Triangles, 2)
	assert.NoError(t, res.Triangles[0].Err)
	assert.ErrorIs(t, res.Triangles[1].Err, geometry.ErrDegenerateGeometry)
	assert.NotEmpty(t, res.Triangles[1].Error)
	assert.Nil(t, res.Triangles[1].Reading)

	assert.Equal(t, 1, res.Stats.Degenerate)
	assert.Equal(t, 1, res.Stats.Created)
	assert.NotNil(t, e.Buffer(0))
	assert.Nil(t, e.Buffer(1), "degenerate triangles get no buffer")

	// Once the triangle opens up, its buffer starts on that frame.
	sample.Joints[3].Position = r3.Vec{X: 8, Y: 1}
	res, err = e.Update(context.Background(), sample, testutil.Epoch.Add(frameDt))
	require.NoError(t, err)
	assert.True(t, res.Triangles[1].Created)
	assert.NotNil(t, e.Buffer(1))
}

func TestEngineRejectsBadSamples(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(singleTriangleConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = e.Update(ctx, testutil.Joints(r3.Vec{}, r3.Vec{X: 1}), testutil.Epoch)
	assert.ErrorIs(t, err, l2triangles.ErrIndexOutOfRange)

	_, err = e.Update(ctx, testutil.Joints(r3.Vec{}, r3.Vec{X: math.NaN()}, r3.Vec{Y: 1}), testutil.Epoch)
	assert.ErrorIs(t, err, l1pose.ErrInvalidSample)

	assert.Equal(t, uint64(2), e.Frames())
	assert.Equal(t, int64(2), e.Meter().Rejected)
	assert.Empty(t, e.History())
	assert.Nil(t, e.Buffer(0))
}

func TestEngineParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	frames := make([]l1pose.Sample, 12)
	for i := range frames {
		frames[i] = testutil.Skeleton(float64(i) * 0.05)
	}

	run := func(workers int) []FrameResult {
		cfg := DefaultConfig()
		cfg.MinUpdateInterval = 0
		cfg.Workers = workers
		cfg.DebugLines = true
		e, err := NewEngine(cfg, WithSession(uuid.MustParse("6f1c2d4e-8a9b-4c3d-9e2f-1a2b3c4d5e6f")))
		require.NoError(t, err)
		return feed(t, e, frames, 50*time.Millisecond)
	}

	seq := run(1)
	par := run(4)

	diff := cmp.Diff(seq, par,
		cmpopts.IgnoreFields(TriangleResult{}, "Err"),
		cmpopts.EquateApprox(0, 1e-12),
		cmpopts.EquateNaNs(),
	)
	assert.Empty(t, diff)

	last := seq[len(seq)-1]
	assert.Equal(t, len(l2triangles.DefaultTriples), last.Stats.Triangles)
	assert.Positive(t, last.Stats.Tracked)
	assert.Positive(t, last.Stats.WithTau)
	assert.NotNil(t, last.Triangles[0].Debug)
}

func TestEngineCancelledContext(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		cfg := singleTriangleConfig()
		cfg.Workers = workers
		e, err := NewEngine(cfg)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = e.Update(ctx, testutil.Spinning(1, 0.1)[0], testutil.Epoch)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
		assert.Nil(t, e.Buffer(0))
	}
}

func TestEngineCancelledFrameLeavesNoTrace(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		cfg := singleTriangleConfig()
		cfg.Workers = workers
		cfg.MinUpdateInterval = 100 * time.Millisecond
		e, err := NewEngine(cfg)
		require.NoError(t, err)

		frames := testutil.Spinning(2, 0.1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = e.Update(ctx, frames[0], testutil.Epoch)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, e.History(), "workers=%d", workers)
		assert.Empty(t, e.EulerLines(), "workers=%d", workers)

		// The cancelled frame must not start the gate window or the epoch.
		res, err := e.Update(context.Background(), frames[1], testutil.Epoch.Add(50*time.Millisecond))
		require.NoError(t, err)
		assert.False(t, res.Gated, "workers=%d", workers)
		assert.Zero(t, res.Elapsed, "workers=%d", workers)
		require.Len(t, res.Triangles, 1)
		assert.True(t, res.Triangles[0].Created)
		assert.NotNil(t, e.Buffer(0))
		assert.Len(t, e.EulerLines(), 1)

		m := e.Meter()
		assert.Equal(t, int64(1), m.Processed, "workers=%d", workers)
		assert.Zero(t, m.Gated, "workers=%d", workers)
		assert.Equal(t, uint64(2), e.Frames())
	}
}

func TestHistoryReturnsCopies(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(singleTriangleConfig())
	require.NoError(t, err)
	feed(t, e, testutil.Spinning(2, 0.1), frameDt)

	held := e.History()
	require.Len(t, held, 2)
	want := held[1].Joints[0].Position
	held[1].Joints[0].Position = r3.Vec{X: 1e6}
	held[1].Joints[0].Name = "changed"

	again := e.History()
	assert.Equal(t, want, again[1].Joints[0].Position)
	assert.Equal(t, "j0", again[1].Joints[0].Name)
}

func TestBufferName(t *testing.T) {
	b := l2triangles.NewBuilder(nil)
	set, err := b.Build(testutil.Skeleton(0))
	require.NoError(t, err)

	assert.Equal(t, "Triangle Tau Buffer 0HeadLeftUpLegRightUpLeg", BufferName(set.Triangles[0]))
	assert.Equal(t, "Triangle Tau Buffer 66LeftLegRightShoulderLeftArm", BufferName(set.Triangles[66]))
}

func TestLogStreams(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(monitoring.LogWriters{Ops: &ops, Diag: &diag, Trace: &trace})
	defer SetLogWriters(monitoring.LogWriters{})

	e, err := NewEngine(singleTriangleConfig())
	require.NoError(t, err)
	assert.Contains(t, diag.String(), "[pipeline] ")
	assert.Contains(t, diag.String(), e.Session().String())

	_, err = e.Update(context.Background(), testutil.Joints(r3.Vec{}), testutil.Epoch)
	require.Error(t, err)
	assert.Contains(t, ops.String(), "[pipeline] frame 1 rejected")

	t.Run("euler layer traces degenerate triangles", func(t *testing.T) {
		line := testutil.Joints(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 2})
		res, err := e.Update(context.Background(), line, testutil.Epoch)
		require.NoError(t, err)
		require.Len(t, res.Triangles, 1)
		require.Error(t, res.Triangles[0].Err)
		assert.Contains(t, trace.String(), "[l3euler] skipped: triangle 0")
	})

	t.Run("tau layer reports out of order readings", func(t *testing.T) {
		frames := testutil.Spinning(3, 0.1)
		for n, at := range []time.Duration{time.Second, 2 * time.Second, 500 * time.Millisecond} {
			res, err := e.Update(context.Background(), frames[n], testutil.Epoch.Add(at))
			require.NoError(t, err)
			require.Len(t, res.Triangles, 1)
		}
		assert.Contains(t, diag.String(), "[l4tau] ")
		assert.Contains(t, diag.String(), "before the last one, ignored")
	})
}
