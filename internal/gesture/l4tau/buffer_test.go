package l4tau

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// direction returns a unit Euler line at angle theta in the XY plane.
func direction(theta float64) r3.Vec {
	return r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
}

func newTestBuffer(p Params) *Buffer {
	return New("test", direction(0), r3.Vec{X: 3, Y: 4}, r3.Vec{}, 0, p)
}

// driveTaus feeds a buffer Euler lines whose incremental tau sequence is
// taus. The first update only seeds an incremental angle of a0.
func driveTaus(t *testing.T, b *Buffer, taus []float64, a0, dt float64) {
	t.Helper()
	a, theta, now := a0, a0, dt
	b.Update(direction(theta), now)
	for _, tau := range taus {
		a += math.Pi * dt / tau
		theta += a
		now += dt
		out := b.Update(direction(theta), now)
		require.True(t, out.IncrementalTau)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	b := New("Triangle Tau Buffer 0HeadLeftUpLegRightUpLeg", r3.Vec{X: 1}, r3.Vec{X: 2, Y: 2}, r3.Vec{X: 2}, 1.5, DefaultParams())

	assert.Equal(t, "Triangle Tau Buffer 0HeadLeftUpLegRightUpLeg", b.Name())
	assert.Equal(t, r3.Vec{Y: 2}, b.MeasuringStick())
	assert.Equal(t, Point4{Pos: r3.Vec{X: 1}, T: 1.5}, b.Beginning())
	assert.Equal(t, []Point4{{Pos: r3.Vec{X: 1}, T: 1.5}}, b.MotionPath())
	assert.Equal(t, DefaultParams(), b.Params())
	assert.False(t, b.IsGrowing())
	assert.False(t, b.FullGestureIsGrowing())
	assert.InDelta(t, 0.5, b.NormalizedEulerLength(), 1e-12)

	assert.Equal(t, MinWindow, New("", r3.Vec{}, r3.Vec{}, r3.Vec{}, 0, Params{Window: 2}).Params().Window)
	assert.Equal(t, DefaultWindow, New("", r3.Vec{}, r3.Vec{}, r3.Vec{}, 0, Params{}).Params().Window)
}

func TestStaticTriangleProducesNoTau(t *testing.T) {
	t.Parallel()

	b := newTestBuffer(DefaultParams())
	for i := 1; i <= 3; i++ {
		out := b.Update(direction(0), float64(i)*0.016)
		assert.False(t, out.IncrementalTau)
		assert.False(t, out.FullGestureTau)
	}

	assert.Equal(t, []float64{0, 0, 0}, b.Incremental().Angles.Slice())
	assert.Zero(t, b.Incremental().Taus.Len())
	assert.Zero(t, b.FullGesture().Taus.Len())
	assert.Len(t, b.MotionPath(), 4)

	r := b.Reading()
	assert.Nil(t, r.IncrementalTau)
	assert.Nil(t, r.FullGestureTau)
}

func TestIncrementalTauValue(t *testing.T) {
	t.Parallel()

	// The incremental angle grows by 0.1 rad every 16ms, so the angular
	// gap closes at 6.25 rad/s and tau is pi/6.25.
	const dt = 0.016
	want := math.Pi / (0.1 / dt)
	require.InDelta(t, 0.503, want, 0.001)

	b := newTestBuffer(DefaultParams())
	theta := 0.0
	for n := 1; n <= 5; n++ {
		theta += 0.1 * float64(n)
		b.Update(direction(theta), float64(n)*dt)
	}

	taus := b.Incremental().Taus.Slice()
	require.Len(t, taus, 4)
	for _, tau := range taus {
		assert.InDelta(t, want, tau, 1e-9)
	}

	dots := b.Incremental().Dots.Slice()
	require.Len(t, dots, 3)
	for _, d := range dots {
		assert.InDelta(t, 0, d, 1e-9)
	}
	assert.Zero(t, b.Incremental().Diffs.Len(), "smoothing needs more than four dots")
}

func TestFullGestureUsesIncrementalRate(t *testing.T) {
	t.Parallel()

	const dt = 0.016
	b := newTestBuffer(DefaultParams())
	theta := 0.0
	for n := 1; n <= 4; n++ {
		theta += 0.1 * float64(n)
		b.Update(direction(theta), float64(n)*dt)
	}

	// Full-gesture angles are measured from the baseline...
	full := b.FullGesture().Angles.Slice()
	require.Len(t, full, 4)
	assert.InDelta(t, 0.1, full[0], 1e-9)
	assert.InDelta(t, 1.0, full[3], 1e-9)

	// ...but tau comes from the incremental closure rate, so both tracks
	// agree sample for sample.
	diff := cmp.Diff(b.Incremental().Taus.Slice(), b.FullGesture().Taus.Slice(), cmpopts.EquateApprox(0, 1e-12))
	assert.Empty(t, diff)
}

func TestTrendClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		taus    []float64
		growing bool
	}{
		// tau-dots 1, 4, 9, ... so the smoothed differences increase.
		{name: "increasing", taus: []float64{10, 11, 15, 24, 40, 65, 101, 150, 214}, growing: true},
		// tau-dots -1, -4, -9, ... so they decrease.
		{name: "decreasing", taus: []float64{300, 299, 295, 286, 270, 245, 209, 160, 96}, growing: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBuffer(DefaultParams())
			driveTaus(t, b, tt.taus, 0.05, 0.01)

			diff := cmp.Diff(tt.taus, b.Incremental().Taus.Slice(), cmpopts.EquateApprox(0, 1e-4))
			require.Empty(t, diff)

			diffs := b.Incremental().Diffs.Slice()
			require.Len(t, diffs, 4)
			sign := 1.0
			if !tt.growing {
				sign = -1
			}
			for i, want := range []float64{8, 10, 12, 14} {
				assert.InDelta(t, sign*want, diffs[i], 1e-4)
			}

			assert.Equal(t, tt.growing, b.IsGrowing())
			assert.Equal(t, tt.growing, b.FullGestureIsGrowing())
			// |change| = 2 against |last| = 14: within 15%.
			assert.True(t, b.Incremental().IsSteady)

			r := b.Reading()
			require.NotNil(t, r.IncrementalSmoothedDiff)
			assert.InDelta(t, sign*14, *r.IncrementalSmoothedDiff, 1e-4)
			assert.Equal(t, tt.growing, r.IsGrowing)
		})
	}
}

func TestPruning(t *testing.T) {
	t.Parallel()

	b := newTestBuffer(Params{Window: 20})
	theta, step := 0.0, 0.0
	for n := 1; n <= 40; n++ {
		step += 0.001
		theta += step
		b.Update(direction(theta), float64(n)*0.01)
	}

	for _, tr := range []*Track{b.Incremental(), b.FullGesture()} {
		assert.Equal(t, 20, tr.Angles.Len())
		assert.Equal(t, 20, tr.Taus.Len())
		assert.Equal(t, 20, tr.Dots.Len())
		assert.Equal(t, 20, tr.Diffs.Len())
	}

	// The retained incremental angles are the 20 most recent: 0.021..0.040.
	angles := b.Incremental().Angles.Slice()
	assert.InDelta(t, 0.021, angles[0], 1e-9)
	assert.InDelta(t, 0.040, angles[19], 1e-9)

	// The motion path is unbounded by default.
	assert.Len(t, b.MotionPath(), 41)
}

func TestMaxMotionPath(t *testing.T) {
	t.Parallel()

	b := newTestBuffer(Params{MaxMotionPath: 3})
	for n := 1; n <= 5; n++ {
		b.Update(direction(0.1*float64(n)), float64(n))
	}
	path := b.MotionPath()
	require.Len(t, path, 3)
	assert.Equal(t, 3.0, path[0].T)
	assert.Equal(t, 5.0, path[2].T)
	// The baseline survives trimming.
	assert.Equal(t, 0.0, b.Beginning().T)
}

func TestIntervalGuards(t *testing.T) {
	t.Parallel()

	t.Run("zero interval records but skips tau", func(t *testing.T) {
		t.Parallel()
		b := newTestBuffer(DefaultParams())
		b.Update(direction(0.1), 0.1)
		out := b.Update(direction(0.3), 0.1)
		assert.True(t, out.ZeroInterval)
		assert.False(t, out.IncrementalTau)
		assert.Zero(t, b.Incremental().Taus.Len())
		assert.Equal(t, 2, b.Incremental().Angles.Len())
		assert.Equal(t, direction(0.3), b.Ending().Pos)
	})

	t.Run("time going backwards is rejected", func(t *testing.T) {
		t.Parallel()
		b := newTestBuffer(DefaultParams())
		b.Update(direction(0.1), 1.0)
		before := b.MotionPath()

		out := b.Update(direction(0.5), 0.5)
		assert.True(t, out.Rejected)
		assert.InDelta(t, -0.5, out.Interval, 1e-12)
		assert.Equal(t, before, b.MotionPath())
		assert.Equal(t, 1, b.Incremental().Angles.Len())
		assert.Equal(t, 1.0, b.ElapsedSinceLast())
	})

	t.Run("elapsed bookkeeping", func(t *testing.T) {
		t.Parallel()
		b := newTestBuffer(DefaultParams())
		b.Update(direction(0.1), 0.25)
		b.Update(direction(0.2), 0.75)
		assert.InDelta(t, 0.5, b.ElapsedSinceLast(), 1e-12)
		assert.InDelta(t, 0.75, b.ElapsedSinceBeginning(), 1e-12)
	})
}

func TestZeroLengthEulerLine(t *testing.T) {
	t.Parallel()

	b := newTestBuffer(DefaultParams())
	out := b.Update(r3.Vec{}, 0.1)
	assert.True(t, out.NoDirection)
	assert.Zero(t, b.Incremental().Angles.Len())
	assert.Zero(t, b.FullGesture().Angles.Len())

	// The next frame's previous line is the zero vector, so it is
	// undefined as well; the one after that recovers.
	out = b.Update(direction(0.2), 0.2)
	assert.True(t, out.NoDirection)
	assert.Zero(t, b.Incremental().Angles.Len())
	assert.Equal(t, 1, b.FullGesture().Angles.Len())

	out = b.Update(direction(0.5), 0.3)
	assert.False(t, out.NoDirection)
	assert.Equal(t, 1, b.Incremental().Angles.Len())

	for _, v := range b.Incremental().Angles.Slice() {
		assert.False(t, math.IsNaN(v))
	}
}

func TestAngleBetweenClamps(t *testing.T) {
	t.Parallel()

	// Nearly parallel vectors whose normalised dot can round above 1.
	a := r3.Vec{X: 1e8, Y: 1}
	angle, ok := angleBetween(a, r3.Scale(3, a))
	require.True(t, ok)
	assert.False(t, math.IsNaN(angle))
	assert.InDelta(t, 0, angle, 1e-7)

	angle, ok = angleBetween(r3.Vec{X: 1}, r3.Vec{X: -2})
	require.True(t, ok)
	assert.InDelta(t, math.Pi, angle, 1e-12)
}
