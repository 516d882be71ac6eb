package l4tau

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultWindow is the default capacity of every bounded series.
	DefaultWindow = 20
	// MinWindow is the smallest usable window. Smoothing needs more than
	// four tau-dot samples.
	MinWindow = 5
	// DefaultAngleEpsilon is the smallest angle delta treated as motion.
	DefaultAngleEpsilon = 1e-12
	// DefaultSteadyRatio bounds the relative change of the smoothed diff
	// for a trend to count as steady.
	DefaultSteadyRatio = 0.15
)

// Params tunes a Buffer.
type Params struct {
	Window        int
	AngleEpsilon  float64
	SteadyRatio   float64
	MaxMotionPath int // 0 keeps every point
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Window:       DefaultWindow,
		AngleEpsilon: DefaultAngleEpsilon,
		SteadyRatio:  DefaultSteadyRatio,
	}
}

func (p Params) normalised() Params {
	if p.Window <= 0 {
		p.Window = DefaultWindow
	}
	if p.Window < MinWindow {
		p.Window = MinWindow
	}
	if p.AngleEpsilon < 0 {
		p.AngleEpsilon = 0
	}
	if p.MaxMotionPath < 0 {
		p.MaxMotionPath = 0
	}
	return p
}

// Point4 is an Euler line stamped with the session time it was read at.
type Point4 struct {
	Pos r3.Vec  `json:"pos"`
	T   float64 `json:"t"`
}

// Track is one tau derivation chain: angle samples, tau, tau-dot, the
// smoothed second difference and the trend flags derived from it.
type Track struct {
	Angles *Series
	Taus   *Series
	Dots   *Series
	Diffs  *Series

	IsGrowing bool
	IsSteady  bool
}

func newTrack(window int) Track {
	return Track{
		Angles: NewSeries(window),
		Taus:   NewSeries(window),
		Dots:   NewSeries(window),
		Diffs:  NewSeries(window),
	}
}

// rate returns the angular velocity between the two latest angle samples.
func (t *Track) rate(dt, eps float64) (float64, bool) {
	last, ok := t.Angles.Last(0)
	if !ok {
		return 0, false
	}
	prev, ok := t.Angles.Last(1)
	if !ok {
		return 0, false
	}
	delta := last - prev
	if math.Abs(delta) <= eps {
		return 0, false
	}
	return delta / dt, true
}

// pushTau records a tau sample and runs the downstream stages. Each stage
// only advances when the one before it produced a new sample.
func (t *Track) pushTau(tau, steadyRatio float64) {
	t.Taus.Push(tau)

	cur, _ := t.Taus.Last(0)
	prev, ok := t.Taus.Last(1)
	if !ok {
		return
	}
	t.Dots.Push(cur - prev)

	if t.Dots.Len() <= 4 {
		return
	}
	d0, _ := t.Dots.Last(0)
	d1, _ := t.Dots.Last(1)
	d2, _ := t.Dots.Last(2)
	t.Diffs.Push((d0+d1)/2 - (d1+d2)/2)

	last, _ := t.Diffs.Last(0)
	before, ok := t.Diffs.Last(1)
	if !ok {
		return
	}
	change := last - before
	t.IsGrowing = change >= 0
	t.IsSteady = math.Abs(change) < steadyRatio*math.Abs(last)
}

// Outcome reports what a single Update did.
type Outcome struct {
	// Rejected is set when now precedes the last reading. Nothing changed.
	Rejected bool
	// ZeroInterval is set when now equals the last reading. The point was
	// recorded but no tau was derived.
	ZeroInterval bool
	// NoDirection is set when an Euler line involved had zero length, so
	// its direction and any angle against it are undefined.
	NoDirection bool

	IncrementalTau bool // a new incremental tau sample was appended
	FullGestureTau bool // a new full-gesture tau sample was appended

	Interval float64
}

// Buffer follows one triangle's Euler line for the life of a session.
type Buffer struct {
	name   string
	params Params

	measuringStick r3.Vec
	beginning      Point4
	ending         Point4
	motionPath     []Point4

	lastReading           float64
	elapsedSinceLast      float64
	elapsedSinceBeginning float64

	incremental Track
	full        Track
}

// New starts tracking at time now. euler becomes the baseline for the
// full-gesture track and the measuring stick is the vector from vertexA to
// the circumcenter.
func New(name string, euler, circumcenter, vertexA r3.Vec, now float64, p Params) *Buffer {
	p = p.normalised()
	start := Point4{Pos: euler, T: now}
	return &Buffer{
		name:           name,
		params:         p,
		measuringStick: r3.Sub(circumcenter, vertexA),
		beginning:      start,
		ending:         start,
		motionPath:     []Point4{start},
		lastReading:    now,
		incremental:    newTrack(p.Window),
		full:           newTrack(p.Window),
	}
}

// Update records the Euler line read at now and advances both tracks.
func (b *Buffer) Update(euler r3.Vec, now float64) Outcome {
	if now < b.lastReading {
		logs.Diagf("%s: reading at %.6fs is %.6fs before the last one, ignored", b.name, now, b.lastReading-now)
		return Outcome{Rejected: true, Interval: now - b.lastReading}
	}

	dt := now - b.lastReading
	out := Outcome{Interval: dt, ZeroInterval: dt == 0}
	b.elapsedSinceLast = dt
	b.elapsedSinceBeginning = now - b.beginning.T

	previous := b.ending.Pos
	point := Point4{Pos: euler, T: now}
	b.motionPath = append(b.motionPath, point)
	if m := b.params.MaxMotionPath; m > 0 && len(b.motionPath) > m {
		b.motionPath = b.motionPath[len(b.motionPath)-m:]
	}
	b.ending = point
	b.lastReading = now

	var rate float64
	var haveRate bool
	if angle, ok := angleBetween(previous, euler); ok {
		b.incremental.Angles.Push(angle)
		if !out.ZeroInterval {
			rate, haveRate = b.incremental.rate(dt, b.params.AngleEpsilon)
		}
		if haveRate {
			b.incremental.pushTau(math.Pi/rate, b.params.SteadyRatio)
			out.IncrementalTau = true
		}
	} else {
		out.NoDirection = true
	}

	// The full-gesture gap is measured against the baseline, but its
	// closure rate is the incremental one.
	if angle, ok := angleBetween(b.beginning.Pos, euler); ok {
		b.full.Angles.Push(angle)
		if haveRate && b.full.Angles.Len() >= 2 && angle > 0 {
			b.full.pushTau(math.Pi/rate, b.params.SteadyRatio)
			out.FullGestureTau = true
		}
	} else {
		out.NoDirection = true
	}

	return out
}

// angleBetween returns the angle between the directions of a and b. The
// cosine is clamped so rounding never yields NaN.
func angleBetween(a, b r3.Vec) (float64, bool) {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na == 0 || nb == 0 {
		return 0, false
	}
	cos := r3.Dot(a, b) / (na * nb)
	return math.Acos(math.Max(-1, math.Min(1, cos))), true
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string { return b.name }

// Params returns the buffer's effective tuning.
func (b *Buffer) Params() Params { return b.params }

// MeasuringStick returns the circumcenter offset captured at creation.
func (b *Buffer) MeasuringStick() r3.Vec { return b.measuringStick }

// Beginning returns the baseline point.
func (b *Buffer) Beginning() Point4 { return b.beginning }

// Ending returns the latest point.
func (b *Buffer) Ending() Point4 { return b.ending }

// MotionPath returns a copy of the recorded points, oldest first.
func (b *Buffer) MotionPath() []Point4 {
	out := make([]Point4, len(b.motionPath))
	copy(out, b.motionPath)
	return out
}

// Incremental returns the frame-to-frame track.
func (b *Buffer) Incremental() *Track { return &b.incremental }

// FullGesture returns the track measured against the baseline.
func (b *Buffer) FullGesture() *Track { return &b.full }

// IsGrowing reports the incremental trend.
func (b *Buffer) IsGrowing() bool { return b.incremental.IsGrowing }

// FullGestureIsGrowing reports the full-gesture trend.
func (b *Buffer) FullGestureIsGrowing() bool { return b.full.IsGrowing }

// ElapsedSinceLast returns the interval of the last accepted update.
func (b *Buffer) ElapsedSinceLast() float64 { return b.elapsedSinceLast }

// ElapsedSinceBeginning returns the time from creation to the last
// accepted update.
func (b *Buffer) ElapsedSinceBeginning() float64 { return b.elapsedSinceBeginning }

// NormalizedEulerLength returns the latest Euler line length in units of
// the measuring stick, or 0 when the stick has no length.
func (b *Buffer) NormalizedEulerLength() float64 {
	stick := r3.Norm(b.measuringStick)
	if stick == 0 {
		return 0
	}
	return r3.Norm(b.ending.Pos) / stick
}
