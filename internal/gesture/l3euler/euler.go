package l3euler

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/tau.report/internal/gesture/geometry"
	"github.com/banshee-data/tau.report/internal/gesture/l2triangles"
)

// Options controls extraction.
type Options struct {
	// Debug requests DebugLines for every triangle.
	Debug bool
	// Tolerance is the minimum sine of the angle at vertex A. Values at or
	// below geometry.DegenerateTolerance use the kernel's own test.
	Tolerance float64
}

// Sample is the Euler-line decomposition of one triangle.
type Sample struct {
	Index        int
	Anchor       r3.Vec // vertex A
	Centroid     r3.Vec
	Circumcenter r3.Vec
	EulerLine    r3.Vec
	Debug        *DebugLines
	// Err is set when the triangle is degenerate. The vector fields are
	// zero in that case and must not be used.
	Err error
}

// OK reports whether the sample carries a usable Euler line.
func (s Sample) OK() bool { return s.Err == nil }

// MeasuringStick returns the vector from vertex A to the circumcenter.
func (s Sample) MeasuringStick() r3.Vec {
	return r3.Sub(s.Circumcenter, s.Anchor)
}

// Extract computes one Sample per triangle in set, in set order. A
// degenerate triangle only marks its own sample.
func Extract(set l2triangles.Set, opts Options) []Sample {
	out := make([]Sample, set.Len())
	for i, t := range set.Triangles {
		out[i] = ExtractOne(t, opts)
		if !out[i].OK() {
			logs.Tracef("skipped: %v", out[i].Err)
		}
	}
	return out
}

// ExtractOne computes the Sample for a single triangle.
func ExtractOne(t l2triangles.Triangle, opts Options) Sample {
	a, b, c := t.Positions[0], t.Positions[1], t.Positions[2]
	s := Sample{Index: t.Index, Anchor: a}
	if opts.Debug {
		s.Debug = NewDebugLines(a, b, c)
	}

	if opts.Tolerance > geometry.DegenerateTolerance {
		if sine := geometry.SpanSine(a, b, c); sine <= opts.Tolerance {
			s.Err = fmt.Errorf("triangle %d %s: %w", t.Index, t.Triple, geometry.ErrDegenerateGeometry)
			return s
		}
	}

	cc, err := geometry.TriangleCircumcenter3D(a, b, c)
	if err != nil {
		s.Err = fmt.Errorf("triangle %d %s: %w", t.Index, t.Triple, err)
		return s
	}

	s.Centroid = geometry.Centroid(a, b, c)
	s.Circumcenter = cc
	s.EulerLine = r3.Sub(s.Centroid, cc)
	return s
}
