// Package testutil provides shared pose fixtures and clocks for the
// gesture package tests.
package testutil

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/tau.report/internal/gesture/l1pose"
	"github.com/banshee-data/tau.report/internal/timeutil"
)

// Epoch is the fixed start time used by test clocks.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// NewClock returns a SimClock set to Epoch.
func NewClock() *timeutil.SimClock {
	return timeutil.NewSimClock(Epoch)
}

// Joints builds a sample with one joint per point, named j0, j1, ...
func Joints(points ...r3.Vec) l1pose.Sample {
	joints := make([]l1pose.Joint, len(points))
	for i, p := range points {
		joints[i] = l1pose.Joint{Name: fmt.Sprintf("j%d", i), Position: p}
	}
	return l1pose.Sample{Joints: joints}
}

// Scalene is a triangle with a non-zero Euler line lying in the XY plane.
var Scalene = [3]r3.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 1, Y: 3}}

// RotateZ rotates every point of tri by theta radians about the Z axis.
// The triangle's Euler line rotates by the same angle.
func RotateZ(tri [3]r3.Vec, theta float64) [3]r3.Vec {
	s, c := math.Sincos(theta)
	var out [3]r3.Vec
	for i, p := range tri {
		out[i] = r3.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
	}
	return out
}

// Spinning returns frames of Scalene whose Euler line turns by a growing
// amount each frame: step*1, step*2, ... The first frame is unrotated.
func Spinning(frames int, step float64) []l1pose.Sample {
	out := make([]l1pose.Sample, frames)
	theta := 0.0
	for n := range out {
		theta += step * float64(n)
		tri := RotateZ(Scalene, theta)
		out[n] = Joints(tri[0], tri[1], tri[2])
	}
	return out
}

// Skeleton returns the synthetic source's pose at t seconds.
func Skeleton(t float64) l1pose.Sample {
	return l1pose.NewSyntheticSource(NewClock(), 0.5).At(t)
}
