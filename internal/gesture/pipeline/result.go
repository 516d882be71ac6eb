package pipeline

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/tau.report/internal/gesture/l2triangles"
	"github.com/banshee-data/tau.report/internal/gesture/l3euler"
	"github.com/banshee-data/tau.report/internal/gesture/l4tau"
)

// FrameResult is everything one Update produced.
type FrameResult struct {
	Session uuid.UUID `json:"session"`
	Frame   uint64    `json:"frame"`
	Time    time.Time `json:"time"`
	// Elapsed is the frame time in seconds since the session's first frame.
	Elapsed float64 `json:"elapsed"`
	// Gated is set when the frame arrived inside MinUpdateInterval and
	// only the pose and triangle stages ran.
	Gated     bool             `json:"gated"`
	Triangles []TriangleResult `json:"triangles,omitempty"`
	Stats     FrameStats       `json:"stats"`
}

// TriangleResult is the per-triangle output of a processed frame.
type TriangleResult struct {
	Index        int                         `json:"index"`
	Name         string                      `json:"name"`
	Centroid     r3.Vec                      `json:"centroid"`
	Circumcenter r3.Vec                      `json:"circumcenter"`
	EulerLine    r3.Vec                      `json:"euler_line"`
	Debug        *l3euler.DebugLines         `json:"debug,omitempty"`
	Deltas       *[3]l2triangles.VertexDelta `json:"deltas,omitempty"`

	// Created is set on the frame that started the triangle's buffer.
	Created bool           `json:"created,omitempty"`
	Outcome l4tau.Outcome  `json:"-"`
	Reading *l4tau.Reading `json:"reading,omitempty"`

	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// FrameStats summarises a processed frame across triangles.
type FrameStats struct {
	Triangles  int `json:"triangles"`
	Degenerate int `json:"degenerate"`
	Tracked    int `json:"tracked"`
	Created    int `json:"created"`
	Rejected   int `json:"rejected"`

	// WithTau counts buffers that have an incremental tau sample.
	WithTau            int `json:"with_tau"`
	Growing            int `json:"growing"`
	FullGestureGrowing int `json:"full_gesture_growing"`

	MeanTau   float64 `json:"mean_tau"`
	MedianTau float64 `json:"median_tau"`
	MinTau    float64 `json:"min_tau"`
	MaxTau    float64 `json:"max_tau"`
	MeanEuler float64 `json:"mean_normalized_euler"`
}

func summarise(results []TriangleResult) FrameStats {
	s := FrameStats{Triangles: len(results)}
	var taus, eulers []float64
	for _, r := range results {
		if r.Err != nil {
			s.Degenerate++
			continue
		}
		if r.Created {
			s.Created++
		}
		if r.Outcome.Rejected {
			s.Rejected++
		}
		if r.Reading == nil {
			continue
		}
		s.Tracked++
		if r.Reading.IsGrowing {
			s.Growing++
		}
		if r.Reading.FullGestureIsGrowing {
			s.FullGestureGrowing++
		}
		eulers = append(eulers, r.Reading.NormalizedEulerLength)
		if r.Reading.IncrementalTau != nil && !math.IsInf(*r.Reading.IncrementalTau, 0) {
			taus = append(taus, *r.Reading.IncrementalTau)
		}
	}

	s.WithTau = len(taus)
	if len(taus) > 0 {
		s.MeanTau = stat.Mean(taus, nil)
		s.MinTau = floats.Min(taus)
		s.MaxTau = floats.Max(taus)
		sorted := append([]float64(nil), taus...)
		floats.Argsort(sorted, make([]int, len(sorted)))
		s.MedianTau = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	if len(eulers) > 0 {
		s.MeanEuler = stat.Mean(eulers, nil)
	}
	return s
}
