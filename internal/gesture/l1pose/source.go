package l1pose

import (
	"errors"
	"sync"
)

// ErrNoSample is returned by a Source that has no further frames.
var ErrNoSample = errors.New("no pose sample available")

// Source is anything that can provide pose snapshots over time: the game
// layer, a recorded session, or the synthetic generator.
type Source interface {
	Next() (Sample, error)
}

// SliceSource replays a fixed list of samples in order and then reports
// ErrNoSample.
type SliceSource struct {
	mu      sync.Mutex
	samples []Sample
	pos     int
}

// NewSliceSource creates a SliceSource over samples.
func NewSliceSource(samples []Sample) *SliceSource {
	return &SliceSource{samples: samples}
}

// Next returns the next recorded sample.
func (s *SliceSource) Next() (Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.samples) {
		return Sample{}, ErrNoSample
	}
	out := s.samples[s.pos]
	s.pos++
	return out, nil
}

// Remaining returns how many samples have not been replayed yet.
func (s *SliceSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples) - s.pos
}
