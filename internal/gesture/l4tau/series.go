package l4tau

import "gonum.org/v1/gonum/stat"

// Series is a fixed-capacity ring of float64 samples. Pushing past capacity
// evicts the oldest sample.
type Series struct {
	data []float64
	pos  int
	full bool
}

// NewSeries creates a Series holding at most capacity samples. capacity
// must be positive.
func NewSeries(capacity int) *Series {
	return &Series{data: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample when full.
func (s *Series) Push(v float64) {
	s.data[s.pos] = v
	s.pos++
	if s.pos >= len(s.data) {
		s.pos = 0
		s.full = true
	}
}

// Len returns the number of samples held.
func (s *Series) Len() int {
	if s.full {
		return len(s.data)
	}
	return s.pos
}

// Cap returns the capacity.
func (s *Series) Cap() int { return len(s.data) }

// Last returns the k-th most recent sample; Last(0) is the newest.
func (s *Series) Last(k int) (float64, bool) {
	if k < 0 || k >= s.Len() {
		return 0, false
	}
	i := s.pos - 1 - k
	if i < 0 {
		i += len(s.data)
	}
	return s.data[i], true
}

// Slice returns the samples oldest first.
func (s *Series) Slice() []float64 {
	n := s.Len()
	out := make([]float64, n)
	if s.full {
		copy(out, s.data[s.pos:])
		copy(out[len(s.data)-s.pos:], s.data[:s.pos])
	} else {
		copy(out, s.data[:s.pos])
	}
	return out
}

// Mean returns the mean of the held samples, or 0 when empty.
func (s *Series) Mean() float64 {
	if s.Len() == 0 {
		return 0
	}
	return stat.Mean(s.Slice(), nil)
}

// Reset drops every sample.
func (s *Series) Reset() {
	s.pos = 0
	s.full = false
}
