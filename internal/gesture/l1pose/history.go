package l1pose

// DefaultHistoryLength is the number of raw pose frames kept for consumers
// that want a short look-back window.
const DefaultHistoryLength = 10

// History keeps the most recent pose samples, oldest first, and exposes the
// frame immediately before the current one for delta computations.
type History struct {
	limit   int
	samples []Sample
}

// NewHistory creates a History bounded to limit frames. A non-positive limit
// falls back to DefaultHistoryLength.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLength
	}
	return &History{limit: limit}
}

// Push records s as the current frame and evicts the oldest frame once the
// window is full.
func (h *History) Push(s Sample) {
	h.samples = append(h.samples, s.Clone())
	if len(h.samples) > h.limit {
		h.samples = h.samples[len(h.samples)-h.limit:]
	}
}

// Len returns the number of frames held.
func (h *History) Len() int { return len(h.samples) }

// Current returns the most recent frame.
func (h *History) Current() (Sample, bool) {
	if len(h.samples) == 0 {
		return Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Previous returns the frame before the current one.
func (h *History) Previous() (Sample, bool) {
	if len(h.samples) < 2 {
		return Sample{}, false
	}
	return h.samples[len(h.samples)-2], true
}

// Samples returns the held frames, oldest first. The slice is shared and
// must not be modified.
func (h *History) Samples() []Sample { return h.samples }

// Reset drops all held frames.
func (h *History) Reset() { h.samples = nil }
