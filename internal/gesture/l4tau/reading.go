package l4tau

// Reading is a snapshot of the latest derived values of a Buffer. Pointer
// fields are nil until the corresponding series has a sample.
type Reading struct {
	Name string `json:"name"`

	IncrementalTau          *float64 `json:"incremental_tau,omitempty"`
	IncrementalTauDot       *float64 `json:"incremental_tau_dot,omitempty"`
	IncrementalSmoothedDiff *float64 `json:"incremental_smoothed_diff,omitempty"`
	IsGrowing               bool     `json:"is_growing"`
	IsSteady                bool     `json:"is_steady"`

	FullGestureTau          *float64 `json:"full_gesture_tau,omitempty"`
	FullGestureTauDot       *float64 `json:"full_gesture_tau_dot,omitempty"`
	FullGestureSmoothedDiff *float64 `json:"full_gesture_smoothed_diff,omitempty"`
	FullGestureIsGrowing    bool     `json:"full_gesture_is_growing"`
	FullGestureIsSteady     bool     `json:"full_gesture_is_steady"`

	ElapsedSinceLast      float64 `json:"elapsed_since_last"`
	ElapsedSinceBeginning float64 `json:"elapsed_since_beginning"`
	NormalizedEulerLength float64 `json:"normalized_euler_length"`
}

// Reading returns the buffer's current snapshot.
func (b *Buffer) Reading() Reading {
	return Reading{
		Name:                    b.name,
		IncrementalTau:          latest(b.incremental.Taus),
		IncrementalTauDot:       latest(b.incremental.Dots),
		IncrementalSmoothedDiff: latest(b.incremental.Diffs),
		IsGrowing:               b.incremental.IsGrowing,
		IsSteady:                b.incremental.IsSteady,
		FullGestureTau:          latest(b.full.Taus),
		FullGestureTauDot:       latest(b.full.Dots),
		FullGestureSmoothedDiff: latest(b.full.Diffs),
		FullGestureIsGrowing:    b.full.IsGrowing,
		FullGestureIsSteady:     b.full.IsSteady,
		ElapsedSinceLast:        b.elapsedSinceLast,
		ElapsedSinceBeginning:   b.elapsedSinceBeginning,
		NormalizedEulerLength:   b.NormalizedEulerLength(),
	}
}

func latest(s *Series) *float64 {
	v, ok := s.Last(0)
	if !ok {
		return nil
	}
	return &v
}
