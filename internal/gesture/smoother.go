package gesture

// Point2 is a 2D position in normalized image space.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Smoother applies single-pole exponential smoothing to the hand position
// and openness signals to suppress frame-to-frame landmark jitter.
//
// The state is long-lived: it is deliberately not reset on hand loss so the
// smoothed value does not jump when the hand reappears. Only an explicit
// Reset clears it.
type Smoother struct {
	factor      float64
	position    Point2
	openness    float64
	initialized bool
}

// NewSmoother creates a Smoother with the given smoothing factor in (0, 1].
// Higher factors track the raw signal faster.
func NewSmoother(factor float64) *Smoother {
	return &Smoother{factor: factor}
}

// Update folds one raw sample into the smoothed state and returns the new
// smoothed position and openness. The first sample after construction or
// Reset seeds the state directly.
func (s *Smoother) Update(raw Point2, openness float64) (Point2, float64) {
	if !s.initialized {
		s.position = raw
		s.openness = openness
		s.initialized = true
		return s.position, s.openness
	}

	s.position.X += (raw.X - s.position.X) * s.factor
	s.position.Y += (raw.Y - s.position.Y) * s.factor
	s.openness += (openness - s.openness) * s.factor

	return s.position, s.openness
}

// Position returns the current smoothed position.
func (s *Smoother) Position() Point2 {
	return s.position
}

// Openness returns the current smoothed openness.
func (s *Smoother) Openness() float64 {
	return s.openness
}

// Reset clears the smoothing state. Called only on controller restart,
// never on single-frame hand loss.
func (s *Smoother) Reset() {
	s.position = Point2{}
	s.openness = 0
	s.initialized = false
}
