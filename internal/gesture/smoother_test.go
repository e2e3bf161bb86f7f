package gesture

import (
	"math"
	"testing"
)

func TestSmoother_FirstSampleSeedsState(t *testing.T) {
	s := NewSmoother(0.28)
	pos, op := s.Update(Point2{X: 0.4, Y: 0.6}, 0.1)

	if pos.X != 0.4 || pos.Y != 0.6 {
		t.Errorf("first position = %+v, want raw input", pos)
	}
	if op != 0.1 {
		t.Errorf("first openness = %f, want 0.1", op)
	}
}

func TestSmoother_MonotoneConvergence(t *testing.T) {
	s := NewSmoother(0.28)
	s.Update(Point2{}, 0)

	target := 1.0
	prev := 0.0
	for i := 0; i < 100; i++ {
		pos, _ := s.Update(Point2{X: target}, 0)
		// Monotonically approaches the target without overshoot.
		if pos.X < prev {
			t.Fatalf("frame %d: smoothed value regressed from %f to %f", i, prev, pos.X)
		}
		if pos.X > target {
			t.Fatalf("frame %d: smoothed value %f overshot target %f", i, pos.X, target)
		}
		prev = pos.X
	}

	if math.Abs(prev-target) > 1e-6 {
		t.Errorf("after 100 frames |smoothed - target| = %e, want < 1e-6", math.Abs(prev-target))
	}
}

func TestSmoother_OpennessConverges(t *testing.T) {
	s := NewSmoother(0.28)
	var op float64
	for i := 0; i < 120; i++ {
		_, op = s.Update(Point2{}, 0.16)
	}
	if math.Abs(op-0.16) > 1e-6 {
		t.Errorf("openness = %f, want ~0.16", op)
	}
}

func TestSmoother_ResetClearsState(t *testing.T) {
	s := NewSmoother(0.5)
	s.Update(Point2{X: 1, Y: 1}, 1)
	s.Reset()

	pos, op := s.Update(Point2{X: 0.2, Y: 0.3}, 0.05)
	if pos.X != 0.2 || pos.Y != 0.3 || op != 0.05 {
		t.Errorf("after Reset first sample should seed directly, got pos=%+v op=%f", pos, op)
	}
}

func TestSmoother_StatePersistsAcrossGap(t *testing.T) {
	// Hand loss does not touch the smoother; whoever owns it simply stops
	// feeding samples. The next sample after a gap smooths from the held
	// value instead of jumping.
	s := NewSmoother(0.28)
	for i := 0; i < 50; i++ {
		s.Update(Point2{X: 0.5, Y: 0.5}, 0.1)
	}

	pos, _ := s.Update(Point2{X: 0.9, Y: 0.5}, 0.1)
	if pos.X >= 0.9 {
		t.Errorf("position jumped to raw value %f; want smoothing from held state", pos.X)
	}
	if pos.X <= 0.5 {
		t.Errorf("position %f did not move toward new raw value", pos.X)
	}
}
