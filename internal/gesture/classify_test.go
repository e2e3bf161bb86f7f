package gesture

import "testing"

func TestClassify_AllCombinations(t *testing.T) {
	// Walk all 32 finger-state vectors and check the classification rules:
	// four or more extended is open, none is fist, exactly the index is
	// point, everything else is neutral.
	for bits := 0; bits < 32; bits++ {
		var fs FingerState
		for f := 0; f < 5; f++ {
			fs[f] = bits&(1<<f) != 0
		}

		var want Gesture
		switch {
		case fs.ExtendedCount() >= 4:
			want = GestureOpen
		case fs.ExtendedCount() == 0:
			want = GestureFist
		case fs == (FingerState{false, true, false, false, false}):
			want = GesturePoint
		default:
			want = GestureNeutral
		}

		if got := Classify(fs); got != want {
			t.Errorf("Classify(%v) = %s, want %s", fs, got, want)
		}
	}
}

func TestClassify_OpenToleratesOneAmbiguousFinger(t *testing.T) {
	// Four extended fingers with a curled thumb still reads as open.
	fs := FingerState{false, true, true, true, true}
	if got := Classify(fs); got != GestureOpen {
		t.Errorf("Classify(four fingers) = %s, want open", got)
	}
}

func TestClassify_PointRequiresExactMatch(t *testing.T) {
	// Index plus thumb is not a point; the single-finger pattern is exact.
	fs := FingerState{true, true, false, false, false}
	if got := Classify(fs); got != GestureNeutral {
		t.Errorf("Classify(thumb+index) = %s, want neutral", got)
	}
}

func TestClassify_ExtendedCount(t *testing.T) {
	tests := []struct {
		fs   FingerState
		want int
	}{
		{FingerState{}, 0},
		{FingerState{true, false, false, false, false}, 1},
		{FingerState{true, true, true, true, true}, 5},
		{FingerState{false, true, false, true, false}, 2},
	}
	for _, tt := range tests {
		if got := tt.fs.ExtendedCount(); got != tt.want {
			t.Errorf("ExtendedCount(%v) = %d, want %d", tt.fs, got, tt.want)
		}
	}
}
