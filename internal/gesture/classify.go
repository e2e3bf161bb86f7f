package gesture

// Gesture is a discrete hand-pose category derived from the finger flags.
type Gesture string

const (
	// GestureOpen is an open palm: four or more fingers extended.
	GestureOpen Gesture = "open"
	// GestureFist is a closed fist: no fingers extended.
	GestureFist Gesture = "fist"
	// GesturePoint is exactly the index finger extended.
	GesturePoint Gesture = "point"
	// GestureNeutral is any other finger combination.
	GestureNeutral Gesture = "neutral"
	// GestureNone means no hand was detected this frame.
	GestureNone Gesture = "none"
)

// pointPattern is the exact finger combination for the point gesture:
// index extended, everything else curled. Accidental thumb extension does
// not count; that strictness is a tunable policy, not an accident.
var pointPattern = FingerState{false, true, false, false, false}

// Classify maps finger flags to a gesture. It is a pure function of the
// current frame's flags with no hidden state.
//
// The open check tolerates one ambiguous finger because the thumb flag is
// the noisiest; point requires the exact single-finger pattern. Open and
// fist are checked before point.
func Classify(fs FingerState) Gesture {
	switch {
	case fs.ExtendedCount() >= 4:
		return GestureOpen
	case fs.ExtendedCount() == 0:
		return GestureFist
	case fs == pointPattern:
		return GesturePoint
	default:
		return GestureNeutral
	}
}
