// Package gesture turns raw per-frame hand landmarks into a stable gesture
// classification and a smoothed control signal.
package gesture

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/nakshatra/internal/detector"
)

// FingerState holds one extended/curled flag per finger in thumb, index,
// middle, ring, pinky order. True means extended.
type FingerState [5]bool

// ExtendedCount returns the number of extended fingers.
func (fs FingerState) ExtendedCount() int {
	n := 0
	for _, extended := range fs {
		if extended {
			n++
		}
	}
	return n
}

// bendJoints lists the tip/pip/mcp landmark triple used for each finger's
// bend test, in thumb..pinky order. The thumb pivots at its IP joint.
var bendJoints = [5][3]int{
	{detector.ThumbTip, detector.ThumbIP, detector.ThumbMCP},
	{detector.IndexTip, detector.IndexPIP, detector.IndexMCP},
	{detector.MiddleTip, detector.MiddlePIP, detector.MiddleMCP},
	{detector.RingTip, detector.RingPIP, detector.RingMCP},
	{detector.PinkyTip, detector.PinkyPIP, detector.PinkyMCP},
}

// Fingers classifies each finger of the hand as extended or curled from its
// world-space joint geometry. With v1 from the mid joint to the tip and v2
// from the mid joint to the knuckle, a straight finger puts tip and knuckle
// on opposite sides of the joint and the dot product strongly negative; a
// curled finger folds the tip back and the dot product lands near zero or
// positive. The sign test is scale-invariant, so no angles are needed.
func Fingers(hand *detector.Hand, threshold float64) FingerState {
	var fs FingerState
	for f, joints := range bendJoints {
		tip := hand.WorldPoints[joints[0]].Vec()
		pip := hand.WorldPoints[joints[1]].Vec()
		mcp := hand.WorldPoints[joints[2]].Vec()

		v1 := r3.Sub(tip, pip)
		v2 := r3.Sub(mcp, pip)
		fs[f] = r3.Dot(v1, v2) < threshold
	}
	return fs
}

// opennessTips are the four non-thumb fingertips used for the openness
// estimate. The thumb is excluded as geometrically noisy.
var opennessTips = [4]int{
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// Openness returns the mean world-space distance from the wrist to the four
// non-thumb fingertips. It grows monotonically as the hand spreads and is
// roughly scale-invariant in the detector's perspective-corrected world
// coordinates, which makes it a usable zoom signal.
func Openness(hand *detector.Hand) float64 {
	wrist := hand.WorldPoints[detector.Wrist]
	var sum float64
	for _, tip := range opennessTips {
		sum += detector.Distance(wrist, hand.WorldPoints[tip])
	}
	return sum / float64(len(opennessTips))
}
