package detector

import (
	"sync"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r3"
)

// MockDetector is a test implementation of the Detector interface.
// It plays back a scripted sequence of hands: each Detect call returns the
// next entry, and the final entry repeats once the script is exhausted.
// A nil entry means "no hand detected" for that frame.
type MockDetector struct {
	mu    sync.Mutex
	hands []*Hand
	index int
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHand sets a single hand returned by every subsequent Detect call.
func (m *MockDetector) SetHand(hand *Hand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = []*Hand{hand}
	m.index = 0
}

// SetSequence sets the scripted sequence of per-frame results.
func (m *MockDetector) SetSequence(hands []*Hand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted hand or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Hand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.hands) == 0 {
		return nil, nil
	}
	hand := m.hands[m.index]
	if m.index < len(m.hands)-1 {
		m.index++
	}
	return hand, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Synthetic hand fixtures.
//
// World-space fingers are built from stylized joint chains: each finger runs
// from the wrist along its own direction with the knuckle at 0.10, the mid
// joint at 0.22 and, when extended, the tip at 0.40. A curled finger folds
// its tip back to 0.04 from the wrist. These proportions put the tip/pip/mcp
// dot product well on either side of the bend threshold and the
// wrist-to-fingertip distance on either side of the openness range.

type fingerIndices struct {
	mcp, pip, tip int
}

// Per-finger joint triples in thumb..pinky order. The thumb uses its IP
// joint as the bend pivot.
var fingerJoints = [5]fingerIndices{
	{mcp: ThumbMCP, pip: ThumbIP, tip: ThumbTip},
	{mcp: IndexMCP, pip: IndexPIP, tip: IndexTip},
	{mcp: MiddleMCP, pip: MiddlePIP, tip: MiddleTip},
	{mcp: RingMCP, pip: RingPIP, tip: RingTip},
	{mcp: PinkyMCP, pip: PinkyPIP, tip: PinkyTip},
}

// Finger directions fanned out in the hand plane, thumb..pinky.
var fingerDirs = [5]r3.Vec{
	{X: -0.80, Y: 0.50, Z: 0},
	{X: -0.25, Y: 0.95, Z: 0},
	{X: 0.00, Y: 1.00, Z: 0},
	{X: 0.20, Y: 0.95, Z: 0},
	{X: 0.45, Y: 0.85, Z: 0},
}

// HandWithFingers builds a synthetic hand with the given per-finger
// extension flags, in thumb..pinky order.
func HandWithFingers(extended [5]bool) *Hand {
	hand := &Hand{
		Handedness: "Right",
		Score:      0.95,
	}

	setJoint(hand, Wrist, r3.Vec{})

	for f := 0; f < 5; f++ {
		dir := r3.Unit(fingerDirs[f])
		joints := fingerJoints[f]

		mcp := r3.Scale(0.10, dir)
		pip := r3.Scale(0.22, dir)
		var tip r3.Vec
		if extended[f] {
			tip = r3.Scale(0.40, dir)
		} else {
			// Tip folded back toward the wrist, lifted slightly off the
			// hand plane.
			tip = r3.Add(r3.Scale(0.04, dir), r3.Vec{Z: 0.02})
		}

		setJoint(hand, joints.mcp, mcp)
		setJoint(hand, joints.pip, pip)
		setJoint(hand, joints.tip, tip)
	}

	// Remaining joints are placed on the chain so all 21 slots hold
	// plausible values.
	setJoint(hand, ThumbCMC, r3.Scale(0.05, r3.Unit(fingerDirs[0])))
	for f := 1; f < 5; f++ {
		dir := r3.Unit(fingerDirs[f])
		dip := r3.Scale(0.30, dir)
		if !extended[f] {
			dip = r3.Add(r3.Scale(0.12, dir), r3.Vec{Z: 0.03})
		}
		setJoint(hand, fingerJoints[f].pip+1, dip)
	}

	return hand
}

// setJoint writes a world-space joint and its projected image-space
// counterpart. The projection places the wrist at (0.5, 0.85) with the
// fingers pointing up the frame.
func setJoint(h *Hand, idx int, world r3.Vec) {
	h.WorldPoints[idx] = Point3D{X: world.X, Y: world.Y, Z: world.Z}
	h.Points[idx] = Point3D{
		X: 0.5 + world.X*0.8,
		Y: 0.85 - world.Y*0.9,
		Z: world.Z,
	}
}

// OpenHand returns a hand with all five fingers extended.
func OpenHand() *Hand {
	return HandWithFingers([5]bool{true, true, true, true, true})
}

// FistHand returns a hand with all fingers curled.
func FistHand() *Hand {
	return HandWithFingers([5]bool{false, false, false, false, false})
}

// PointingHand returns a hand with only the index finger extended.
func PointingHand() *Hand {
	return HandWithFingers([5]bool{false, true, false, false, false})
}
