// Package detector provides hand detection interfaces and types for the
// gesture control pipeline.
package detector

import "gonum.org/v1/gonum/spatial/r3"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point with x, y, z coordinates.
// For image-space landmarks x and y are normalized to [0,1] with z a
// relative depth; for world-space landmarks the coordinates are metric
// and centered on the hand.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec converts the point to a gonum r3 vector for geometry.
func (p Point3D) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point3D) float64 {
	return r3.Norm(r3.Sub(a.Vec(), b.Vec()))
}

// Hand represents one detected hand: 21 image-space landmarks plus their
// pose-relative world-space counterparts. Image-space points drive pointing
// and on-screen signals; world-space points drive scale-invariant geometry
// such as joint angles and openness.
type Hand struct {
	Points      [NumLandmarks]Point3D `json:"points"`
	WorldPoints [NumLandmarks]Point3D `json:"world_points"`
	Handedness  string                `json:"handedness"` // "Left" or "Right"
	Score       float64               `json:"score"`
}

// Centroid returns the mean image-space position of all landmarks,
// used as the hand position signal for camera orbiting.
func (h *Hand) Centroid() Point3D {
	var sx, sy, sz float64
	for i := 0; i < NumLandmarks; i++ {
		sx += h.Points[i].X
		sy += h.Points[i].Y
		sz += h.Points[i].Z
	}
	n := float64(NumLandmarks)
	return Point3D{X: sx / n, Y: sy / n, Z: sz / n}
}

// Pointer returns the raw image-space index fingertip position, used for
// precise pointing and picking.
func (h *Hand) Pointer() Point3D {
	return h.Points[IndexTip]
}
