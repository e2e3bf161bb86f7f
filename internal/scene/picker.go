package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/nakshatra/internal/gesture"
	"github.com/ayusman/nakshatra/internal/orbit"
)

// Picker resolves a pointer position into the nearest pickable object,
// given the current camera state. Implementations return false when nothing
// lies under the pointer.
type Picker interface {
	Pick(pointer gesture.Point2, cam orbit.State) (*Star, bool)
}

// Raycaster is the production Picker: it builds a ray from the camera
// through the pointer coordinate and intersects it with the star spheres,
// keeping the nearest hit only.
//
// The pointer x coordinate is mirrored before use: the webcam image is a
// mirror of the user, so pointing left must select on the left.
type Raycaster struct {
	field  *Starfield
	fovY   float64 // vertical field of view in radians
	aspect float64
}

// NewRaycaster creates a Raycaster over the given starfield with the
// renderer's projection parameters.
func NewRaycaster(field *Starfield) *Raycaster {
	return &Raycaster{
		field:  field,
		fovY:   60 * math.Pi / 180,
		aspect: 16.0 / 9.0,
	}
}

// Pick casts a ray through the mirrored pointer position and returns the
// nearest intersected star.
func (r *Raycaster) Pick(pointer gesture.Point2, cam orbit.State) (*Star, bool) {
	origin := cam.Position()

	// Camera basis: forward at the origin, world up +Y.
	forward := r3.Unit(r3.Scale(-1, origin))
	right := r3.Unit(r3.Cross(forward, r3.Vec{Y: 1}))
	up := r3.Cross(right, forward)

	// Mirrored pointer to normalized device coordinates. Image y grows
	// downward, NDC y grows upward.
	ndcX := (1-pointer.X)*2 - 1
	ndcY := 1 - 2*pointer.Y

	tanHalf := math.Tan(r.fovY / 2)
	dir := r3.Unit(r3.Add(forward,
		r3.Add(
			r3.Scale(ndcX*tanHalf*r.aspect, right),
			r3.Scale(ndcY*tanHalf, up),
		)))

	var nearest *Star
	nearestT := math.Inf(1)

	for _, star := range r.field.Stars() {
		t, ok := raySphere(origin, dir, star.Position, star.Radius)
		if ok && t < nearestT {
			nearest = star
			nearestT = t
		}
	}

	return nearest, nearest != nil
}

// raySphere returns the nearest positive ray parameter at which the ray
// origin+t*dir intersects the sphere, if any. dir must be unit length.
func raySphere(origin, dir, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(origin, center)
	b := r3.Dot(oc, dir)
	c := r3.Dot(oc, oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	t := -b - sqrtDisc
	if t < 0 {
		t = -b + sqrtDisc
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
