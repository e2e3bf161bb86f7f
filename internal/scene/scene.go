// Package scene holds the pickable starfield and the selection/highlight
// controller that consumes the pointer signal.
package scene

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Star is a pickable object in the starfield. Emissive and Scale are the
// visual attributes the renderer consumes; the highlight controller boosts
// them and restores the saved base values on clear.
type Star struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Position r3.Vec  `json:"position"`
	Radius   float64 `json:"radius"`
	Emissive float64 `json:"emissive"`
	Scale    float64 `json:"scale"`

	Highlighted bool `json:"highlighted"`

	baseEmissive float64
	baseScale    float64
}

// Starfield is a fixed set of stars generated once at startup.
type Starfield struct {
	mu    sync.RWMutex
	stars []*Star
}

// Generate places n stars deterministically in a spherical shell around the
// origin. The same seed always yields the same field, which keeps picking
// reproducible across runs and in tests.
func Generate(n int, seed int64) *Starfield {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]*Star, n)

	for i := 0; i < n; i++ {
		// Uniform direction, radius biased outward so the shell interior
		// stays sparse.
		theta := rng.Float64() * 2 * math.Pi
		u := rng.Float64()*2 - 1
		sin := math.Sqrt(1 - u*u)
		dist := 8 + 14*math.Cbrt(rng.Float64())

		stars[i] = &Star{
			ID:   i,
			Name: fmt.Sprintf("star-%03d", i),
			Position: r3.Vec{
				X: dist * sin * math.Cos(theta),
				Y: dist * u,
				Z: dist * sin * math.Sin(theta),
			},
			Radius:   0.6 + rng.Float64()*0.9,
			Emissive: 0.6 + rng.Float64()*0.4,
			Scale:    1.0,
		}
	}

	return &Starfield{stars: stars}
}

// NewStarfield builds a field from an explicit star set.
func NewStarfield(stars []*Star) *Starfield {
	return &Starfield{stars: stars}
}

// Stars returns the star set. Callers must not mutate visual attributes;
// that is the selection controller's job.
func (f *Starfield) Stars() []*Star {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.stars
}

// Count returns the number of stars in the field.
func (f *Starfield) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.stars)
}
