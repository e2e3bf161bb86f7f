// Package orbit maintains the spherical orbit-camera state driven by the
// gesture control signal.
package orbit

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds tuning values for the orbit camera.
type Config struct {
	// RotateSensitivity scales smoothed movement deltas into orbit angles.
	RotateSensitivity float64

	// PhiEpsilon keeps phi inside [eps, pi-eps] so the camera never flips
	// over the poles.
	PhiEpsilon float64

	// MinOpenness and MaxOpenness bound the openness signal before it is
	// mapped to the radius range.
	MinOpenness float64
	MaxOpenness float64

	// MinRadius and MaxRadius bound the camera distance from the origin.
	MinRadius float64
	MaxRadius float64

	// TargetLerp smooths gesture-driven updates into the target radius.
	TargetLerp float64

	// RadiusLerp moves the actual radius toward the target each render
	// tick, giving the zoom its inertia.
	RadiusLerp float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		RotateSensitivity: 3.8,
		PhiEpsilon:        0.16,
		MinOpenness:       0.055,
		MaxOpenness:       0.16,
		MinRadius:         28,
		MaxRadius:         86,
		TargetLerp:        0.25,
		RadiusLerp:        0.08,
	}
}

// State is a snapshot of the camera's spherical coordinates.
type State struct {
	Theta        float64 `json:"theta"`
	Phi          float64 `json:"phi"`
	Radius       float64 `json:"radius"`
	TargetRadius float64 `json:"target_radius"`
}

// Camera holds continuous orbit state around the scene origin. Movement
// deltas drive the angles and the openness signal drives a two-stage zoom:
// one lerp smooths the gesture-driven target radius, a second lerp moves
// the actual radius toward it every render tick, decoupling the gesture
// update rate from the render rate.
type Camera struct {
	config Config
	mu     sync.Mutex
	state  State
}

// NewCamera creates a camera starting at the midpoint of the radius range,
// looking at the origin from a mid-latitude angle.
func NewCamera(config Config) *Camera {
	mid := (config.MinRadius + config.MaxRadius) / 2
	return &Camera{
		config: config,
		state: State{
			Theta:        0,
			Phi:          math.Pi / 2,
			Radius:       mid,
			TargetRadius: mid,
		},
	}
}

// SetConfig swaps the tuning values; the current spherical state is kept.
func (c *Camera) SetConfig(config Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = config
}

// ApplyMovement orbits the camera by a smoothed movement delta. Phi is
// clamped away from the poles to avoid gimbal flip.
func (c *Camera) ApplyMovement(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Theta += dx * c.config.RotateSensitivity
	c.state.Phi += dy * c.config.RotateSensitivity
	c.state.Phi = clamp(c.state.Phi, c.config.PhiEpsilon, math.Pi-c.config.PhiEpsilon)
}

// ApplyOpenness maps the openness signal linearly onto the radius range and
// lerps the target radius toward the mapped value.
func (c *Camera) ApplyOpenness(openness float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := c.config
	o := clamp(openness, cfg.MinOpenness, cfg.MaxOpenness)
	frac := (o - cfg.MinOpenness) / (cfg.MaxOpenness - cfg.MinOpenness)
	mapped := cfg.MinRadius + frac*(cfg.MaxRadius-cfg.MinRadius)

	c.state.TargetRadius += (mapped - c.state.TargetRadius) * cfg.TargetLerp
}

// Tick advances the render-rate zoom stage, lerping the actual radius
// toward the target. Called once per render tick.
func (c *Camera) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Radius += (c.state.TargetRadius - c.state.Radius) * c.config.RadiusLerp
}

// State returns a snapshot of the spherical coordinates.
func (c *Camera) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Position converts the spherical state to the camera's Cartesian position.
// The camera always looks at the origin.
func (c *Camera) Position() r3.Vec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Position()
}

// Position converts a state snapshot to Cartesian coordinates.
func (s State) Position() r3.Vec {
	sinPhi := math.Sin(s.Phi)
	return r3.Vec{
		X: s.Radius * sinPhi * math.Cos(s.Theta),
		Y: s.Radius * math.Cos(s.Phi),
		Z: s.Radius * sinPhi * math.Sin(s.Theta),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
