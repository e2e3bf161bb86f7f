package gesture

import (
	"fmt"
	"sync"

	"github.com/ayusman/nakshatra/internal/detector"
)

// Config holds tuning values for the per-frame gesture pipeline.
type Config struct {
	// BendThreshold is the dot-product decision boundary for the finger
	// bend test. More negative means a finger must be straighter to count
	// as extended.
	BendThreshold float64

	// Smoothing is the exponential smoothing factor applied to the
	// position and openness signals.
	Smoothing float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		BendThreshold: -0.015,
		Smoothing:     0.28,
	}
}

// Frame is the per-frame result published on the update channel.
//
// Pointer is the raw, unsmoothed index-fingertip position used for precise
// picking; Position and Movement are the smoothed hand-centroid signal used
// for camera orbiting. Movement is nil on the first frame after the hand is
// (re)acquired, when no valid previous-position baseline exists.
type Frame struct {
	Gesture  Gesture     `json:"gesture"`
	Present  bool        `json:"present"`
	Openness float64     `json:"openness,omitempty"`
	Fingers  FingerState `json:"fingers"`
	Position Point2      `json:"position"`
	Movement *Point2     `json:"movement,omitempty"`
	Pointer  Point2      `json:"pointer"`
}

// Controller converts raw per-frame hand detections into classified,
// smoothed frames and publishes them through its Emitter. It holds the
// long-lived smoothing state and the movement baseline.
//
// Process is driven from a single goroutine (the gesture loop); the
// Emitter handles its own synchronization for subscribers.
type Controller struct {
	mu          sync.Mutex // guards config only
	config      Config
	emitter     *Emitter
	smoother    *Smoother
	prev        Point2
	hasPrev     bool
	lastGesture Gesture
}

// NewController creates a Controller with the given configuration.
func NewController(config Config) *Controller {
	return &Controller{
		config:      config,
		emitter:     NewEmitter(),
		smoother:    NewSmoother(config.Smoothing),
		lastGesture: GestureNone,
	}
}

// Emitter returns the controller's event emitter for subscription.
func (c *Controller) Emitter() *Emitter {
	return c.emitter
}

// SetConfig swaps the tuning values. The smoothing factor applies from the
// next frame; accumulated smoothing state is preserved. The smoother itself
// is only touched from Process, so the new factor reaches it under c.mu
// there rather than here.
func (c *Controller) SetConfig(config Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = config
}

// Process handles one detection result. A nil hand is the normal "no hand
// this frame" outcome: the smoothing state is kept, only the movement
// baseline is cleared so the next acquisition starts without a delta.
func (c *Controller) Process(hand *detector.Hand) Frame {
	if hand == nil {
		c.hasPrev = false
		frame := Frame{Gesture: GestureNone, Present: false}
		c.publish(frame)
		return frame
	}

	c.mu.Lock()
	threshold := c.config.BendThreshold
	c.smoother.factor = c.config.Smoothing
	c.mu.Unlock()

	fingers := Fingers(hand, threshold)
	g := Classify(fingers)
	rawOpenness := Openness(hand)

	centroid := hand.Centroid()
	position, openness := c.smoother.Update(
		Point2{X: centroid.X, Y: centroid.Y}, rawOpenness)

	var movement *Point2
	if c.hasPrev {
		movement = &Point2{
			X: position.X - c.prev.X,
			Y: position.Y - c.prev.Y,
		}
	}
	c.prev = position
	c.hasPrev = true

	pointer := hand.Pointer()
	frame := Frame{
		Gesture:  g,
		Present:  true,
		Openness: openness,
		Fingers:  fingers,
		Position: position,
		Movement: movement,
		Pointer:  Point2{X: pointer.X, Y: pointer.Y},
	}
	c.publish(frame)
	return frame
}

// Fail publishes a detection error to subscribers.
func (c *Controller) Fail(err error) {
	c.emitter.Emit(EventError, err)
}

// Reset clears the smoothing state and movement baseline. Used on
// controller restart, not on per-frame hand loss.
func (c *Controller) Reset() {
	c.smoother.Reset()
	c.hasPrev = false
	c.lastGesture = GestureNone
}

func (c *Controller) publish(frame Frame) {
	if frame.Gesture != c.lastGesture {
		c.lastGesture = frame.Gesture
		c.emitter.Emit(EventStatus, statusText(frame.Gesture))
	}
	c.emitter.Emit(EventUpdate, frame)
}

func statusText(g Gesture) string {
	switch g {
	case GestureNone:
		return "no hand detected"
	case GestureOpen:
		return "open palm: zoom"
	case GestureFist:
		return "fist: hold"
	case GesturePoint:
		return "pointing: select"
	default:
		return fmt.Sprintf("gesture: %s", g)
	}
}
