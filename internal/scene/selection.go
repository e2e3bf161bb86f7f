package scene

import (
	"sync"
	"time"

	"github.com/ayusman/nakshatra/internal/gesture"
	"github.com/ayusman/nakshatra/internal/orbit"
)

// SelectionConfig holds tuning values for the selection controller.
type SelectionConfig struct {
	// SelectedClearDelay is the debounce before a still-valid selection is
	// released with no further evaluation.
	SelectedClearDelay time.Duration

	// NoHandClearDelay applies when no hand is present at all.
	NoHandClearDelay time.Duration

	// NoTargetClearDelay applies when the hand points at empty space. It
	// is the shortest tier that still tolerates single-frame ray misses.
	NoTargetClearDelay time.Duration

	// EmissiveBoost multiplies the star's base emissive while highlighted.
	EmissiveBoost float64

	// ScaleBoost multiplies the star's base scale while highlighted.
	ScaleBoost float64
}

// DefaultSelectionConfig returns a SelectionConfig with sensible defaults.
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		SelectedClearDelay: 2200 * time.Millisecond,
		NoHandClearDelay:   800 * time.Millisecond,
		NoTargetClearDelay: 600 * time.Millisecond,
		EmissiveBoost:      2.5,
		ScaleBoost:         1.35,
	}
}

// Selector applies at-most-one highlight to the starfield with debounced
// clearing. Every evaluated frame re-arms a single clear timer whose delay
// depends on what the frame showed: a valid selection holds longest, a
// missing hand clears sooner, an empty pick sooner still. Re-arming cancels
// any pending clear, so at most one is outstanding.
type Selector struct {
	config SelectionConfig
	picker Picker

	mu         sync.Mutex
	current    *Star
	clearTimer *time.Timer
	clearGen   uint64

	// OnChange, if set, is called with the newly selected star (nil on
	// clear). Invoked outside the selector's lock.
	OnChange func(*Star)
}

// NewSelector creates a Selector over the given picker.
func NewSelector(picker Picker, config SelectionConfig) *Selector {
	return &Selector{
		config: config,
		picker: picker,
	}
}

// SetConfig swaps the tuning values. A pending clear keeps its original
// delay; new delays apply from the next re-arm.
func (s *Selector) SetConfig(config SelectionConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

// Observe evaluates one gesture frame against the scene. Only point
// frames cast a ray; hand absence re-arms the clear timer on its shorter
// tier. Present frames with other gestures leave the pending timer alone.
func (s *Selector) Observe(frame gesture.Frame, cam orbit.State) {
	if !frame.Present {
		s.mu.Lock()
		if s.current != nil {
			s.rearm(s.config.NoHandClearDelay)
		}
		s.mu.Unlock()
		return
	}

	if frame.Gesture != gesture.GesturePoint {
		return
	}

	star, ok := s.picker.Pick(frame.Pointer, cam)

	s.mu.Lock()
	var changed bool
	var selected *Star
	if !ok {
		// Nothing under the pointer: keep the selection for now and let
		// the short debounce release it. Tolerates one-frame ray misses.
		if s.current != nil {
			s.rearm(s.config.NoTargetClearDelay)
		}
	} else {
		changed = s.highlight(star)
		selected = s.current
		s.rearm(s.config.SelectedClearDelay)
	}
	s.mu.Unlock()

	if changed && s.OnChange != nil {
		s.OnChange(selected)
	}
}

// highlight makes star the single highlighted object. Re-highlighting the
// current star is a no-op so boosts never stack. Returns whether the
// selection changed. Caller holds s.mu.
func (s *Selector) highlight(star *Star) bool {
	if s.current == star {
		return false
	}
	if s.current != nil {
		restore(s.current)
	}

	star.baseEmissive = star.Emissive
	star.baseScale = star.Scale
	star.Emissive = star.baseEmissive * s.config.EmissiveBoost
	star.Scale = star.baseScale * s.config.ScaleBoost
	star.Highlighted = true

	s.current = star
	return true
}

// Clear releases the current highlight immediately, restoring the star's
// saved base visual state.
func (s *Selector) Clear() {
	s.mu.Lock()
	cleared := s.clearLocked()
	s.mu.Unlock()

	if cleared && s.OnChange != nil {
		s.OnChange(nil)
	}
}

// clearExpired is the timer callback. The generation check makes a timer
// that already fired but lost the lock race to a re-arm a no-op, so a
// fresh selection is never wiped by a stale clear.
func (s *Selector) clearExpired(gen uint64) {
	s.mu.Lock()
	if gen != s.clearGen {
		s.mu.Unlock()
		return
	}
	cleared := s.clearLocked()
	s.mu.Unlock()

	if cleared && s.OnChange != nil {
		s.OnChange(nil)
	}
}

// clearLocked releases the highlight and cancels the pending timer.
// Caller holds s.mu.
func (s *Selector) clearLocked() bool {
	cleared := s.current != nil
	if cleared {
		restore(s.current)
		s.current = nil
	}
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
	return cleared
}

// Selected returns the currently highlighted star, or nil.
func (s *Selector) Selected() *Star {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Status returns a human-readable selection state string.
func (s *Selector) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "no selection"
	}
	return "selected " + s.current.Name
}

// Stop cancels any pending debounced clear. The current highlight is left
// in place.
func (s *Selector) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
}

// rearm replaces the pending clear timer. Advancing the generation
// invalidates any prior timer that fired but has not yet taken the lock.
// Caller holds s.mu.
func (s *Selector) rearm(delay time.Duration) {
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearGen++
	gen := s.clearGen
	s.clearTimer = time.AfterFunc(delay, func() { s.clearExpired(gen) })
}

func restore(star *Star) {
	star.Emissive = star.baseEmissive
	star.Scale = star.baseScale
	star.Highlighted = false
}
