package gesture

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ayusman/nakshatra/internal/detector"
)

func TestController_NoHandFrame(t *testing.T) {
	c := NewController(DefaultConfig())

	frame := c.Process(nil)

	if frame.Present {
		t.Error("frame.Present = true for nil hand")
	}
	if frame.Gesture != GestureNone {
		t.Errorf("frame.Gesture = %s, want none", frame.Gesture)
	}
	if frame.Movement != nil {
		t.Errorf("frame.Movement = %+v, want nil", frame.Movement)
	}
}

func TestController_PresentFrame(t *testing.T) {
	c := NewController(DefaultConfig())

	hand := detector.OpenHand()
	frame := c.Process(hand)

	if !frame.Present {
		t.Fatal("frame.Present = false for detected hand")
	}
	if frame.Gesture != GestureOpen {
		t.Errorf("frame.Gesture = %s, want open", frame.Gesture)
	}
	if frame.Openness <= 0 {
		t.Errorf("frame.Openness = %f, want > 0", frame.Openness)
	}
	// Pointer carries the raw index fingertip, not the smoothed centroid.
	tip := hand.Points[detector.IndexTip]
	if frame.Pointer.X != tip.X || frame.Pointer.Y != tip.Y {
		t.Errorf("frame.Pointer = %+v, want raw index tip (%f, %f)", frame.Pointer, tip.X, tip.Y)
	}
}

func TestController_MovementAbsentOnFirstFrame(t *testing.T) {
	c := NewController(DefaultConfig())

	frame := c.Process(detector.OpenHand())
	if frame.Movement != nil {
		t.Errorf("first frame movement = %+v, want nil", frame.Movement)
	}

	frame = c.Process(detector.OpenHand())
	if frame.Movement == nil {
		t.Error("second frame movement = nil, want a delta")
	}
}

func TestController_MovementSuppressedAfterReacquisition(t *testing.T) {
	c := NewController(DefaultConfig())

	c.Process(detector.OpenHand())
	c.Process(detector.OpenHand())

	// Hand lost for one frame, then reacquired.
	c.Process(nil)
	frame := c.Process(detector.OpenHand())

	if frame.Movement != nil {
		t.Errorf("movement after reacquisition = %+v, want nil", frame.Movement)
	}

	// The frame after that has a baseline again.
	frame = c.Process(detector.OpenHand())
	if frame.Movement == nil {
		t.Error("movement two frames after reacquisition = nil, want a delta")
	}
}

func TestController_SmoothingSurvivesHandLoss(t *testing.T) {
	c := NewController(DefaultConfig())

	var settled Frame
	for i := 0; i < 60; i++ {
		settled = c.Process(detector.OpenHand())
	}

	c.Process(nil)
	c.Process(nil)

	frame := c.Process(detector.OpenHand())
	// Position picks up where it left off rather than re-seeding; feeding
	// the same hand keeps it in place.
	dx := frame.Position.X - settled.Position.X
	dy := frame.Position.Y - settled.Position.Y
	if dx > 1e-6 || dx < -1e-6 || dy > 1e-6 || dy < -1e-6 {
		t.Errorf("position moved by (%e, %e) across hand loss, want unchanged", dx, dy)
	}
}

func TestController_EmitsUpdatePerFrame(t *testing.T) {
	c := NewController(DefaultConfig())
	var frames []Frame
	c.Emitter().On(EventUpdate, func(p any) {
		frames = append(frames, p.(Frame))
	})

	c.Process(detector.PointingHand())
	c.Process(nil)

	if len(frames) != 2 {
		t.Fatalf("got %d update events, want 2", len(frames))
	}
	if frames[0].Gesture != GesturePoint || frames[1].Gesture != GestureNone {
		t.Errorf("event gestures = %s, %s; want point, none", frames[0].Gesture, frames[1].Gesture)
	}
}

func TestController_EmitsStatusOnGestureChange(t *testing.T) {
	c := NewController(DefaultConfig())
	var statuses []string
	c.Emitter().On(EventStatus, func(p any) {
		statuses = append(statuses, p.(string))
	})

	c.Process(detector.OpenHand())
	c.Process(detector.OpenHand()) // same gesture, no new status
	c.Process(detector.FistHand())

	if len(statuses) != 2 {
		t.Fatalf("got %d status events, want 2 (open, fist)", len(statuses))
	}
}

func TestController_Fail(t *testing.T) {
	c := NewController(DefaultConfig())
	var got error
	c.Emitter().On(EventError, func(p any) {
		got = p.(error)
	})

	wantErr := errors.New("detector gone")
	c.Fail(wantErr)

	if !errors.Is(got, wantErr) {
		t.Errorf("error event = %v, want %v", got, wantErr)
	}
}

func TestController_ResetRestartsBaseline(t *testing.T) {
	c := NewController(DefaultConfig())
	c.Process(detector.OpenHand())
	c.Process(detector.OpenHand())

	c.Reset()

	frame := c.Process(detector.OpenHand())
	if frame.Movement != nil {
		t.Errorf("movement after Reset = %+v, want nil", frame.Movement)
	}
}

func TestController_SetConfigChangesSmoothing(t *testing.T) {
	c := NewController(Config{BendThreshold: -0.015, Smoothing: 1.0})

	seed := c.Process(detector.OpenHand())

	// Factor 0 freezes the smoothed signal regardless of input.
	c.SetConfig(Config{BendThreshold: -0.015, Smoothing: 0})
	frame := c.Process(detector.FistHand())
	if frame.Openness != seed.Openness {
		t.Errorf("openness = %f with zero smoothing, want frozen at %f", frame.Openness, seed.Openness)
	}

	// Factor 1 tracks the raw signal exactly, so the fist's lower openness
	// shows up immediately.
	c.SetConfig(Config{BendThreshold: -0.015, Smoothing: 1.0})
	frame = c.Process(detector.FistHand())
	if frame.Openness >= seed.Openness {
		t.Errorf("openness = %f with full smoothing, want below open-hand %f", frame.Openness, seed.Openness)
	}
}

func TestFrame_JSONShape(t *testing.T) {
	absent, err := json.Marshal(Frame{Gesture: GestureNone, Present: false})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(absent, &m); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	for _, key := range []string{"gesture", "present", "fingers", "position", "pointer"} {
		if _, ok := m[key]; !ok {
			t.Errorf("absent-hand frame missing %q field", key)
		}
	}
	if _, ok := m["movement"]; ok {
		t.Error("movement should be omitted when nil")
	}
}
