package gesture

import "testing"

func TestEmitter_DeliversInRegistrationOrder(t *testing.T) {
	e := NewEmitter()
	var order []int

	e.On(EventUpdate, func(any) { order = append(order, 1) })
	e.On(EventUpdate, func(any) { order = append(order, 2) })
	e.On(EventUpdate, func(any) { order = append(order, 3) })

	e.Emit(EventUpdate, nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("delivery order = %v, want [1 2 3]", order)
	}
}

func TestEmitter_ChannelsAreIndependent(t *testing.T) {
	e := NewEmitter()
	var gotUpdate, gotStatus bool

	e.On(EventUpdate, func(any) { gotUpdate = true })
	e.On(EventStatus, func(any) { gotStatus = true })

	e.Emit(EventStatus, "ready")

	if gotUpdate {
		t.Error("update handler fired for status event")
	}
	if !gotStatus {
		t.Error("status handler did not fire")
	}
}

func TestEmitter_PayloadPassthrough(t *testing.T) {
	e := NewEmitter()
	var got any

	e.On(EventUpdate, func(p any) { got = p })

	frame := Frame{Gesture: GesturePoint, Present: true}
	e.Emit(EventUpdate, frame)

	f, ok := got.(Frame)
	if !ok {
		t.Fatalf("payload type = %T, want Frame", got)
	}
	if f.Gesture != GesturePoint {
		t.Errorf("payload gesture = %s, want point", f.Gesture)
	}
}

func TestEmitter_RemoveDuringOwnInvocation(t *testing.T) {
	e := NewEmitter()
	var calls []string

	var removeSelf func()
	removeSelf = e.On(EventUpdate, func(any) {
		calls = append(calls, "self-removing")
		removeSelf()
	})
	e.On(EventUpdate, func(any) { calls = append(calls, "second") })

	// First emit: both fire, the first removes itself mid-delivery.
	e.Emit(EventUpdate, nil)
	if len(calls) != 2 || calls[1] != "second" {
		t.Fatalf("first emit calls = %v, want both handlers", calls)
	}

	// Second emit: only the surviving handler fires.
	calls = nil
	e.Emit(EventUpdate, nil)
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("second emit calls = %v, want [second]", calls)
	}
}

func TestEmitter_RemoveIsIdempotent(t *testing.T) {
	e := NewEmitter()
	remove := e.On(EventStatus, func(any) {})

	remove()
	remove() // second call must not panic or remove someone else

	if n := e.SubscriberCount(EventStatus); n != 0 {
		t.Errorf("SubscriberCount = %d, want 0", n)
	}
}

func TestEmitter_EmitWithNoSubscribers(t *testing.T) {
	e := NewEmitter()
	// Must not panic.
	e.Emit(EventError, nil)
}
