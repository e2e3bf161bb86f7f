package capture

import (
	"errors"
	"testing"
)

func TestMockCamera_PlaysBackTimestamps(t *testing.T) {
	cam := NewMockCamera([]int64{0, 33, 66})
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for _, want := range []int64{0, 33, 66} {
		_, ts, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() error = %v", err)
		}
		if ts != want {
			t.Errorf("timestamp = %d, want %d", ts, want)
		}
	}
}

func TestMockCamera_FinalTimestampRepeats(t *testing.T) {
	cam := NewMockCamera([]int64{0, 33})
	cam.Open()
	defer cam.Close()

	cam.ReadFrame()
	cam.ReadFrame()

	// A stalled source keeps reporting the same presentation timestamp.
	for i := 0; i < 3; i++ {
		_, ts, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() error = %v", err)
		}
		if ts != 33 {
			t.Errorf("stalled timestamp = %d, want 33", ts)
		}
	}
}

func TestMockCamera_ReadWhenClosed(t *testing.T) {
	cam := NewMockCamera([]int64{0})

	if _, _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() on closed camera error = %v, want ErrCameraNotOpen", err)
	}
}

func TestMockCamera_OpenCloseState(t *testing.T) {
	cam := NewMockCamera([]int64{0})

	if cam.IsOpen() {
		t.Error("IsOpen() = true before Open")
	}
	cam.Open()
	if !cam.IsOpen() {
		t.Error("IsOpen() = false after Open")
	}
	cam.Close()
	if cam.IsOpen() {
		t.Error("IsOpen() = true after Close")
	}
}

func TestMockCamera_SetFPS(t *testing.T) {
	cam := NewMockCamera(nil)

	cam.SetFPS(15)
	if got := cam.FPS(); got != 15 {
		t.Errorf("FPS() = %d, want 15", got)
	}

	cam.SetFPS(0) // ignored
	if got := cam.FPS(); got != 15 {
		t.Errorf("FPS() after SetFPS(0) = %d, want 15", got)
	}
}
