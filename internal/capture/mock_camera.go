package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a scripted sequence of frame timestamps for
// testing. It returns no pixel data (a nil Mat); consumers under test pair
// it with a mock detector that ignores the frame contents. Once the script
// is exhausted the final timestamp repeats, which is exactly what a stalled
// video source looks like to the gesture loop.
type MockCamera struct {
	mu         sync.Mutex
	timestamps []int64
	index      int
	running    bool
	fps        int
}

// NewMockCamera creates a mock camera over the given timestamp script.
func NewMockCamera(timestamps []int64) *MockCamera {
	return &MockCamera{
		timestamps: timestamps,
		fps:        DefaultFPS,
	}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// ReadFrame returns the next scripted timestamp. The Mat is always nil.
func (c *MockCamera) ReadFrame() (*gocv.Mat, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, 0, ErrCameraNotOpen
	}
	if len(c.timestamps) == 0 {
		return nil, 0, ErrCameraNotOpen
	}

	ts := c.timestamps[c.index]
	if c.index < len(c.timestamps)-1 {
		c.index++
	}
	return nil, ts, nil
}

func (c *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetTimestamps replaces the timestamp script and restarts playback.
func (c *MockCamera) SetTimestamps(timestamps []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timestamps = timestamps
	c.index = 0
}
