// Package app wires the capture, detection, gesture, orbit and selection
// components into the running control pipeline.
package app

import (
	"errors"
	"log"
	"sync"

	"github.com/ayusman/nakshatra/internal/capture"
	"github.com/ayusman/nakshatra/internal/config"
	"github.com/ayusman/nakshatra/internal/detector"
	"github.com/ayusman/nakshatra/internal/gesture"
	"github.com/ayusman/nakshatra/internal/orbit"
	"github.com/ayusman/nakshatra/internal/scene"
)

// ErrNoDetector is returned by Start when no hand detector is available.
var ErrNoDetector = errors.New("no hand detector available")

// Config holds construction options for the application. Camera and
// Detector may be injected for tests; when nil the real implementations
// are used.
type Config struct {
	Tuning   config.Config
	Camera   capture.Camera
	Detector detector.Detector
}

// Snapshot is the per-render-tick state pushed to the renderer.
type Snapshot struct {
	Camera    orbit.State `json:"camera"`
	Selection *scene.Star `json:"selection,omitempty"`
}

// App owns the two per-frame loops: the gesture loop at camera rate and the
// render tick loop at display rate. All pipeline state is confined to these
// loops plus the selection debounce timer.
type App struct {
	tuning     config.Config
	camera     capture.Camera
	detector   detector.Detector
	controller *gesture.Controller
	orbitCam   *orbit.Camera
	field      *scene.Starfield
	selector   *scene.Selector

	// RenderHook, if set before Start, receives a Snapshot every render
	// tick.
	RenderHook func(Snapshot)

	mu      sync.RWMutex
	enabled bool
	running bool
	stopCh  chan struct{}
}

// New creates an App from the given configuration. When no detector is
// injected it attempts to start the MediaPipe service; a nil detector is
// tolerated here and reported as an error event on Start.
func New(cfg Config) *App {
	camera := cfg.Camera
	if camera == nil {
		camera = capture.NewCamera(cfg.Tuning.CameraID)
	}

	det := cfg.Detector
	if det == nil {
		mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
		if err != nil {
			log.Printf("MediaPipe not available: %v", err)
		} else {
			det = mp
		}
	}

	field := scene.Generate(cfg.Tuning.StarCount, cfg.Tuning.StarSeed)

	return &App{
		tuning:     cfg.Tuning,
		camera:     camera,
		detector:   det,
		controller: gesture.NewController(cfg.Tuning.Gesture()),
		orbitCam:   orbit.NewCamera(cfg.Tuning.Orbit()),
		field:      field,
		selector:   scene.NewSelector(scene.NewRaycaster(field), cfg.Tuning.Selection()),
		enabled:    true,
	}
}

// Start opens the camera and begins both loops. A missing detector is
// fatal to this controller instance: it is surfaced as an error event and
// neither loop starts. The caller may re-initialize and try again.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if a.detector == nil {
		a.controller.Fail(ErrNoDetector)
		return ErrNoDetector
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.tuning.CameraFPS)

	a.stopCh = make(chan struct{})
	a.running = true
	go a.runGestureLoop(a.stopCh)
	go a.runRenderLoop(a.stopCh)

	log.Println("Control pipeline started")
	return nil
}

// Stop halts both loops and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.running = false

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	a.selector.Stop()
	a.controller.Reset()

	log.Println("Control pipeline stopped")
}

// SetEnabled pauses or resumes gesture processing without tearing the
// pipeline down.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture processing is active.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// IsRunning reports whether the gesture loop is live. It goes false when
// Stop is called or the loop self-terminates on a detector failure.
func (a *App) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}

// Controller returns the gesture controller for event subscription.
func (a *App) Controller() *gesture.Controller {
	return a.controller
}

// OrbitCamera returns the orbit camera.
func (a *App) OrbitCamera() *orbit.Camera {
	return a.orbitCam
}

// Selector returns the selection controller.
func (a *App) Selector() *scene.Selector {
	return a.selector
}

// Starfield returns the scene's star set.
func (a *App) Starfield() *scene.Starfield {
	return a.field
}

// Camera returns the capture device.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}

// ApplyTuning swaps the live tuning values across the pipeline: gesture
// thresholds, orbit behavior, and selection debounce. Loop rates and the
// starfield are fixed at construction.
func (a *App) ApplyTuning(t config.Config) {
	a.mu.Lock()
	a.tuning = t
	a.mu.Unlock()

	a.controller.SetConfig(t.Gesture())
	a.orbitCam.SetConfig(t.Orbit())
	a.selector.SetConfig(t.Selection())
}

// Tuning returns the currently applied tuning values.
func (a *App) Tuning() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tuning
}

// Snapshot returns the current camera and selection state.
func (a *App) Snapshot() Snapshot {
	return Snapshot{
		Camera:    a.orbitCam.State(),
		Selection: a.selector.Selected(),
	}
}
