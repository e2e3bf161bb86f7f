package app

import (
	"log"
	"time"

	"github.com/ayusman/nakshatra/internal/gesture"
)

// runGestureLoop processes camera frames at capture rate.
//
// Per iteration:
//  1. Check the stop channel (cooperative cancellation, never mid-frame).
//  2. Read a frame; skip it when its presentation timestamp has not
//     advanced past the last processed one. Frames are skipped, never
//     queued.
//  3. Run hand detection. A detection error mid-loop self-terminates the
//     loop after publishing an error event, leaving the render loop alive.
//  4. Feed the result through the gesture controller, then into the orbit
//     camera and the selection controller.
func (a *App) runGestureLoop(stopCh <-chan struct{}) {
	interval := time.Second / time.Duration(a.tuning.CameraFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastTS int64 = -1

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, ts, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if ts <= lastTS {
				// The video source has not produced a new frame.
				if frame != nil {
					frame.Close()
				}
				continue
			}
			lastTS = ts

			hand, err := a.detector.Detect(frame)
			if frame != nil {
				frame.Close()
			}
			if err != nil {
				log.Printf("Detector failed, halting gesture loop: %v", err)
				a.controller.Fail(err)
				a.mu.Lock()
				a.running = false
				a.mu.Unlock()
				return
			}

			result := a.controller.Process(hand)
			a.apply(result)
		}
	}
}

// apply routes one classified frame into the camera and selection
// controllers.
func (a *App) apply(frame gesture.Frame) {
	if frame.Present {
		if frame.Movement != nil {
			a.orbitCam.ApplyMovement(frame.Movement.X, frame.Movement.Y)
		}
		a.orbitCam.ApplyOpenness(frame.Openness)
	}

	a.selector.Observe(frame, a.orbitCam.State())
}

// runRenderLoop advances the render-rate zoom stage and pushes state
// snapshots to the renderer at display rate.
func (a *App) runRenderLoop(stopCh <-chan struct{}) {
	interval := time.Second / time.Duration(a.tuning.RenderHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.orbitCam.Tick()
			if a.RenderHook != nil {
				a.RenderHook(a.Snapshot())
			}
		}
	}
}
