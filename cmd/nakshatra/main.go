package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/nakshatra/internal/app"
	"github.com/ayusman/nakshatra/internal/config"
	"github.com/ayusman/nakshatra/internal/gesture"
	"github.com/ayusman/nakshatra/internal/scene"
	"github.com/ayusman/nakshatra/internal/server"
	"github.com/ayusman/nakshatra/internal/store"
	"github.com/ayusman/nakshatra/internal/tray"
)

func main() {
	fmt.Println("Nakshatra - Gesture-Controlled Starfield")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".nakshatra")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	cfgPath := os.Getenv("NAKSHATRA_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(dataDir, "config.yaml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "nakshatra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// The active profile overlays the file/env config. Keep the base so a
	// later profile switch starts from the same point.
	base := cfg
	if active, err := st.Profiles().GetActive(); err == nil {
		if overlaid, err := cfg.ApplyProfile(active.Settings); err == nil {
			cfg = overlaid
		} else {
			log.Printf("Ignoring active profile %q: %v", active.Name, err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Fatalf("Failed to load active profile: %v", err)
	}

	a := app.New(app.Config{Tuning: cfg})
	defer a.Stop()

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
		OnActivate: func(p *store.Profile) error {
			overlaid, err := base.ApplyProfile(p.Settings)
			if err != nil {
				return err
			}
			a.ApplyTuning(overlaid)
			return nil
		},
	})
	a.RenderHook = srv.PushState

	if err := a.Start(); err != nil {
		log.Printf("Pipeline not started: %v", err)
	}

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(a.Stop)
	wireTrayStatus(t, a)

	// Blocks until Quit is chosen from the tray menu.
	t.Run()
}

// wireTrayStatus feeds gesture and selection changes into the tray menu.
func wireTrayStatus(t *tray.Tray, a *app.App) {
	a.Controller().Emitter().On(gesture.EventStatus, func(payload any) {
		if text, ok := payload.(string); ok {
			t.SetGesture(text)
		}
	})
	a.Selector().OnChange = func(star *scene.Star) {
		if star == nil {
			t.SetSelection("")
		} else {
			t.SetSelection(star.Name)
		}
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.nakshatra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".nakshatra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
