// Package config loads the pipeline tuning configuration from defaults, an
// optional YAML file, and environment variable overrides, in that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/nakshatra/internal/gesture"
	"github.com/ayusman/nakshatra/internal/orbit"
	"github.com/ayusman/nakshatra/internal/scene"
)

// Config is the full tuning surface of the control pipeline. Every value
// has a default; a YAML file and NAKSHATRA_* environment variables can
// override any subset. The same keys serialize to JSON for stored tuning
// profiles.
type Config struct {
	// Gesture extraction
	Smoothing     float64 `yaml:"smoothing" json:"smoothing" env:"NAKSHATRA_SMOOTHING"`
	BendThreshold float64 `yaml:"bend_threshold" json:"bend_threshold" env:"NAKSHATRA_BEND_THRESHOLD"`

	// Zoom mapping
	MinOpenness float64 `yaml:"min_openness" json:"min_openness" env:"NAKSHATRA_MIN_OPENNESS"`
	MaxOpenness float64 `yaml:"max_openness" json:"max_openness" env:"NAKSHATRA_MAX_OPENNESS"`
	MinRadius   float64 `yaml:"min_radius" json:"min_radius" env:"NAKSHATRA_MIN_RADIUS"`
	MaxRadius   float64 `yaml:"max_radius" json:"max_radius" env:"NAKSHATRA_MAX_RADIUS"`

	// Orbit behavior
	RotateSensitivity float64 `yaml:"rotate_sensitivity" json:"rotate_sensitivity" env:"NAKSHATRA_ROTATE_SENSITIVITY"`
	PhiEpsilon        float64 `yaml:"phi_epsilon" json:"phi_epsilon" env:"NAKSHATRA_PHI_EPSILON"`
	TargetLerp        float64 `yaml:"target_lerp" json:"target_lerp" env:"NAKSHATRA_TARGET_LERP"`
	RadiusLerp        float64 `yaml:"radius_lerp" json:"radius_lerp" env:"NAKSHATRA_RADIUS_LERP"`

	// Selection debounce, milliseconds
	SelectedClearMs int `yaml:"selected_clear_ms" json:"selected_clear_ms" env:"NAKSHATRA_SELECTED_CLEAR_MS"`
	NoHandClearMs   int `yaml:"no_hand_clear_ms" json:"no_hand_clear_ms" env:"NAKSHATRA_NO_HAND_CLEAR_MS"`
	NoTargetClearMs int `yaml:"no_target_clear_ms" json:"no_target_clear_ms" env:"NAKSHATRA_NO_TARGET_CLEAR_MS"`

	// Highlight visuals
	EmissiveBoost float64 `yaml:"emissive_boost" json:"emissive_boost" env:"NAKSHATRA_EMISSIVE_BOOST"`
	ScaleBoost    float64 `yaml:"scale_boost" json:"scale_boost" env:"NAKSHATRA_SCALE_BOOST"`

	// Runtime
	CameraID   int    `yaml:"camera_id" json:"camera_id" env:"NAKSHATRA_CAMERA_ID"`
	CameraFPS  int    `yaml:"camera_fps" json:"camera_fps" env:"NAKSHATRA_CAMERA_FPS"`
	RenderHz   int    `yaml:"render_hz" json:"render_hz" env:"NAKSHATRA_RENDER_HZ"`
	ListenAddr string `yaml:"listen_addr" json:"listen_addr" env:"NAKSHATRA_LISTEN_ADDR"`

	// Starfield
	StarCount int   `yaml:"star_count" json:"star_count" env:"NAKSHATRA_STAR_COUNT"`
	StarSeed  int64 `yaml:"star_seed" json:"star_seed" env:"NAKSHATRA_STAR_SEED"`
}

// Default returns the configuration with all tuning values at their
// defaults.
func Default() Config {
	return Config{
		Smoothing:     0.28,
		BendThreshold: -0.015,

		MinOpenness: 0.055,
		MaxOpenness: 0.16,
		MinRadius:   28,
		MaxRadius:   86,

		RotateSensitivity: 3.8,
		PhiEpsilon:        0.16,
		TargetLerp:        0.25,
		RadiusLerp:        0.08,

		SelectedClearMs: 2200,
		NoHandClearMs:   800,
		NoTargetClearMs: 600,

		EmissiveBoost: 2.5,
		ScaleBoost:    1.35,

		CameraID:   0,
		CameraFPS:  30,
		RenderHz:   60,
		ListenAddr: ":8080",

		StarCount: 400,
		StarSeed:  1,
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// it exists), and environment variable overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// ApplyProfile overlays a stored profile's settings JSON onto the
// configuration. Only the keys present in the JSON change.
func (c Config) ApplyProfile(settings json.RawMessage) (Config, error) {
	if len(settings) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(settings, &c); err != nil {
		return c, fmt.Errorf("parse profile settings: %w", err)
	}
	return c, nil
}

// Gesture derives the gesture pipeline configuration.
func (c Config) Gesture() gesture.Config {
	return gesture.Config{
		BendThreshold: c.BendThreshold,
		Smoothing:     c.Smoothing,
	}
}

// Orbit derives the orbit camera configuration.
func (c Config) Orbit() orbit.Config {
	return orbit.Config{
		RotateSensitivity: c.RotateSensitivity,
		PhiEpsilon:        c.PhiEpsilon,
		MinOpenness:       c.MinOpenness,
		MaxOpenness:       c.MaxOpenness,
		MinRadius:         c.MinRadius,
		MaxRadius:         c.MaxRadius,
		TargetLerp:        c.TargetLerp,
		RadiusLerp:        c.RadiusLerp,
	}
}

// Selection derives the selection controller configuration.
func (c Config) Selection() scene.SelectionConfig {
	return scene.SelectionConfig{
		SelectedClearDelay: time.Duration(c.SelectedClearMs) * time.Millisecond,
		NoHandClearDelay:   time.Duration(c.NoHandClearMs) * time.Millisecond,
		NoTargetClearDelay: time.Duration(c.NoTargetClearMs) * time.Millisecond,
		EmissiveBoost:      c.EmissiveBoost,
		ScaleBoost:         c.ScaleBoost,
	}
}
