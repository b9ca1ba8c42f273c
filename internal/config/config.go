package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tuning.yaml
var defaultTuning []byte

// Tuning holds every gameplay constant that is not fixed by the rules
// themselves. The embedded tuning.yaml is the source of defaults.
type Tuning struct {
	Window     WindowConfig     `yaml:"window"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Session    SessionConfig    `yaml:"session"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Background BackgroundConfig `yaml:"background"`
	Effects    EffectsConfig    `yaml:"effects"`
	Sounds     SoundsConfig     `yaml:"sounds"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Scale  int    `yaml:"scale"`
	Border int    `yaml:"border"` // gap between window edge and play surface
}

// SurfaceConfig is the fixed size of the render surface in pixels.
type SurfaceConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type SessionConfig struct {
	DurationSeconds   int `yaml:"durationSeconds"`
	BoostEverySeconds int `yaml:"boostEverySeconds"`
	AddPoints         int `yaml:"addPoints"`
	RemovePoints      int `yaml:"removePoints"`
}

// SpawnConfig describes shapes created by clicking empty space.
// Velocity components are drawn from [SpeedMin, SpeedMax).
type SpawnConfig struct {
	Radius   float64 `yaml:"radius"`
	SpeedMin float64 `yaml:"speedMin"`
	SpeedMax float64 `yaml:"speedMax"`
}

type BackgroundConfig struct {
	PhaseStep  float64 `yaml:"phaseStep"` // added to the phase every frame
	HueSpread  float64 `yaml:"hueSpread"` // degrees between top and bottom stops
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
}

type EffectsConfig struct {
	Particles       int     `yaml:"particles"`
	ParticleRadius  float64 `yaml:"particleRadius"`
	ParticleDistMin float64 `yaml:"particleDistMin"`
	ParticleDistMax float64 `yaml:"particleDistMax"`
	FlashAlpha      float64 `yaml:"flashAlpha"`
}

// SoundsConfig names the embedded cue assets, relative to the audio asset root.
type SoundsConfig struct {
	SampleRate int     `yaml:"sampleRate"`
	Volume     float64 `yaml:"volume"`
	Pop        string  `yaml:"pop"`
	Remove     string  `yaml:"remove"`
}

// Default returns the embedded tuning.
func Default() (*Tuning, error) {
	t, err := Parse(defaultTuning)
	if err != nil {
		return nil, fmt.Errorf("embedded tuning: %w", err)
	}
	return t, nil
}

// MustDefault is Default for callers that cannot continue without tuning.
func MustDefault() *Tuning {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads and validates a tuning file from disk.
func Load(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the embedded defaults, so a file only needs the
// keys it overrides.
func Parse(data []byte) (*Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(defaultTuning, &t); err != nil {
		return nil, fmt.Errorf("failed to parse default tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	return &t, nil
}

// Validate checks ranges that would otherwise break the game at runtime.
func (t *Tuning) Validate() error {
	if t.Surface.Width <= 0 || t.Surface.Height <= 0 {
		return fmt.Errorf("surface size must be positive, got %dx%d", t.Surface.Width, t.Surface.Height)
	}
	if t.Window.Scale <= 0 {
		return fmt.Errorf("window scale must be positive, got %d", t.Window.Scale)
	}
	if t.Window.Border < 0 {
		return fmt.Errorf("window border must not be negative, got %d", t.Window.Border)
	}
	if t.Session.DurationSeconds <= 0 {
		return fmt.Errorf("session duration must be positive, got %d", t.Session.DurationSeconds)
	}
	if t.Session.BoostEverySeconds <= 0 {
		return fmt.Errorf("boost interval must be positive, got %d", t.Session.BoostEverySeconds)
	}
	if t.Session.AddPoints < 0 || t.Session.RemovePoints < 0 {
		return fmt.Errorf("points must not be negative (add=%d remove=%d)", t.Session.AddPoints, t.Session.RemovePoints)
	}
	if t.Spawn.Radius <= 0 {
		return fmt.Errorf("spawn radius must be positive, got %.1f", t.Spawn.Radius)
	}
	if t.Spawn.SpeedMin >= t.Spawn.SpeedMax {
		return fmt.Errorf("spawn speed range invalid: min(%.2f) >= max(%.2f)", t.Spawn.SpeedMin, t.Spawn.SpeedMax)
	}
	if t.Effects.Particles < 0 {
		return fmt.Errorf("particle count must not be negative, got %d", t.Effects.Particles)
	}
	if t.Effects.ParticleDistMin > t.Effects.ParticleDistMax {
		return fmt.Errorf("particle distance range invalid: min(%.1f) > max(%.1f)",
			t.Effects.ParticleDistMin, t.Effects.ParticleDistMax)
	}
	if t.Effects.FlashAlpha < 0 || t.Effects.FlashAlpha > 1 {
		return fmt.Errorf("flash alpha must be in [0,1], got %.2f", t.Effects.FlashAlpha)
	}
	if t.Sounds.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", t.Sounds.SampleRate)
	}
	if t.Sounds.Volume < 0 || t.Sounds.Volume > 1 {
		return fmt.Errorf("sound volume must be in [0,1], got %.2f", t.Sounds.Volume)
	}
	return nil
}

// WindowSize is the logical window size: the surface plus a border on each side.
func (t *Tuning) WindowSize() (int, int) {
	return t.Surface.Width + 2*t.Window.Border, t.Surface.Height + 2*t.Window.Border
}
