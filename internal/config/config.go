// Package config loads the TOML settings file and the persisted theme
// preference.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the tunables of a session.
type Config struct {
	// TickMillis is the pause between frames.
	TickMillis int     `toml:"tick_ms"`
	View       View    `toml:"view"`
	Input      Input   `toml:"input"`
	Palette    Palette `toml:"palette"`
	Window     Window  `toml:"window"`
	// PrefsPath is where the theme preference is stored. A leading ~ is
	// expanded to the home directory.
	PrefsPath string `toml:"prefs_path"`
}

type View struct {
	Distance float64 `toml:"distance"`
}

type Input struct {
	// Impulse is the one-shot key rotation in degrees.
	Impulse float64 `toml:"impulse"`
	DriftX  float64 `toml:"drift_x"`
	DriftY  float64 `toml:"drift_y"`
}

type Palette struct {
	Alpha float64 `toml:"alpha"`
	// Seed fixes the color and operation rolls; 0 seeds from the clock.
	Seed uint64 `toml:"seed"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TickMillis: 50,
		View:       View{Distance: 6},
		Input:      Input{Impulse: 6, DriftX: 0.1, DriftY: -0.1},
		Palette:    Palette{Alpha: 0.9},
		Window:     Window{Width: 600, Height: 600, Title: "cuberot"},
		PrefsPath:  DefaultPrefsPath,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Tick returns TickMillis as a duration.
func (c Config) Tick() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Validate checks ranges. The view distance must keep the whole cube, whose
// depth spans [-1, 1], in front of the eye.
func (c Config) Validate() error {
	switch {
	case c.TickMillis <= 0:
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalid, c.TickMillis)
	case c.View.Distance <= 1:
		return fmt.Errorf("%w: view.distance must exceed 1, got %g", ErrInvalid, c.View.Distance)
	case c.Palette.Alpha < 0 || c.Palette.Alpha > 1:
		return fmt.Errorf("%w: palette.alpha must be in [0,1], got %g", ErrInvalid, c.Palette.Alpha)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}
