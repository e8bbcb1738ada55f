package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPrefsPath is the preference file used when none is configured.
const DefaultPrefsPath = "~/.config/cuberot/prefs.toml"

// Theme is the background scheme behind the cube.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Background returns the clear color of the theme.
func (t Theme) Background() color.NRGBA {
	if t == Light {
		return color.NRGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff}
	}
	return color.NRGBA{R: 0x14, G: 0x16, B: 0x1a, A: 0xff}
}

// Prefs is the persisted user preference file.
type Prefs struct {
	Theme Theme `toml:"theme"`

	path string
}

// LoadPrefs reads the preference file at path. A missing file gives the
// dark theme; an unknown theme value is replaced by dark as well.
func LoadPrefs(path string) (*Prefs, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return &Prefs{Theme: Dark, path: path}, fmt.Errorf("expand prefs path: %w", err)
	}
	p := &Prefs{Theme: Dark, path: expanded}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read prefs: %w", err)
	}
	if err := toml.Unmarshal(data, p); err != nil {
		p.Theme = Dark
		return p, fmt.Errorf("parse prefs %s: %w", expanded, err)
	}
	if p.Theme != Light && p.Theme != Dark {
		p.Theme = Dark
	}
	return p, nil
}

// Path returns the expanded file location.
func (p *Prefs) Path() string { return p.path }

// Toggle flips between light and dark and returns the new theme.
func (p *Prefs) Toggle() Theme {
	if p.Theme == Light {
		p.Theme = Dark
	} else {
		p.Theme = Light
	}
	return p.Theme
}

// Save writes the preferences, creating the parent directory.
func (p *Prefs) Save() error {
	if p.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
