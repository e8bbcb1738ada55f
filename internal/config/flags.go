package config

import (
	"flag"
)

// Flags are the command-line switches shared by every host.
type Flags struct {
	Path       string
	TickMillis int
	Seed       uint64
	Verbose    bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Path, "config", "", "TOML settings file")
	fs.IntVar(&f.TickMillis, "tick", 0, "milliseconds between frames (overrides config)")
	fs.Uint64Var(&f.Seed, "seed", 0, "palette seed (overrides config, 0 = random)")
	fs.BoolVar(&f.Verbose, "v", false, "debug logging")
}

// Load reads the settings file and applies flag overrides on top.
func (f Flags) Load() (Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return cfg, err
	}
	if f.TickMillis != 0 {
		cfg.TickMillis = f.TickMillis
	}
	if f.Seed != 0 {
		cfg.Palette.Seed = f.Seed
	}
	return cfg, cfg.Validate()
}
