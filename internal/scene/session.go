// Package scene ties one cube, its controller, the renderer and a drawing
// surface into a session that hosts tick and feed input into.
package scene

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"cuberot/internal/config"
	"cuberot/internal/geom"
	"cuberot/internal/input"
	"cuberot/internal/render"
)

// errSurface is implemented by surfaces that collect rasterizer errors.
type errSurface interface {
	Err() error
}

// Session is the state of one rendering session. Methods must be called
// from a single goroutine.
type Session struct {
	cube       *geom.Cube
	controller *input.Controller
	renderer   *render.Renderer
	surface    render.Surface
	prefs      *config.Prefs

	viewport render.Viewport
	frames   uint64
}

// New builds a session from cfg drawing onto surface. prefs may be nil, in
// which case the theme lives in memory only.
func New(cfg config.Config, surface render.Surface, prefs *config.Prefs) *Session {
	if prefs == nil {
		prefs = &config.Prefs{Theme: config.Dark}
	}
	seed := cfg.Palette.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := &Session{
		cube:     geom.NewCube(rng, cfg.Palette.Alpha),
		renderer: &render.Renderer{Distance: cfg.View.Distance},
		surface:  surface,
		prefs:    prefs,
	}
	s.controller = input.NewController(s.cube,
		input.WithImpulse(cfg.Input.Impulse),
		input.WithDrift(input.Drift{X: cfg.Input.DriftX, Y: cfg.Input.DriftY}),
		input.WithHooks(input.Hooks{
			ToggleTheme: s.toggleTheme,
			Rerolled:    s.logPaint,
		}),
	)
	Logger().Info("session started", "seed", seed, "theme", prefs.Theme)
	s.logPaint()
	return s
}

// Cube returns the session's geometry.
func (s *Session) Cube() *geom.Cube { return s.cube }

// Controller returns the input controller hosts feed events into.
func (s *Session) Controller() *input.Controller { return s.controller }

// Viewport returns the current surface metrics.
func (s *Session) Viewport() render.Viewport { return s.viewport }

// Theme returns the current background theme.
func (s *Session) Theme() config.Theme { return s.prefs.Theme }

// Frames returns the number of completed ticks.
func (s *Session) Frames() uint64 { return s.frames }

// Resize records a new CSS size and device pixel ratio and reconfigures
// the surface to CSS size times DPR. A missing or invalid DPR becomes 1.
func (s *Session) Resize(width, height, dpr float64) {
	if fixed := geom.NormalizeDPR(dpr); fixed != dpr {
		Logger().Warn("invalid device pixel ratio, using 1", "dpr", dpr)
		dpr = fixed
	}
	width, height = math.Max(width, 0), math.Max(height, 0)
	s.viewport = render.Viewport{Width: width, Height: height, DPR: dpr}
	pw, ph := s.viewport.PixelSize()
	s.surface.Configure(pw, ph, dpr)
	Logger().Info("resized", "width", width, "height", height, "dpr", dpr, "pixels", [2]int{pw, ph})
}

// Tick runs one frame: the idle drift step, then a full redraw.
func (s *Session) Tick() {
	s.controller.Tick()
	s.Draw()
	s.frames++
}

// Draw repaints without advancing the drift.
func (s *Session) Draw() {
	s.renderer.Draw(s.surface, s.cube, s.viewport)
	if es, ok := s.surface.(errSurface); ok {
		if err := es.Err(); err != nil {
			Logger().Warn("draw failed", "err", err)
		}
	}
}

// KeyDown forwards a key press to the controller.
func (s *Session) KeyDown(k input.Key) {
	Logger().Debug("key down", "key", string(k))
	s.controller.KeyDown(k)
	switch k {
	case input.KeyReset:
		Logger().Debug("pose reset")
	case input.KeyFreeze:
		Logger().Debug("freeze toggled", "state", s.controller.State(), "drift", s.controller.Drift())
	}
}

// KeyUp forwards a key release to the controller.
func (s *Session) KeyUp(k input.Key) {
	s.controller.KeyUp(k)
}

// Tap sends a press and release for hosts that never report releases.
func (s *Session) Tap(k input.Key) {
	s.KeyDown(k)
	s.KeyUp(k)
}

func (s *Session) toggleTheme() {
	theme := s.prefs.Toggle()
	Logger().Debug("theme toggled", "theme", theme)
	if err := s.prefs.Save(); err != nil {
		Logger().Warn("saving theme preference", "err", err)
	}
}

func (s *Session) logPaint() {
	log := Logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	ops := make([]string, len(s.cube.Ops))
	for i, op := range s.cube.Ops {
		ops[i] = op.String()
	}
	log.Debug("paint rolled", "ops", ops)
}
