// Package input turns pointer drags, key presses and idle ticks into cube
// rotations.
package input

import (
	"math"

	"cuberot/internal/geom"
)

// DefaultImpulse is the one-shot key rotation in degrees.
const DefaultImpulse = 6.0

// State is the controller's current mode.
type State int

const (
	Drifting State = iota
	Dragging
	Frozen
)

func (s State) String() string {
	switch s {
	case Drifting:
		return "drifting"
	case Dragging:
		return "dragging"
	case Frozen:
		return "frozen"
	}
	return "unknown"
}

// Drift is a per-tick rotation delta in degrees around X and Y.
type Drift struct {
	X, Y float64
}

// IsZero reports whether the drift rotates nothing.
func (d Drift) IsZero() bool { return d.X == 0 && d.Y == 0 }

type pointer struct {
	x, y float64
}

// Hooks are callbacks for commands the controller passes through.
type Hooks struct {
	// ToggleTheme runs when the theme key goes down.
	ToggleTheme func()
	// Rerolled runs after the cube's paint was re-rolled.
	Rerolled func()
}

// Controller owns the interaction state for one cube. It is not safe for
// concurrent use; hosts call it from the goroutine that ticks.
type Controller struct {
	cube    *geom.Cube
	impulse float64
	hooks   Hooks

	dragging    bool
	last        *pointer
	movedInTick bool

	drift      Drift
	savedDrift Drift
	frozen     bool

	pressed map[Key]bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithImpulse sets the key impulse magnitude in degrees.
func WithImpulse(deg float64) Option {
	return func(c *Controller) { c.impulse = deg }
}

// WithDrift sets the initial drift.
func WithDrift(d Drift) Option {
	return func(c *Controller) { c.drift = d }
}

// WithHooks installs pass-through callbacks.
func WithHooks(h Hooks) Option {
	return func(c *Controller) { c.hooks = h }
}

// NewController returns a drifting controller for cube.
func NewController(cube *geom.Cube, opts ...Option) *Controller {
	c := &Controller{
		cube:    cube,
		impulse: DefaultImpulse,
		pressed: make(map[Key]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the active mode. Dragging wins over frozen.
func (c *Controller) State() State {
	switch {
	case c.dragging:
		return Dragging
	case c.frozen:
		return Frozen
	}
	return Drifting
}

// Drift returns the current drift.
func (c *Controller) Drift() Drift { return c.drift }

// SavedDrift returns the drift captured by the last freeze.
func (c *Controller) SavedDrift() Drift { return c.savedDrift }

// PointerDown starts a drag at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.dragging = true
	c.last = &pointer{x, y}
}

// PointerMove rotates the cube by the movement since the previous pointer
// position and makes half of it the new drift. Moves outside a drag and
// moves with unusable coordinates are ignored.
func (c *Controller) PointerMove(x, y float64) {
	if !c.dragging || !finite(x, y) {
		return
	}
	if c.last == nil {
		c.last = &pointer{x, y}
		return
	}
	dx := y - c.last.y
	dy := c.last.x - x
	c.drift = Drift{X: dx / 2, Y: dy / 2}
	c.frozen = false
	c.cube.Rotate(dx, dy)
	c.last = &pointer{x, y}
	c.movedInTick = true
}

// PointerEnd handles release, leave and cancel. The last drift carries on.
func (c *Controller) PointerEnd() {
	c.dragging = false
	c.last = nil
}

// Tick applies one idle step: the drift rotation, unless frozen or a drag
// move already rotated the cube since the previous tick.
func (c *Controller) Tick() {
	moved := c.movedInTick
	c.movedInTick = false
	if moved || c.frozen || c.drift.IsZero() {
		return
	}
	c.cube.Rotate(c.drift.X, c.drift.Y)
}

// ToggleFreeze suspends a non-zero drift or restores the saved one.
func (c *Controller) ToggleFreeze() {
	if c.drift.IsZero() {
		c.drift = c.savedDrift
		c.frozen = false
		return
	}
	c.savedDrift = c.drift
	c.drift = Drift{}
	c.frozen = true
}

// Reset puts the cube back in its canonical pose. Drift and freeze stay.
func (c *Controller) Reset() {
	c.cube.Reset()
}

// Reroll draws new paint for the cube.
func (c *Controller) Reroll() {
	c.cube.Reroll()
	if c.hooks.Rerolled != nil {
		c.hooks.Rerolled()
	}
}

// KeyDown handles a key press. Repeats of a held key are ignored.
func (c *Controller) KeyDown(k Key) {
	if c.pressed[k] {
		return
	}
	c.pressed[k] = true

	switch k {
	case KeyReroll:
		c.Reroll()
	case KeyTheme:
		if c.hooks.ToggleTheme != nil {
			c.hooks.ToggleTheme()
		}
	case KeyReset:
		c.Reset()
	case KeyFreeze:
		c.ToggleFreeze()
	default:
		if k.IsDirectional() {
			c.applyImpulse()
		}
	}
}

// KeyUp forgets a released key.
func (c *Controller) KeyUp(k Key) {
	delete(c.pressed, k)
}

// applyImpulse rotates once by the combined direction of every held
// directional key and leaves a quarter of it as drift.
func (c *Controller) applyImpulse() {
	var x, y float64
	for k := range c.pressed {
		d, ok := direction[k]
		if !ok {
			continue
		}
		x += d[0]
		y += d[1]
	}
	if x == 0 && y == 0 {
		return
	}
	c.cube.Rotate(-x*c.impulse, -y*c.impulse)
	c.drift = Drift{X: -x * c.impulse / 4, Y: -y * c.impulse / 4}
	c.frozen = false
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}
