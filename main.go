// Command cuberot opens a window with a spinning, draggable cube.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cuberot/internal/canvas"
	"cuberot/internal/config"
	"cuberot/internal/frame"
	"cuberot/internal/input"
	"cuberot/internal/scene"
)

var keyMap = map[glfw.Key]input.Key{
	glfw.KeyW:     input.KeyUp,
	glfw.KeyUp:    input.KeyUp,
	glfw.KeyS:     input.KeyDown,
	glfw.KeyDown:  input.KeyDown,
	glfw.KeyA:     input.KeyLeft,
	glfw.KeyLeft:  input.KeyLeft,
	glfw.KeyD:     input.KeyRight,
	glfw.KeyRight: input.KeyRight,
	glfw.KeyQ:     input.KeyReroll,
	glfw.KeyE:     input.KeyTheme,
	glfw.KeyR:     input.KeyReset,
	glfw.KeyF:     input.KeyFreeze,
}

func main() {
	var flags config.Flags
	flags.Register(flag.CommandLine)
	flag.Parse()

	scene.SetLogger(scene.NewTextLogger(os.Stderr, flags.Verbose))

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "cuberot: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	scene.Logger().Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	pres, err := newPresenter()
	if err != nil {
		return fmt.Errorf("create presenter: %w", err)
	}

	prefs, err := config.LoadPrefs(cfg.PrefsPath)
	if err != nil {
		scene.Logger().Warn("loading preferences", "err", err)
	}

	surface := canvas.New(1, 1, 1)
	sess := scene.New(cfg, surface, prefs)
	h := &host{window: window, sess: sess}
	h.resize()
	h.bind()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lastFpsTime := glfw.GetTime()
	frameCount := 0

	sched := frame.New(cfg.Tick(), 1)
	return sched.Run(ctx, func() error {
		glfw.PollEvents()
		if window.ShouldClose() {
			return frame.ErrStop
		}

		sess.Tick()
		pres.draw(surface.Image(), sess.Theme().Background())
		window.SwapBuffers()

		frameCount++
		if now := glfw.GetTime(); now-lastFpsTime >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Window.Title, frameCount))
			frameCount = 0
			lastFpsTime = now
		}
		return nil
	})
}

// host adapts glfw callbacks to the session. glfw delivers them from
// PollEvents, inside the tick, so they never race the frame.
type host struct {
	window *glfw.Window
	sess   *scene.Session
}

func (h *host) bind() {
	ctl := h.sess.Controller()

	h.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			ctl.PointerDown(h.toCSS(w.GetCursorPos()))
		case glfw.Release:
			ctl.PointerEnd()
		}
	})
	h.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		ctl.PointerMove(h.toCSS(x, y))
	})
	h.window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			ctl.PointerEnd()
		}
	})
	h.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		k, ok := keyMap[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			h.sess.KeyDown(k)
		case glfw.Release:
			h.sess.KeyUp(k)
		}
	})
	h.window.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { h.resize() })
	h.window.SetContentScaleCallback(func(*glfw.Window, float32, float32) { h.resize() })
}

// dpr returns the window's content scale.
func (h *host) dpr() float64 {
	sx, _ := h.window.GetContentScale()
	return float64(sx)
}

func (h *host) resize() {
	fbw, fbh := h.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	dpr := h.dpr()
	if dpr <= 0 {
		dpr = 1
	}
	h.sess.Resize(float64(fbw)/dpr, float64(fbh)/dpr, dpr)
}

// toCSS converts glfw screen coordinates to the session's CSS units.
func (h *host) toCSS(x, y float64) (float64, float64) {
	ww, _ := h.window.GetSize()
	fbw, _ := h.window.GetFramebufferSize()
	if ww == 0 {
		return x, y
	}
	px := float64(fbw) / float64(ww)
	dpr := h.sess.Viewport().DPR
	return x * px / dpr, y * px / dpr
}
