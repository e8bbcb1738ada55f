// Command cuberot-term draws the cube in a terminal using half-block cells,
// two vertical pixels per cell.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"cuberot/internal/canvas"
	"cuberot/internal/config"
	"cuberot/internal/frame"
	"cuberot/internal/input"
	"cuberot/internal/scene"
)

const help = " wasd/arrows rotate  q reroll  e theme  r reset  f freeze  esc quit "

var arrowKeys = map[tcell.Key]input.Key{
	tcell.KeyUp:    input.KeyUp,
	tcell.KeyDown:  input.KeyDown,
	tcell.KeyLeft:  input.KeyLeft,
	tcell.KeyRight: input.KeyRight,
}

func main() {
	var flags config.Flags
	flags.Register(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	scene.SetLogger(scene.NewTextLogger(logOut, flags.Verbose))

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "cuberot-term: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()
	s.EnableMouse()

	prefs, err := config.LoadPrefs(cfg.PrefsPath)
	if err != nil {
		scene.Logger().Warn("loading preferences", "err", err)
	}

	surface := canvas.New(1, 1, 1)
	t := &term{screen: s, surface: surface, sess: scene.New(cfg, surface, prefs)}
	t.resize()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := frame.New(cfg.Tick(), 64)

	// PollEvent blocks, so input is read here and handed to the scheduler
	// goroutine, which owns the session.
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			if !sched.Post(ctx, func() { t.handle(ev, cancel) }) {
				return
			}
		}
	}()

	err = sched.Run(ctx, func() error {
		t.sess.Tick()
		t.draw()
		return nil
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// term is the terminal host. All methods run on the scheduler goroutine.
type term struct {
	screen   tcell.Screen
	surface  *canvas.Canvas
	sess     *scene.Session
	dragging bool
}

func (t *term) resize() {
	w, h := t.screen.Size()
	t.sess.Resize(float64(w), float64(2*max(h-1, 0)), 1)
}

func (t *term) handle(ev tcell.Event, quit func()) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			quit()
			return
		case tcell.KeyRune:
			// Terminals report presses only.
			t.sess.Tap(input.Key(string(unicode.ToLower(ev.Rune()))))
			return
		}
		if k, ok := arrowKeys[ev.Key()]; ok {
			t.sess.Tap(k)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		px, py := float64(x), float64(2*y)
		ctl := t.sess.Controller()
		switch {
		case ev.Buttons()&tcell.Button1 != 0 && !t.dragging:
			t.dragging = true
			ctl.PointerDown(px, py)
		case ev.Buttons()&tcell.Button1 != 0:
			ctl.PointerMove(px, py)
		case t.dragging:
			t.dragging = false
			ctl.PointerEnd()
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
}

func (t *term) draw() {
	img := t.surface.Image()
	bg := t.sess.Theme().Background()
	w, h := t.screen.Size()

	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			top := over(img, x, 2*y, bg)
			bottom := over(img, x, 2*y+1, bg)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(x, y, '▀', nil, style)
		}
	}

	status := tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(toTcell(bg))
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(help) {
			r = rune(help[x])
		}
		t.screen.SetContent(x, h-1, r, nil, status)
	}
	t.screen.Show()
}

// over composites the premultiplied pixel at (x, y) onto an opaque
// background.
func over(img *image.RGBA, x, y int, bg color.NRGBA) tcell.Color {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return toTcell(bg)
	}
	p := img.RGBAAt(x, y)
	inv := 255 - int32(p.A)
	return tcell.NewRGBColor(
		int32(p.R)+int32(bg.R)*inv/255,
		int32(p.G)+int32(bg.G)*inv/255,
		int32(p.B)+int32(bg.B)*inv/255,
	)
}

func toTcell(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
