// Command cuberot-ebiten runs the cube inside an ebiten game loop.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"cuberot/internal/canvas"
	"cuberot/internal/config"
	"cuberot/internal/input"
	"cuberot/internal/scene"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyW:          input.KeyUp,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyS:          input.KeyDown,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyA:          input.KeyLeft,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyD:          input.KeyRight,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyQ:          input.KeyReroll,
	ebiten.KeyE:          input.KeyTheme,
	ebiten.KeyR:          input.KeyReset,
	ebiten.KeyF:          input.KeyFreeze,
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
	prefs, err := config.LoadPrefs(cfg.PrefsPath)
	if err != nil {
		scene.Logger().Warn("loading preferences", "err", err)
	}

	surface := canvas.New(1, 1, 1)
	g := &game{surface: surface, sess: scene.New(cfg, surface, prefs)}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(1, 1000/cfg.TickMillis))
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "cuberot-ebiten: %v\n", err)
		os.Exit(1)
	}
}

// game drives the session from ebiten's fixed-rate Update.
type game struct {
	sess    *scene.Session
	surface *canvas.Canvas
	img     *ebiten.Image

	width, height int
	dpr           float64

	cursor  image.Point
	touch   ebiten.TouchID
	touched bool
	keys    []ebiten.Key
	touches []ebiten.TouchID
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pointer()
	g.keyboard()
	g.sess.Tick()
	return nil
}

func (g *game) pointer() {
	ctl := g.sess.Controller()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.cursor = image.Pt(ebiten.CursorPosition())
		ctl.PointerDown(g.css(g.cursor.X, g.cursor.Y))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.move(ebiten.CursorPosition())
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		ctl.PointerEnd()
	}

	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	if !g.touched && len(g.touches) > 0 {
		g.touch, g.touched = g.touches[0], true
		g.cursor = image.Pt(ebiten.TouchPosition(g.touch))
		ctl.PointerDown(g.css(g.cursor.X, g.cursor.Y))
	}
	if g.touched {
		if inpututil.IsTouchJustReleased(g.touch) {
			g.touched = false
			ctl.PointerEnd()
		} else {
			g.move(ebiten.TouchPosition(g.touch))
		}
	}
}

// move reports pointer motion only when the position changed, like a host
// that delivers move events.
func (g *game) move(x, y int) {
	p := image.Pt(x, y)
	if p == g.cursor {
		return
	}
	g.cursor = p
	g.sess.Controller().PointerMove(g.css(x, y))
}

func (g *game) keyboard() {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keyMap[k]; ok {
			g.sess.KeyDown(key)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keyMap[k]; ok {
			g.sess.KeyUp(key)
		}
	}
}

// css converts layout pixels to CSS units.
func (g *game) css(x, y int) (float64, float64) {
	dpr := g.dpr
	if dpr <= 0 {
		dpr = 1
	}
	return float64(x) / dpr, float64(y) / dpr
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.sess.Theme().Background())

	frame := g.surface.Image()
	b := frame.Bounds()
	if g.img == nil || g.img.Bounds().Size() != b.Size() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.img.WritePixels(frame.Pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.width || outsideHeight != g.height || dpr != g.dpr {
		g.width, g.height, g.dpr = outsideWidth, outsideHeight, dpr
		g.sess.Resize(float64(outsideWidth), float64(outsideHeight), dpr)
	}
	pw, ph := g.sess.Viewport().PixelSize()
	return max(pw, 1), max(ph, 1)
}
