// Package canvas is a software render.Surface: gg rasterizes each path into
// a coverage mask and the mask is composited onto a premultiplied RGBA
// buffer with the current composite operation.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"

	"cuberot/internal/blend"
	"cuberot/internal/geom"
	"cuberot/internal/render"
)

var _ render.Surface = (*Canvas)(nil)

type verb uint8

const (
	moveTo verb = iota
	lineTo
	closePath
)

// miterLimit matches the canvas default.
const miterLimit = 10

type segment struct {
	verb verb
	x, y float64
}

// Canvas draws into an in-memory image. The zero value is unusable; call
// New.
type Canvas struct {
	img   *image.RGBA
	dc    *gg.Context
	mask  *gg.Pixmap
	scale float64

	path      []segment
	stroke    color.NRGBA
	fill      color.NRGBA
	op        blend.Op
	lineWidth float64

	err error
}

// New returns a canvas of the given pixel size and CSS-to-pixel scale.
func New(width, height int, scale float64) *Canvas {
	c := &Canvas{lineWidth: 1}
	c.Configure(width, height, scale)
	return c
}

// Configure reallocates the buffer. Pixels are cleared.
func (c *Canvas) Configure(width, height int, scale float64) {
	width, height = max(width, 1), max(height, 1)
	c.scale = geom.NormalizeDPR(scale)
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	if c.dc != nil {
		c.setErr(c.dc.Close())
	}
	c.mask = gg.NewPixmap(width, height)
	c.dc = gg.NewContext(width, height, gg.WithPixmap(c.mask))
	c.path = c.path[:0]
	c.op = blend.Default
}

// Image returns the backing buffer. It is overwritten by later draws.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Scale returns the configured CSS-to-pixel scale.
func (c *Canvas) Scale() float64 { return c.scale }

// SetLineWidth sets the stroke width in CSS units.
func (c *Canvas) SetLineWidth(w float64) { c.lineWidth = w }

// Err returns the first rasterizer error since the last call and clears it.
func (c *Canvas) Err() error {
	err := c.err
	c.err = nil
	return err
}

func (c *Canvas) setErr(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// ClearRect makes the given CSS rectangle transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := image.Rect(
		int(math.Floor(x*c.scale)),
		int(math.Floor(y*c.scale)),
		int(math.Ceil((x+w)*c.scale)),
		int(math.Ceil((y+h)*c.scale)),
	).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) BeginPath()          { c.path = c.path[:0] }
func (c *Canvas) MoveTo(x, y float64) { c.path = append(c.path, segment{moveTo, x, y}) }
func (c *Canvas) LineTo(x, y float64) { c.path = append(c.path, segment{lineTo, x, y}) }
func (c *Canvas) ClosePath()          { c.path = append(c.path, segment{verb: closePath}) }

func (c *Canvas) SetStrokeColor(col color.NRGBA) { c.stroke = col }
func (c *Canvas) SetFillColor(col color.NRGBA)   { c.fill = col }
func (c *Canvas) SetCompositeOp(op blend.Op)     { c.op = op }

// Stroke outlines the current path with the stroke color. Strokes always
// composite as source-over.
func (c *Canvas) Stroke() {
	width := c.lineWidth * c.scale
	r, ok := c.rasterize(width/2*miterLimit, func(dc *gg.Context) error {
		dc.SetLineWidth(width)
		dc.SetMiterLimit(miterLimit)
		return dc.Stroke()
	})
	if !ok {
		return
	}
	c.composite(r, c.stroke, blend.SourceOver)
}

// Fill paints the interior of the current path with the fill color using
// the current composite operation.
func (c *Canvas) Fill() {
	r, ok := c.rasterize(0, func(dc *gg.Context) error {
		return dc.Fill()
	})
	if !ok {
		return
	}
	c.composite(r, c.fill, c.op)
}

// bounds returns the pixel rectangle the current path can touch when
// painted with the given outset.
func (c *Canvas) bounds(outset float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range c.path {
		if s.verb == closePath {
			continue
		}
		minX, maxX = math.Min(minX, s.x), math.Max(maxX, s.x)
		minY, maxY = math.Min(minY, s.y), math.Max(maxY, s.y)
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	pad := outset + 2
	return image.Rect(
		int(math.Floor(minX*c.scale-pad)),
		int(math.Floor(minY*c.scale-pad)),
		int(math.Ceil(maxX*c.scale+pad)),
		int(math.Ceil(maxY*c.scale+pad)),
	).Intersect(c.img.Bounds())
}

// rasterize replays the path on the scratch context and paints it opaque
// white with paint. The mask pixmap then holds coverage in its alpha
// channel inside the returned rectangle and is transparent elsewhere.
func (c *Canvas) rasterize(outset float64, paint func(dc *gg.Context) error) (image.Rectangle, bool) {
	r := c.bounds(outset)
	if r.Empty() {
		return r, true
	}
	dc := c.dc
	dc.ClearPath()
	for _, s := range c.path {
		switch s.verb {
		case moveTo:
			dc.MoveTo(s.x*c.scale, s.y*c.scale)
		case lineTo:
			dc.LineTo(s.x*c.scale, s.y*c.scale)
		case closePath:
			dc.ClosePath()
		}
	}
	dc.SetRGBA(1, 1, 1, 1)
	if err := paint(dc); err != nil {
		c.setErr(err)
		c.clearMask(r)
		return r, false
	}
	if err := dc.FlushGPU(); err != nil {
		c.setErr(err)
	}
	return r, true
}

// clearMask makes r transparent in the mask pixmap.
func (c *Canvas) clearMask(r image.Rectangle) {
	data, stride := c.mask.Data(), c.mask.Width()*4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		clear(data[y*stride+r.Min.X*4 : y*stride+r.Max.X*4])
	}
}

// composite applies col through the coverage in r onto the buffer with op
// and clears r in the mask again. Unbounded operations also run where the
// coverage is zero, over the whole buffer.
func (c *Canvas) composite(r image.Rectangle, col color.NRGBA, op blend.Op) {
	defer c.clearMask(r)

	area := r
	unbounded := op.Unbounded()
	if unbounded {
		area = c.img.Bounds()
	}
	src := blend.Premul(col)
	fn := op.Func()
	mask, maskStride := c.mask.Data(), c.mask.Width()*4
	pix, stride := c.img.Pix, c.img.Stride
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			k := mask[y*maskStride+x*4+3]
			if k == 0 && !unbounded {
				continue
			}
			s := blend.Scale(src, k)
			i := y*stride + x*4
			p := pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = fn(s.R, s.G, s.B, s.A, p[0], p[1], p[2], p[3])
		}
	}
}
