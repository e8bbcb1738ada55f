package render

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuberot/internal/blend"
	"cuberot/internal/geom"
)

// recorder is a Surface that logs calls and tracks the state a canvas
// would resolve at Stroke and Fill time.
type recorder struct {
	calls []string

	stroke color.NRGBA
	fill   color.NRGBA
	op     blend.Op

	strokes []color.NRGBA
	fills   []color.NRGBA
	fillOps []blend.Op
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Configure(w, h int, scale float64) { r.log("configure %d %d %g", w, h, scale) }
func (r *recorder) ClearRect(x, y, w, h float64)      { r.log("clear %g %g %g %g", x, y, w, h) }
func (r *recorder) BeginPath()                        { r.log("begin") }
func (r *recorder) MoveTo(x, y float64)               { r.log("move") }
func (r *recorder) LineTo(x, y float64)               { r.log("line") }
func (r *recorder) ClosePath()                        { r.log("close") }
func (r *recorder) SetStrokeColor(c color.NRGBA)      { r.stroke = c; r.log("strokeStyle") }
func (r *recorder) SetFillColor(c color.NRGBA)        { r.fill = c; r.log("fillStyle") }
func (r *recorder) SetCompositeOp(op blend.Op)        { r.op = op; r.log("op %s", op) }

func (r *recorder) Stroke() {
	r.strokes = append(r.strokes, r.stroke)
	r.log("stroke")
}

func (r *recorder) Fill() {
	r.fills = append(r.fills, r.fill)
	r.fillOps = append(r.fillOps, r.op)
	r.log("fill")
}

func newCube() *geom.Cube {
	return geom.NewCube(rand.New(rand.NewPCG(4, 2)), 0.9)
}

func TestDrawSequence(t *testing.T) {
	cube := newCube()
	rec := &recorder{}
	NewRenderer().Draw(rec, cube, Viewport{Width: 300, Height: 200, DPR: 2})

	require.Equal(t, "clear 0 0 300 200", rec.calls[0])

	perFace := []string{
		"begin", "move",
		"strokeStyle", "line",
		"strokeStyle", "line",
		"strokeStyle", "line",
		"close", "stroke",
	}
	calls := rec.calls[1:]
	require.Len(t, calls, geom.NumFaces*(len(perFace)+4))
	for i := range geom.NumFaces {
		face := calls[i*(len(perFace)+4):]
		assert.Equal(t, perFace, face[:len(perFace)], "face %d", i)
		assert.Equal(t, "op "+cube.Ops[i].String(), face[len(perFace)])
		assert.Equal(t, []string{"fillStyle", "fill", "op source-over"}, face[len(perFace)+1:len(perFace)+4])
	}
}

func TestStrokeResolvesToThirdEdgeColor(t *testing.T) {
	cube := newCube()
	rec := &recorder{}
	NewRenderer().Draw(rec, cube, Viewport{Width: 100, Height: 100, DPR: 1})

	require.Len(t, rec.strokes, geom.NumFaces)
	for i := range geom.NumFaces {
		edges, fill := cube.FacePaint(i)
		assert.Equal(t, edges[2], rec.strokes[i])
		assert.Equal(t, fill, rec.fills[i])
		assert.Equal(t, cube.Ops[i], rec.fillOps[i])
	}
	assert.Equal(t, blend.Default, rec.op)
}

func TestProjectUsesHeightAsFOV(t *testing.T) {
	cube := newCube()
	r := NewRenderer()
	vp := Viewport{Width: 600, Height: 400, DPR: 2}
	pts := r.Project(cube, vp)
	for i, v := range cube.Vertices {
		want := geom.Project(v, 1200, 800, 800, geom.ViewDistance, 2)
		assert.Equal(t, want, pts[i])
	}
	// Centered on the CSS viewport.
	var cx, cy float64
	for _, p := range pts {
		cx += p.X / geom.NumVertices
		cy += p.Y / geom.NumVertices
	}
	assert.InDelta(t, 300, cx, 1e-9)
	assert.InDelta(t, 200, cy, 1e-9)
}

func TestPixelSize(t *testing.T) {
	w, h := Viewport{Width: 300, Height: 150, DPR: 2}.PixelSize()
	assert.Equal(t, 600, w)
	assert.Equal(t, 300, h)

	w, h = Viewport{Width: 300, Height: 150}.PixelSize()
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)
}
