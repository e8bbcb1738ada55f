package render

import (
	"cuberot/internal/blend"
	"cuberot/internal/geom"
)

// Viewport describes the drawing surface in CSS units plus its device pixel
// ratio.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

// PixelSize returns the backing buffer size, CSS size times DPR.
func (v Viewport) PixelSize() (w, h int) {
	dpr := geom.NormalizeDPR(v.DPR)
	return int(v.Width * dpr), int(v.Height * dpr)
}

// Renderer draws one frame of the cube per call.
type Renderer struct {
	// Distance is the eye distance handed to the projector.
	Distance float64
}

// NewRenderer returns a renderer using geom.ViewDistance.
func NewRenderer() *Renderer {
	return &Renderer{Distance: geom.ViewDistance}
}

// Project maps every vertex of cube onto the viewport.
func (r *Renderer) Project(cube *geom.Cube, vp Viewport) [geom.NumVertices]geom.Point2 {
	dpr := geom.NormalizeDPR(vp.DPR)
	w, h := vp.Width*dpr, vp.Height*dpr
	var pts [geom.NumVertices]geom.Point2
	for i, v := range cube.Vertices {
		pts[i] = geom.Project(v, w, h, h, r.Distance, dpr)
	}
	return pts
}

// Draw clears s and paints the faces in their fixed order. Each face is
// outlined, then filled with its own composite operation, which is reset
// to the default before the next face.
func (r *Renderer) Draw(s Surface, cube *geom.Cube, vp Viewport) {
	s.ClearRect(0, 0, vp.Width, vp.Height)

	pts := r.Project(cube, vp)
	for i, face := range geom.Faces() {
		edges, fill := cube.FacePaint(i)

		s.BeginPath()
		s.MoveTo(pts[face[0]].X, pts[face[0]].Y)
		for j := 1; j < len(face); j++ {
			s.SetStrokeColor(edges[j-1])
			s.LineTo(pts[face[j]].X, pts[face[j]].Y)
		}
		s.ClosePath()
		s.Stroke()

		s.SetCompositeOp(cube.Ops[i])
		s.SetFillColor(fill)
		s.Fill()
		s.SetCompositeOp(blend.Default)
	}
}
