// Package render draws the cube onto an immediate-mode 2D surface.
package render

import (
	"image/color"

	"cuberot/internal/blend"
)

// Surface is an immediate-mode 2D drawing target. Coordinates are in CSS
// units; the surface applies the scale given to Configure.
type Surface interface {
	// Configure sets the pixel buffer size and the CSS-to-pixel scale.
	Configure(pixelWidth, pixelHeight int, scale float64)
	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()

	// SetStrokeColor sets the color used by the next Stroke. Only the
	// value current at Stroke time applies to the whole path.
	SetStrokeColor(c color.NRGBA)
	Stroke()

	SetFillColor(c color.NRGBA)
	// SetCompositeOp sets how later fills combine with existing pixels.
	SetCompositeOp(op blend.Op)
	Fill()
}
