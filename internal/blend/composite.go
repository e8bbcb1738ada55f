package blend

import (
	"image/color"

	"github.com/gogpu/gg/scene"
)

// Func blends a premultiplied source pixel onto a premultiplied destination
// pixel. All channels are 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var modes = [numOps]scene.BlendMode{
	SourceOver:      scene.BlendSourceOver,
	SourceIn:        scene.BlendSourceIn,
	SourceOut:       scene.BlendSourceOut,
	SourceAtop:      scene.BlendSourceAtop,
	DestinationOver: scene.BlendDestinationOver,
	DestinationIn:   scene.BlendDestinationIn,
	DestinationOut:  scene.BlendDestinationOut,
	DestinationAtop: scene.BlendDestinationAtop,
	Lighter:         scene.BlendPlus,
	Copy:            scene.BlendCopy,
	Xor:             scene.BlendXor,
	Multiply:        scene.BlendMultiply,
	Screen:          scene.BlendScreen,
	Overlay:         scene.BlendOverlay,
	Darken:          scene.BlendDarken,
	Lighten:         scene.BlendLighten,
	ColorDodge:      scene.BlendColorDodge,
	ColorBurn:       scene.BlendColorBurn,
	HardLight:       scene.BlendHardLight,
	SoftLight:       scene.BlendSoftLight,
	Difference:      scene.BlendDifference,
	Exclusion:       scene.BlendExclusion,
	Hue:             scene.BlendHue,
	Saturation:      scene.BlendSaturation,
	Color:           scene.BlendColor,
	Luminosity:      scene.BlendLuminosity,
}

var funcs = func() [numOps]Func {
	var fs [numOps]Func
	for i, m := range modes {
		fs[i] = Func(m.GetBlendFunc())
	}
	return fs
}()

// Mode returns the scene blend mode implementing o. Unknown operations map
// to source-over.
func (o Op) Mode() scene.BlendMode {
	if !o.Valid() {
		return modes[Default]
	}
	return modes[o]
}

// Func returns the pixel blend function for o.
func (o Op) Func() Func {
	if !o.Valid() {
		return funcs[Default]
	}
	return funcs[o]
}

// Premul converts a straight-alpha color to premultiplied bytes.
func Premul(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// Scale multiplies every channel of c by k/255, as coverage does.
func Scale(c color.RGBA, k uint8) color.RGBA {
	if k == 255 {
		return c
	}
	return color.RGBA{R: mul(c.R, k), G: mul(c.G, k), B: mul(c.B, k), A: mul(c.A, k)}
}

func mul(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// Composite combines source s onto destination d with operation o.
func Composite(o Op, s, d color.RGBA) color.RGBA {
	r, g, b, a := o.Func()(s.R, s.G, s.B, s.A, d.R, d.G, d.B, d.A)
	return color.RGBA{R: r, G: g, B: b, A: a}
}
