// Package blend implements the canvas composite operations over
// premultiplied RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "fmt"

// Op is a composite operation.
type Op uint8

const (
	// Porter-Duff operators
	SourceOver      Op = iota // S + D*(1-Sa) [default]
	SourceIn                  // S*Da
	SourceOut                 // S*(1-Da)
	SourceAtop                // S*Da + D*(1-Sa)
	DestinationOver           // S*(1-Da) + D
	DestinationIn             // D*Sa
	DestinationOut            // D*(1-Sa)
	DestinationAtop           // S*(1-Da) + D*Sa
	Lighter                   // S + D, clamped
	Copy                      // S
	Xor                       // S*(1-Da) + D*(1-Sa)

	// Separable blend modes
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion

	// Non-separable blend modes
	Hue
	Saturation
	Color
	Luminosity

	numOps
)

// Default is the operation restored between faces.
const Default = SourceOver

var names = [numOps]string{
	SourceOver:      "source-over",
	SourceIn:        "source-in",
	SourceOut:       "source-out",
	SourceAtop:      "source-atop",
	DestinationOver: "destination-over",
	DestinationIn:   "destination-in",
	DestinationOut:  "destination-out",
	DestinationAtop: "destination-atop",
	Lighter:         "lighter",
	Copy:            "copy",
	Xor:             "xor",
	Multiply:        "multiply",
	Screen:          "screen",
	Overlay:         "overlay",
	Darken:          "darken",
	Lighten:         "lighten",
	ColorDodge:      "color-dodge",
	ColorBurn:       "color-burn",
	HardLight:       "hard-light",
	SoftLight:       "soft-light",
	Difference:      "difference",
	Exclusion:       "exclusion",
	Hue:             "hue",
	Saturation:      "saturation",
	Color:           "color",
	Luminosity:      "luminosity",
}

// Rollable is the pool faces draw their operation from: every operation
// except Default.
var Rollable = func() [numOps - 1]Op {
	var ops [numOps - 1]Op
	for i := range ops {
		ops[i] = Op(i + 1)
	}
	return ops
}()

// All returns every operation in declaration order.
func All() []Op {
	ops := make([]Op, numOps)
	for i := range ops {
		ops[i] = Op(i)
	}
	return ops
}

// String returns the canvas name of the operation.
func (o Op) String() string {
	if o < numOps {
		return names[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Valid reports whether o is a known operation.
func (o Op) Valid() bool { return o < numOps }

// Parse looks up an operation by its canvas name.
func Parse(name string) (Op, error) {
	for i, n := range names {
		if n == name {
			return Op(i), nil
		}
	}
	return Default, fmt.Errorf("blend: unknown composite operation %q", name)
}

// Unbounded reports whether o changes the destination where the source is
// fully transparent. Such operations must be applied to the whole surface,
// not just under the shape.
func (o Op) Unbounded() bool {
	switch o {
	case SourceIn, SourceOut, DestinationIn, DestinationAtop, Copy:
		return true
	}
	return false
}
