package geom

import (
	"image/color"
	"math"
	"math/rand/v2"

	"cuberot/internal/blend"
)

const (
	// NumVertices is the vertex count of the cube.
	NumVertices = 8
	// NumFaces is the face count of the cube.
	NumFaces = 6
	// ColorsPerFace is three edge colors plus one fill color.
	ColorsPerFace = 4
	// NumColors is the size of a rolled palette.
	NumColors = NumFaces * ColorsPerFace
)

// Face lists the four vertex indices of a planar quad in drawing order.
type Face [4]int

var canonical = [NumVertices]Vec3{
	{-1, 1, -1},
	{1, 1, -1},
	{1, -1, -1},
	{-1, -1, -1},
	{-1, 1, 1},
	{1, 1, 1},
	{1, -1, 1},
	{-1, -1, 1},
}

var faces = [NumFaces]Face{
	{0, 1, 2, 3},
	{1, 5, 6, 2},
	{5, 4, 7, 6},
	{4, 0, 3, 7},
	{0, 4, 5, 1},
	{3, 2, 6, 7},
}

// Canonical returns the un-rotated vertex layout.
func Canonical() [NumVertices]Vec3 { return canonical }

// Faces returns the fixed face table.
func Faces() [NumFaces]Face { return faces }

// Cube is the single mutable piece of geometry: the current vertex
// positions and the rolled per-face paint.
type Cube struct {
	Vertices [NumVertices]Vec3
	Colors   [NumColors]color.NRGBA
	Ops      [NumFaces]blend.Op

	alpha uint8
	rng   *rand.Rand
}

// NewCube returns a cube in the canonical pose with freshly rolled paint.
// alpha is the opacity of every rolled color, in [0, 1].
func NewCube(rng *rand.Rand, alpha float64) *Cube {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c := &Cube{
		Vertices: canonical,
		alpha:    uint8(clampUnit(alpha)*255 + 0.5),
		rng:      rng,
	}
	c.Reroll()
	return c
}

// Rotate replaces every vertex with v.RotateX(x).RotateY(y).
func (c *Cube) Rotate(x, y float64) {
	var next [NumVertices]Vec3
	for i, v := range c.Vertices {
		next[i] = v.RotateX(x).RotateY(y)
	}
	c.Vertices = next
}

// Reset restores the canonical pose.
func (c *Cube) Reset() {
	c.Vertices = canonical
}

// Reroll draws a new palette and a new set of pairwise distinct operations.
// Geometry is left alone.
func (c *Cube) Reroll() {
	for i := range c.Colors {
		c.Colors[i] = color.NRGBA{
			R: uint8(c.rng.IntN(256)),
			G: uint8(c.rng.IntN(256)),
			B: uint8(c.rng.IntN(256)),
			A: c.alpha,
		}
	}
	perm := c.rng.Perm(len(blend.Rollable))
	for i := range c.Ops {
		c.Ops[i] = blend.Rollable[perm[i]]
	}
}

// FacePaint returns the three edge colors and the fill color of face i.
func (c *Cube) FacePaint(i int) (edges [3]color.NRGBA, fill color.NRGBA) {
	base := i * ColorsPerFace
	copy(edges[:], c.Colors[base:base+3])
	return edges, c.Colors[base+3]
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}
