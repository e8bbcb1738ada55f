package geom

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuberot/internal/blend"
)

func newTestCube(seed uint64) *Cube {
	return NewCube(rand.New(rand.NewPCG(seed, seed+1)), 0.9)
}

func TestCanonicalLayout(t *testing.T) {
	c := newTestCube(1)
	assert.Equal(t, Canonical(), c.Vertices)
	for _, v := range c.Vertices {
		for _, coord := range []float64{v.X, v.Y, v.Z} {
			assert.Contains(t, []float64{-1, 1}, coord)
		}
	}
}

func TestFacesAreQuadsOfDistinctVertices(t *testing.T) {
	uses := make(map[int]int)
	for _, f := range Faces() {
		seen := make(map[int]bool)
		for _, i := range f {
			require.True(t, i >= 0 && i < NumVertices)
			assert.False(t, seen[i])
			seen[i] = true
			uses[i]++
		}
	}
	// Every cube vertex belongs to three faces.
	for i := range NumVertices {
		assert.Equal(t, 3, uses[i], "vertex %d", i)
	}
}

func assertOps(t *testing.T, ops [NumFaces]blend.Op) {
	t.Helper()
	seen := make(map[blend.Op]bool)
	for _, op := range ops {
		assert.Contains(t, blend.Rollable[:], op)
		assert.False(t, seen[op], "duplicate %s", op)
		seen[op] = true
	}
}

func TestRerollKeepsGeometry(t *testing.T) {
	c := newTestCube(7)
	c.Rotate(12, 34)
	verts := c.Vertices
	faces := Faces()
	colors := c.Colors

	for range 50 {
		c.Reroll()
		assert.Equal(t, verts, c.Vertices)
		assert.Equal(t, faces, Faces())
		assert.Len(t, c.Colors, NumColors)
		assertOps(t, c.Ops)
		for _, col := range c.Colors {
			assert.Equal(t, uint8(230), col.A)
		}
	}
	assert.NotEqual(t, colors, c.Colors)
}

func TestResetRestoresCanonical(t *testing.T) {
	c := newTestCube(3)
	for i := range 100 {
		c.Rotate(float64(i)*1.7, float64(i)*-2.3)
	}
	require.NotEqual(t, Canonical(), c.Vertices)
	c.Reset()
	assert.Equal(t, Canonical(), c.Vertices)
}

func TestRotateAppliesXThenY(t *testing.T) {
	c := newTestCube(5)
	c.Rotate(10, 20)
	for i, v := range Canonical() {
		assertVec(t, v.RotateX(10).RotateY(20), c.Vertices[i])
	}
}

func TestFacePaint(t *testing.T) {
	c := newTestCube(9)
	edges, fill := c.FacePaint(2)
	assert.Equal(t, c.Colors[8], edges[0])
	assert.Equal(t, c.Colors[10], edges[2])
	assert.Equal(t, c.Colors[11], fill)
}
