package blend

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesRoundTrip(t *testing.T) {
	ops := All()
	require.Len(t, ops, 26)
	seen := make(map[string]bool)
	for _, op := range ops {
		name := op.String()
		assert.False(t, seen[name], name)
		seen[name] = true
		parsed, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}
	_, err := Parse("plus-darker")
	assert.Error(t, err)
	assert.Equal(t, "Op(200)", Op(200).String())
}

func TestRollableExcludesDefault(t *testing.T) {
	assert.Len(t, Rollable, 25)
	seen := make(map[Op]bool)
	for _, op := range Rollable {
		assert.NotEqual(t, Default, op)
		assert.True(t, op.Valid())
		assert.False(t, seen[op])
		seen[op] = true
	}
}

func TestModesAreDistinct(t *testing.T) {
	seen := make(map[scene.BlendMode]Op)
	for _, op := range All() {
		m := op.Mode()
		prev, dup := seen[m]
		assert.False(t, dup, "%s and %s share %s", prev, op, m)
		seen[m] = op
	}
	assert.Equal(t, scene.BlendPlus, Lighter.Mode())
	assert.Equal(t, scene.BlendCopy, Copy.Mode())
	assert.Equal(t, scene.BlendSourceOver, Op(200).Mode())
}

var (
	red         = color.RGBA{R: 255, A: 255}
	blue        = color.RGBA{B: 255, A: 255}
	white       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black       = color.RGBA{A: 255}
	gray        = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	transparent = color.RGBA{}
	half        = Premul(color.NRGBA{G: 255, A: 128})
)

func TestPremulAndScale(t *testing.T) {
	assert.Equal(t, color.RGBA{G: 128, A: 128}, half)
	assert.Equal(t, red, Scale(red, 255))
	assert.Equal(t, transparent, Scale(red, 0))
	assert.Equal(t, color.RGBA{R: 128, A: 128}, Scale(red, 128))
}

func TestPorterDuff(t *testing.T) {
	tests := []struct {
		op   Op
		s, d color.RGBA
		want color.RGBA
	}{
		{SourceOver, half, blue, color.RGBA{G: 128, B: 127, A: 255}},
		{SourceOver, transparent, blue, blue},
		{SourceIn, red, blue, red},
		{SourceIn, red, transparent, transparent},
		{SourceIn, transparent, blue, transparent},
		{SourceOut, red, transparent, red},
		{SourceOut, red, blue, transparent},
		{SourceAtop, half, blue, color.RGBA{G: 128, B: 127, A: 255}},
		{SourceAtop, red, transparent, transparent},
		{DestinationOver, red, blue, blue},
		{DestinationOver, red, transparent, red},
		{DestinationIn, half, blue, color.RGBA{B: 128, A: 128}},
		{DestinationOut, half, blue, color.RGBA{B: 127, A: 127}},
		{DestinationAtop, red, blue, blue},
		{DestinationAtop, transparent, blue, transparent},
		{Lighter, red, blue, color.RGBA{R: 255, B: 255, A: 255}},
		{Copy, half, blue, half},
		{Copy, transparent, blue, transparent},
		{Xor, red, blue, transparent},
		{Xor, red, transparent, red},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Composite(tt.op, tt.s, tt.d))
		})
	}
}

func TestSeparable(t *testing.T) {
	quarter := color.RGBA{R: 64, G: 64, B: 64, A: 255}
	grayOf := func(v uint8) color.RGBA { return color.RGBA{R: v, G: v, B: v, A: 255} }
	tests := []struct {
		op   Op
		s, d color.RGBA
		want color.RGBA
	}{
		{Multiply, gray, white, gray},
		{Multiply, gray, gray, grayOf(64)},
		{Screen, gray, gray, grayOf(192)},
		{Overlay, white, quarter, gray},
		{Darken, red, blue, black},
		{Lighten, red, blue, color.RGBA{R: 255, B: 255, A: 255}},
		{Difference, white, gray, grayOf(127)},
		{Exclusion, white, gray, grayOf(127)},
		{HardLight, black, gray, black},
		{ColorDodge, white, gray, white},
		{ColorBurn, black, gray, black},
		{SoftLight, gray, gray, gray},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Composite(tt.op, tt.s, tt.d))
		})
	}
}

func TestTranslucentPixels(t *testing.T) {
	s := color.RGBA{R: 200, G: 30, B: 60, A: 230}
	d := color.RGBA{R: 40, G: 180, B: 90, A: 230}
	tests := []struct {
		op   Op
		want color.RGBA
	}{
		{Multiply, color.RGBA{R: 55, G: 43, B: 37, A: 253}},
		{Hue, color.RGBA{R: 225, G: 96, B: 112, A: 253}},
		{Copy, s},
		{Lighter, color.RGBA{R: 240, G: 210, B: 150, A: 255}},
		{SourceIn, color.RGBA{R: 180, G: 27, B: 54, A: 207}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Composite(tt.op, s, d))
		})
	}
}

func TestBlendModesKeepDestinationUnderTransparentSource(t *testing.T) {
	d := Premul(color.NRGBA{R: 51, G: 102, B: 153, A: 204})
	for _, op := range All() {
		if op.Unbounded() {
			continue
		}
		assert.Equal(t, d, Composite(op, transparent, d), op.String())
	}
}

func TestUnboundedClearOutside(t *testing.T) {
	d := Premul(color.NRGBA{R: 51, G: 102, B: 153, A: 204})
	for _, op := range []Op{SourceIn, SourceOut, DestinationIn, DestinationAtop, Copy} {
		assert.True(t, op.Unbounded())
		assert.Equal(t, transparent, Composite(op, transparent, d), op.String())
	}
}

func TestNonSeparable(t *testing.T) {
	// A gray source has no saturation to give, so red keeps only its
	// luminance.
	got := Composite(Saturation, gray, red)
	assert.InDelta(t, 77, int(got.R), 1)
	assert.Equal(t, got.R, got.G)
	assert.Equal(t, got.R, got.B)

	// Luminosity of gray onto red keeps red's hue.
	got = Composite(Luminosity, gray, red)
	assert.Greater(t, got.R, got.G)
	assert.Equal(t, got.G, got.B)

	// Color takes hue and saturation from the source.
	got = Composite(Color, blue, gray)
	assert.Greater(t, got.B, got.R)

	got = Composite(Hue, red, gray)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.InDelta(t, 128, int(got.G), 1)
	assert.InDelta(t, 128, int(got.B), 1)
}
