package hsl

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestToRGBPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float32
		r, g, b float32
	}{
		{"red", 0, 1, 0.5, 1, 0, 0},
		{"yellow", 60, 1, 0.5, 1, 1, 0},
		{"green", 120, 1, 0.5, 0, 1, 0},
		{"cyan", 180, 1, 0.5, 0, 1, 1},
		{"blue", 240, 1, 0.5, 0, 0, 1},
		{"magenta", 300, 1, 0.5, 1, 0, 1},
		{"white", 0, 0, 1, 1, 1, 1},
		{"black", 200, 1, 0, 0, 0, 0},
		{"skin", 20, 0.5, 0.5, 0.75, 0.4166667, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := ToRGB(tt.h, tt.s, tt.l)
			assert.InDelta(t, tt.r, r, eps, "red channel")
			assert.InDelta(t, tt.g, g, eps, "green channel")
			assert.InDelta(t, tt.b, b, eps, "blue channel")
		})
	}
}

func TestToRGBSextantBoundaries(t *testing.T) {
	// Just below and at each boundary the dominant channel changes.
	r, g, b := ToRGB(59.999, 1, 0.5)
	assert.InDelta(t, 1, r, eps)
	assert.Less(t, g, float32(1))
	assert.InDelta(t, 0, b, eps)

	r, g, _ = ToRGB(60, 1, 0.5)
	assert.InDelta(t, 1, r, eps)
	assert.InDelta(t, 1, g, eps)

	// Skin hues live in the first sextant: red dominant, blue minimal.
	for h := float32(0); h < 60; h += 2.5 {
		r, g, b := ToRGB(h, 0.6, 0.55)
		assert.GreaterOrEqual(t, r, g, "h=%v", h)
		assert.GreaterOrEqual(t, g, b, "h=%v", h)
	}
}

func TestToRGBAchromatic(t *testing.T) {
	for _, h := range []float32{0, 17, 45, 90, 180, 270, 359.9} {
		for _, l := range []float32{0, 0.25, 0.5, 0.8, 1} {
			r, g, b := ToRGB(h, 0, l)
			assert.Equal(t, l, r, "h=%v l=%v", h, l)
			assert.Equal(t, l, g, "h=%v l=%v", h, l)
			assert.Equal(t, l, b, "h=%v l=%v", h, l)
		}
	}
}

func TestToRGBPeriodic(t *testing.T) {
	for _, h := range []float32{0, 12.5, 20, 33, 95, 180, 250, 359} {
		r1, g1, b1 := ToRGB(h, 0.7, 0.4)
		r2, g2, b2 := ToRGB(h+360, 0.7, 0.4)
		r3, g3, b3 := ToRGB(h-360, 0.7, 0.4)
		assert.Equal(t, [3]float32{r1, g1, b1}, [3]float32{r2, g2, b2}, "h=%v", h)
		assert.Equal(t, [3]float32{r1, g1, b1}, [3]float32{r3, g3, b3}, "h=%v", h)
	}
}

func TestToRGBRange(t *testing.T) {
	for h := float32(0); h < 360; h += 7 {
		for s := float32(0); s <= 1; s += 0.25 {
			for l := float32(0); l <= 1; l += 0.25 {
				r, g, b := ToRGB(h, s, l)
				for _, c := range []float32{r, g, b} {
					require.GreaterOrEqual(t, c, float32(-eps))
					require.LessOrEqual(t, c, float32(1+eps))
				}
			}
		}
	}
}

func TestToPositionOnCylinder(t *testing.T) {
	for h := float32(0); h < 360; h += 15 {
		for _, s := range []float32{0, 0.1, 0.5, 1} {
			for _, l := range []float32{0, 0.3, 1} {
				p := ToPosition(h, s, l)
				assert.Equal(t, l, p.Y(), "height must equal lightness")
				radius := math32.Sqrt(p.X()*p.X() + p.Z()*p.Z())
				assert.InDelta(t, s, radius, eps, "h=%v s=%v", h, s)
			}
		}
	}
}

func TestToPositionAngles(t *testing.T) {
	assert.True(t, ToPosition(0, 1, 0).ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps))
	assert.True(t, ToPosition(90, 1, 0.5).ApproxEqualThreshold(mgl32.Vec3{0, 0.5, 1}, eps))
	assert.True(t, ToPosition(180, 0.5, 1).ApproxEqualThreshold(mgl32.Vec3{-0.5, 1, 0}, eps))
}

func TestBulkConversionMatchesScalar(t *testing.T) {
	samples := []Sample{{20, 0.5, 0.5}, {35, 0.3, 0.7}, {8, 0.9, 0.2}}

	pos := make([]mgl32.Vec3, 2)
	col := make([]mgl32.Vec3, 5)

	require.Equal(t, 2, Positions(samples, pos))
	require.Equal(t, 3, Colors(samples, col))

	for i := 0; i < 2; i++ {
		assert.Equal(t, samples[i].Position(), pos[i])
	}
	for i, s := range samples {
		r, g, b := ToRGB(s.H, s.S, s.L)
		assert.Equal(t, mgl32.Vec3{r, g, b}, col[i])
	}
	assert.Equal(t, mgl32.Vec3{}, col[3], "entries past the input stay untouched")
}

func TestFill(t *testing.T) {
	dst := make([]mgl32.Vec3, 4)
	Fill(dst, 10, mgl32.Vec3{0.2, 0.4, 0.6})
	for _, c := range dst {
		assert.Equal(t, mgl32.Vec3{0.2, 0.4, 0.6}, c)
	}
}
