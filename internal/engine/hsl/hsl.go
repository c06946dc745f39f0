// Package hsl maps Hue/Saturation/Lightness samples to display colors and
// to positions on the unit color cylinder.
package hsl

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sample is one color sample. H is in degrees [0,360), S and L in [0,1].
type Sample struct {
	H, S, L float32
}

// ToRGB converts an HSL triple to RGB in [0,1].
// Hue wraps with a period of 360 degrees.
func ToRGB(hDeg, s, l float32) (r, g, b float32) {
	hDeg = math32.Mod(hDeg, 360)
	if hDeg < 0 {
		hDeg += 360
	}
	h := hDeg / 360

	c := (1 - math32.Abs(2*l-1)) * s
	x := c * (1 - math32.Abs(math32.Mod(h*6, 2)-1))
	m := l - c/2

	switch {
	case h < 1.0/6.0:
		r, g, b = c, x, 0
	case h < 2.0/6.0:
		r, g, b = x, c, 0
	case h < 3.0/6.0:
		r, g, b = 0, c, x
	case h < 4.0/6.0:
		r, g, b = 0, x, c
	case h < 5.0/6.0:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

// ToPosition maps an HSL triple onto the cylinder: hue is the angle around
// the Y axis, saturation the radius and lightness the height.
func ToPosition(hDeg, s, l float32) mgl32.Vec3 {
	angle := mgl32.DegToRad(hDeg)
	return mgl32.Vec3{s * math32.Cos(angle), l, s * math32.Sin(angle)}
}

// Color returns the display color of the sample.
func (s Sample) Color() mgl32.Vec3 {
	r, g, b := ToRGB(s.H, s.S, s.L)
	return mgl32.Vec3{r, g, b}
}

// Position returns the cylinder position of the sample.
func (s Sample) Position() mgl32.Vec3 {
	return ToPosition(s.H, s.S, s.L)
}

// Positions writes the cylinder position of each sample into dst and returns
// the number written, which is min(len(samples), len(dst)).
func Positions(samples []Sample, dst []mgl32.Vec3) int {
	n := min(len(samples), len(dst))
	for i := range n {
		dst[i] = samples[i].Position()
	}
	return n
}

// Colors writes the display color of each sample into dst and returns
// the number written, which is min(len(samples), len(dst)).
func Colors(samples []Sample, dst []mgl32.Vec3) int {
	n := min(len(samples), len(dst))
	for i := range n {
		dst[i] = samples[i].Color()
	}
	return n
}

// Fill writes c into the first n entries of dst.
func Fill(dst []mgl32.Vec3, n int, c mgl32.Vec3) {
	n = min(n, len(dst))
	for i := range n {
		dst[i] = c
	}
}
