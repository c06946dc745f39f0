// Package pointcloud stores the HSL point clouds handed to the renderer in
// fixed-capacity position/color arrays.
package pointcloud

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/hslcloud/internal/engine/hsl"
	"github.com/Faultbox/hslcloud/internal/logger"
)

// DefaultMaxPoints is the per-slot capacity used when none is configured.
const DefaultMaxPoints = 50000

// ColorMode selects how point colors are derived.
type ColorMode int

const (
	// ColorModeHSL colors each point by its own HSL value.
	ColorModeHSL ColorMode = iota
	// ColorModeUniform paints every point with one tint.
	ColorModeUniform
)

// String returns the mode name.
func (m ColorMode) String() string {
	switch m {
	case ColorModeHSL:
		return "hsl"
	case ColorModeUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Slot is one fixed-capacity cloud. Only the first Len() entries of
// Positions and Colors are valid.
type Slot struct {
	name      string
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3
	n         int
}

func newSlot(name string, capacity int) Slot {
	return Slot{
		name:      name,
		Positions: make([]mgl32.Vec3, capacity),
		Colors:    make([]mgl32.Vec3, capacity),
	}
}

// Len returns the number of valid points.
func (s *Slot) Len() int {
	return s.n
}

// Cap returns the slot capacity.
func (s *Slot) Cap() int {
	return len(s.Positions)
}

// fill replaces the slot contents. Samples past capacity are dropped.
func (s *Slot) fill(samples []hsl.Sample, mode ColorMode, tint mgl32.Vec3) {
	if len(samples) > s.Cap() {
		logger.Warn("point cloud exceeds capacity, dropping tail",
			zap.String("slot", s.name),
			zap.Int("samples", len(samples)),
			zap.Int("capacity", s.Cap()),
		)
	}

	s.n = hsl.Positions(samples, s.Positions)
	if mode == ColorModeHSL {
		hsl.Colors(samples[:s.n], s.Colors)
	} else {
		hsl.Fill(s.Colors, s.n, tint)
	}
}

// Buffer holds a primary and a secondary cloud. The secondary cloud is only
// drawn in dual mode.
type Buffer struct {
	Primary   Slot
	Secondary Slot

	// Tint is the color used by SetPrimary in ColorModeUniform.
	Tint mgl32.Vec3

	dual bool
}

// New creates a buffer whose slots each hold up to maxPoints points.
// A non-positive maxPoints selects DefaultMaxPoints.
func New(maxPoints int) *Buffer {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return &Buffer{
		Primary:   newSlot("primary", maxPoints),
		Secondary: newSlot("secondary", maxPoints),
		Tint:      mgl32.Vec3{0.2, 0.6, 1.0},
	}
}

// Capacity returns the per-slot capacity.
func (b *Buffer) Capacity() int {
	return b.Primary.Cap()
}

// DualMode reports whether the secondary cloud is drawn.
func (b *Buffer) DualMode() bool {
	return b.dual
}

// SetPrimary replaces the primary cloud and leaves dual mode.
func (b *Buffer) SetPrimary(samples []hsl.Sample, mode ColorMode) {
	b.Primary.fill(samples, mode, b.Tint)
	b.dual = false
}

// SetDual loads two clouds for comparison, each painted with its own tint,
// and enters dual mode. Each slot is truncated to capacity independently.
func (b *Buffer) SetDual(a, bs []hsl.Sample, colorA, colorB mgl32.Vec3) {
	b.Primary.fill(a, ColorModeUniform, colorA)
	b.Secondary.fill(bs, ColorModeUniform, colorB)
	b.dual = true
}

// Clear empties both slots and leaves dual mode.
func (b *Buffer) Clear() {
	b.Primary.n = 0
	b.Secondary.n = 0
	b.dual = false
}
