// Package camera provides the orbit camera used to inspect the color cylinder.
package camera

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default camera state and limits.
const (
	DefaultHAngle   = 45.0
	DefaultVAngle   = 0.0
	DefaultDistance = 3.5

	MinDistance = 1.5
	MaxDistance = 8.0

	// RotatePitchLimit bounds VAngle for incremental rotation.
	RotatePitchLimit = 80.0
	// SetPitchLimit bounds VAngle for absolute angle changes.
	SetPitchLimit = 89.0

	DefaultDragSensitivity = 0.5
	DefaultZoomStep        = 0.3
)

// Target is the fixed point the camera orbits: the middle of the cylinder axis.
var Target = mgl32.Vec3{0, 0.5, 0}

// WorldUp is the fixed up vector.
var WorldUp = mgl32.Vec3{0, 1, 0}

// OrbitCamera orbits the cylinder axis in spherical coordinates.
// Angles are in degrees; the horizontal angle is unbounded and wraps
// through trig. State changes only through the methods below, each of
// which recomputes the position.
type OrbitCamera struct {
	hAngle   float32
	vAngle   float32
	distance float32

	// Input sensitivity
	DragSensitivity float32 // degrees per pixel of drag
	ZoomStep        float32 // distance per wheel notch

	position mgl32.Vec3
}

// NewOrbitCamera creates a camera at the default viewpoint.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		hAngle:          DefaultHAngle,
		vAngle:          DefaultVAngle,
		distance:        DefaultDistance,
		DragSensitivity: DefaultDragSensitivity,
		ZoomStep:        DefaultZoomStep,
	}
	c.update()
	return c
}

// HAngle returns the horizontal angle in degrees.
func (c *OrbitCamera) HAngle() float32 {
	return c.hAngle
}

// VAngle returns the vertical angle in degrees.
func (c *OrbitCamera) VAngle() float32 {
	return c.vAngle
}

// Distance returns the distance from the target.
func (c *OrbitCamera) Distance() float32 {
	return c.distance
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	return c.position
}

// LookAt returns the point the camera looks at.
func (c *OrbitCamera) LookAt() mgl32.Vec3 {
	return Target
}

// Up returns the world up vector used to build the view basis.
func (c *OrbitCamera) Up() mgl32.Vec3 {
	return WorldUp
}

// Rotate adds to both angles. The vertical angle is clamped to ±RotatePitchLimit.
func (c *OrbitCamera) Rotate(deltaH, deltaV float32) {
	c.hAngle += deltaH
	c.vAngle = mgl32.Clamp(c.vAngle+deltaV, -RotatePitchLimit, RotatePitchLimit)
	c.update()
}

// Zoom moves the camera along its view ray, clamped to [MinDistance, MaxDistance].
func (c *OrbitCamera) Zoom(delta float32) {
	c.distance = mgl32.Clamp(c.distance+delta, MinDistance, MaxDistance)
	c.update()
}

// SetDistance jumps to an absolute distance, clamped like Zoom.
func (c *OrbitCamera) SetDistance(d float32) {
	c.distance = mgl32.Clamp(d, MinDistance, MaxDistance)
	c.update()
}

// SetAngles jumps to absolute angles. The vertical angle is clamped to ±SetPitchLimit.
func (c *OrbitCamera) SetAngles(h, v float32) {
	c.hAngle = h
	c.vAngle = mgl32.Clamp(v, -SetPitchLimit, SetPitchLimit)
	c.update()
}

// HandleDrag rotates by a mouse drag measured in pixels.
// Dragging right orbits right, dragging down raises the camera.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Rotate(deltaX*c.DragSensitivity, deltaY*c.DragSensitivity)
}

// HandleWheel zooms by scroll wheel notches; positive notches move closer.
func (c *OrbitCamera) HandleWheel(notches float32) {
	c.Zoom(-notches * c.ZoomStep)
}

// ApplyPreset jumps to a named viewpoint.
func (c *OrbitCamera) ApplyPreset(p Preset) {
	c.SetAngles(p.HAngle, p.VAngle)
}

// Reset restores the default viewpoint and distance.
func (c *OrbitCamera) Reset() {
	c.hAngle = DefaultHAngle
	c.vAngle = DefaultVAngle
	c.distance = DefaultDistance
	c.update()
}

func (c *OrbitCamera) update() {
	h := mgl32.DegToRad(c.hAngle)
	v := mgl32.DegToRad(c.vAngle)
	c.position = mgl32.Vec3{
		c.distance * math32.Cos(v) * math32.Cos(h),
		Target.Y() + c.distance*math32.Sin(v),
		c.distance * math32.Cos(v) * math32.Sin(h),
	}
}

// Preset is a named viewpoint.
type Preset struct {
	Name   string
	HAngle float32
	VAngle float32
}

// Built-in viewpoints.
var (
	PresetFront = Preset{Name: "front", HAngle: 20, VAngle: 10}
	PresetSide  = Preset{Name: "side", HAngle: 90, VAngle: 10}
	PresetTop   = Preset{Name: "top", HAngle: 45, VAngle: 70}
	PresetAngle = Preset{Name: "angle", HAngle: 45, VAngle: 20}
)

// Presets lists the built-in viewpoints in menu order.
var Presets = []Preset{PresetFront, PresetSide, PresetTop, PresetAngle}

// PresetByName looks up a built-in viewpoint, ignoring case.
func PresetByName(name string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown camera preset %q", name)
}
