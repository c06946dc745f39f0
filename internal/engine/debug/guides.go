// Package debug provides the reference geometry drawn around a point cloud
// and screenshot export.
package debug

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// GuideCapacity is the fixed size of the guide vertex store.
const GuideCapacity = 2000

// GuideVertex is one reference point.
type GuideVertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Guides is the fixed reference geometry: the cylinder axis, the bottom and
// top rims, and radial spokes marking hue wedges. Only the first Count
// vertices are valid.
type Guides struct {
	Vertices [GuideCapacity]GuideVertex
	Count    int
}

// Guide colors.
var (
	axisColor        = mgl32.Vec3{0.5, 0.5, 0.5}
	rimColor         = mgl32.Vec3{0.3, 0.3, 0.3}
	wedgeEdgeColor   = mgl32.Vec3{0.8, 0.8, 0.2}
	wedgeMiddleColor = mgl32.Vec3{0.6, 0.6, 0.6}
	hueZeroColor     = mgl32.Vec3{1.0, 0.2, 0.2}
)

// BuildCylinderGuides generates the reference geometry. The result is
// deterministic and independent of any point cloud.
func BuildCylinderGuides() *Guides {
	g := &Guides{}

	// Vertical axis
	g.line(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, 50, axisColor)

	// Bottom and top rims
	g.circle(0, 60, rimColor)
	g.circle(1, 60, rimColor)

	// Hue wedge spokes
	g.spoke(15, 0, 20, wedgeEdgeColor)
	g.spoke(20, 0.5, 20, wedgeMiddleColor)
	g.spoke(25, 1, 20, wedgeEdgeColor)
	g.spoke(0, 0.5, 20, hueZeroColor)

	return g
}

// Valid returns the populated vertices.
func (g *Guides) Valid() []GuideVertex {
	return g.Vertices[:g.Count]
}

func (g *Guides) add(pos, color mgl32.Vec3) {
	if g.Count >= GuideCapacity {
		return
	}
	g.Vertices[g.Count] = GuideVertex{Position: pos, Color: color}
	g.Count++
}

// line places n points from a to b, both ends included.
func (g *Guides) line(a, b mgl32.Vec3, n int, color mgl32.Vec3) {
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n-1)
		g.add(a.Add(b.Sub(a).Mul(t)), color)
	}
}

// circle places n points evenly around the unit rim at height y.
func (g *Guides) circle(y float32, n int, color mgl32.Vec3) {
	for i := 0; i < n; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(n)
		g.add(mgl32.Vec3{math32.Cos(angle), y, math32.Sin(angle)}, color)
	}
}

// spoke places n points from the axis to the rim at the given hue angle.
func (g *Guides) spoke(angleDeg, y float32, n int, color mgl32.Vec3) {
	angle := mgl32.DegToRad(angleDeg)
	rim := mgl32.Vec3{math32.Cos(angle), y, math32.Sin(angle)}
	g.line(mgl32.Vec3{0, y, 0}, rim, n, color)
}
