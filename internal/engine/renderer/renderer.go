// Package renderer rasterizes the reference guides and HSL point clouds into
// a framebuffer with a fixed-FOV perspective camera.
//
// A frame is drawn in strict stage order: clear, guides, primary cloud,
// secondary cloud. There is no depth buffer; a later write to a pixel
// replaces an earlier one, so later stages win over earlier ones and, within
// a stage, the later point in storage order wins.
package renderer

import (
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hslcloud/internal/engine/debug"
	"github.com/Faultbox/hslcloud/internal/engine/framebuffer"
	"github.com/Faultbox/hslcloud/internal/engine/pointcloud"
)

// Default projection and splat settings.
const (
	DefaultFOV         = 45.0
	DefaultNear        = 0.1
	DefaultSplatRadius = 2
)

// Camera supplies the view the frame is rendered from.
type Camera interface {
	Position() mgl32.Vec3
	LookAt() mgl32.Vec3
	Up() mgl32.Vec3
}

// Config holds renderer configuration.
type Config struct {
	FOV         float32 // vertical field of view, degrees
	Near        float32 // points with view depth <= Near are culled
	SplatRadius int     // cloud points cover (2r+1)² pixels
	Background  mgl32.Vec3
}

// DefaultConfig returns the default renderer configuration.
func DefaultConfig() Config {
	return Config{
		FOV:         DefaultFOV,
		Near:        DefaultNear,
		SplatRadius: DefaultSplatRadius,
		Background:  mgl32.Vec3{0.1, 0.1, 0.12},
	}
}

// Stats counts the points that landed on screen in the last frame.
type Stats struct {
	Guides    int
	Primary   int
	Secondary int
}

// Renderer draws frames. It is not safe for concurrent use; callers
// serialize state changes and Render calls.
type Renderer struct {
	backend *Backend
	config  Config

	// one projected entry per point, reused across frames
	scratch []projected
	stamp   []offset
	stats   Stats
}

type projected struct {
	x, y    int32
	visible bool
}

type offset struct{ dx, dy int }

// guideStamp thickens guide lines: the pixel, its right and its lower neighbor.
var guideStamp = []offset{{0, 0}, {1, 0}, {0, 1}}

// New creates a renderer running on backend.
func New(backend *Backend, cfg Config) *Renderer {
	if cfg.SplatRadius < 0 {
		cfg.SplatRadius = 0
	}
	return &Renderer{
		backend: backend,
		config:  cfg,
		scratch: make([]projected, debug.GuideCapacity),
		stamp:   squareStamp(cfg.SplatRadius),
	}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Reserve grows the projection scratch so frames with up to n points per
// stage do not allocate.
func (r *Renderer) Reserve(n int) {
	if len(r.scratch) < n {
		r.scratch = make([]projected, n)
	}
}

// Stats returns the counts from the last Render.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render overwrites fb with a frame of guides and cloud seen from cam.
// Either guides or cloud may be nil. Render never fails: points behind the
// near plane or outside the frame are skipped.
func (r *Renderer) Render(cam Camera, guides *debug.Guides, cloud *pointcloud.Buffer, fb *framebuffer.Framebuffer) {
	width, height := fb.Size()
	view := NewView(cam, width, height, r.config.FOV, r.config.Near)

	r.backend.parallel(height, func(y0, y1 int) {
		fb.ClearRows(y0, y1, r.config.Background)
	})

	r.stats = Stats{}
	if guides != nil {
		r.stats.Guides = r.drawGuides(view, guides, fb)
	}
	if cloud != nil {
		r.stats.Primary = r.drawSlot(view, &cloud.Primary, fb)
		if cloud.DualMode() {
			r.stats.Secondary = r.drawSlot(view, &cloud.Secondary, fb)
		}
	}
}

func (r *Renderer) drawGuides(view View, guides *debug.Guides, fb *framebuffer.Framebuffer) int {
	verts := guides.Valid()
	visible := r.project(view, len(verts), func(i int) mgl32.Vec3 {
		return verts[i].Position
	})
	r.splat(fb, len(verts), guideStamp, 1, func(i int) mgl32.Vec3 {
		return verts[i].Color
	})
	return visible
}

func (r *Renderer) drawSlot(view View, slot *pointcloud.Slot, fb *framebuffer.Framebuffer) int {
	n := slot.Len()
	visible := r.project(view, n, func(i int) mgl32.Vec3 {
		return slot.Positions[i]
	})

	rad := r.config.SplatRadius
	r.splat(fb, n, r.stamp, rad, func(i int) mgl32.Vec3 {
		return slot.Colors[i]
	})
	return visible
}

// project fills scratch[0:n) in parallel and returns the visible count.
func (r *Renderer) project(view View, n int, position func(i int) mgl32.Vec3) int {
	r.Reserve(n)

	var visible atomic.Int64
	r.backend.parallel(n, func(lo, hi int) {
		count := 0
		for i := lo; i < hi; i++ {
			px, py, ok := view.Project(position(i))
			r.scratch[i] = projected{x: int32(px), y: int32(py), visible: ok}
			if ok {
				count++
			}
		}
		visible.Add(int64(count))
	})
	return int(visible.Load())
}

// splat stamps the visible projected points into fb. The frame is split
// into row bands; each band walks the points in storage order and writes
// only its own rows.
func (r *Renderer) splat(fb *framebuffer.Framebuffer, n int, stamp []offset, reach int, color func(i int) mgl32.Vec3) {
	if n == 0 {
		return
	}
	points := r.scratch[:n]

	r.backend.parallel(fb.Height(), func(y0, y1 int) {
		for i, p := range points {
			if !p.visible {
				continue
			}
			cy := int(p.y)
			if cy+reach < y0 || cy-reach >= y1 {
				continue
			}
			c := color(i)
			for _, o := range stamp {
				y := cy + o.dy
				if y < y0 || y >= y1 {
					continue
				}
				fb.Set(int(p.x)+o.dx, y, c)
			}
		}
	})
}

func squareStamp(radius int) []offset {
	stamp := make([]offset, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			stamp = append(stamp, offset{dx, dy})
		}
	}
	return stamp
}

// View is the camera basis and projection for one frame.
type View struct {
	Eye, Right, Up, Forward mgl32.Vec3

	tanHalfFOV float32
	aspect     float32
	near       float32
	width      int
	height     int
}

// NewView builds the view basis from cam for a width×height target.
func NewView(cam Camera, width, height int, fovDeg, near float32) View {
	eye := cam.Position()
	forward := cam.LookAt().Sub(eye).Normalize()
	right := forward.Cross(cam.Up()).Normalize()
	up := right.Cross(forward)

	return View{
		Eye:        eye,
		Right:      right,
		Up:         up,
		Forward:    forward,
		tanHalfFOV: math32.Tan(mgl32.DegToRad(fovDeg) / 2),
		aspect:     float32(width) / float32(height),
		near:       near,
		width:      width,
		height:     height,
	}
}

// ToCamera transforms a world position into camera space (x right, y up,
// z along the view direction).
func (v View) ToCamera(p mgl32.Vec3) mgl32.Vec3 {
	rel := p.Sub(v.Eye)
	return mgl32.Vec3{rel.Dot(v.Right), rel.Dot(v.Up), rel.Dot(v.Forward)}
}

// Project maps a world position to pixel coordinates. ok is false when the
// point is no farther than the near plane or its pixel lies outside the
// frame.
func (v View) Project(p mgl32.Vec3) (px, py int, ok bool) {
	c := v.ToCamera(p)
	if c.Z() <= v.near {
		return 0, 0, false
	}

	sx := (c.X() / c.Z()) / v.tanHalfFOV / v.aspect
	sy := (c.Y() / c.Z()) / v.tanHalfFOV

	fx := (sx + 1) * 0.5 * float32(v.width)
	fy := (1 - sy) * 0.5 * float32(v.height)
	if fx <= -1 || fy <= -1 || fx >= float32(v.width) || fy >= float32(v.height) {
		return 0, 0, false
	}

	px, py = int(fx), int(fy)
	return px, py, px >= 0 && px < v.width && py >= 0 && py < v.height
}
