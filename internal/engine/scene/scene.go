// Package scene ties the camera, reference guides, point clouds and
// framebuffer together behind one object that renders and exports frames.
package scene

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/hslcloud/internal/engine/camera"
	"github.com/Faultbox/hslcloud/internal/engine/debug"
	"github.com/Faultbox/hslcloud/internal/engine/framebuffer"
	"github.com/Faultbox/hslcloud/internal/engine/hsl"
	"github.com/Faultbox/hslcloud/internal/engine/pointcloud"
	"github.com/Faultbox/hslcloud/internal/engine/renderer"
	"github.com/Faultbox/hslcloud/internal/logger"
)

// Config contains scene configuration options.
type Config struct {
	Width     int
	Height    int
	MaxPoints int

	Render renderer.Config

	// Comparison tints
	TintA mgl32.Vec3
	TintB mgl32.Vec3

	ScreenshotDir    string
	ScreenshotPrefix string
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:            800,
		Height:           600,
		MaxPoints:        pointcloud.DefaultMaxPoints,
		Render:           renderer.DefaultConfig(),
		TintA:            mgl32.Vec3{0.2, 0.6, 1.0},
		TintB:            mgl32.Vec3{1.0, 0.5, 0.2},
		ScreenshotDir:    "screenshots",
		ScreenshotPrefix: "hslcloud",
	}
}

// Scene owns all render state. Mutators mark the scene dirty; nothing is
// drawn until Render is called. A Scene is not safe for concurrent use.
type Scene struct {
	config Config

	Camera *camera.OrbitCamera

	guides      *debug.Guides
	cloud       *pointcloud.Buffer
	framebuffer *framebuffer.Framebuffer
	renderer    *renderer.Renderer
	screenshots *debug.ScreenshotCapture

	dirty bool
}

// New creates a scene rendering on backend.
func New(backend *renderer.Backend, cfg Config) *Scene {
	cloud := pointcloud.New(cfg.MaxPoints)
	cloud.Tint = cfg.TintA

	r := renderer.New(backend, cfg.Render)
	r.Reserve(cloud.Capacity())

	return &Scene{
		config:      cfg,
		Camera:      camera.NewOrbitCamera(),
		guides:      debug.BuildCylinderGuides(),
		cloud:       cloud,
		framebuffer: framebuffer.New(cfg.Width, cfg.Height),
		renderer:    r,
		screenshots: debug.NewScreenshotCapture(cfg.ScreenshotDir, cfg.ScreenshotPrefix),
		dirty:       true,
	}
}

// SetPointCloud shows one cloud with every point in its own HSL color.
func (s *Scene) SetPointCloud(samples []hsl.Sample) {
	s.cloud.SetPrimary(samples, pointcloud.ColorModeHSL)
	s.dirty = true
}

// SetPointCloudTinted shows one cloud painted with TintA.
func (s *Scene) SetPointCloudTinted(samples []hsl.Sample) {
	s.cloud.SetPrimary(samples, pointcloud.ColorModeUniform)
	s.dirty = true
}

// SetComparison shows two clouds, a in TintA and b in TintB. b is drawn
// over a where they overlap.
func (s *Scene) SetComparison(a, b []hsl.Sample) {
	s.cloud.SetDual(a, b, s.config.TintA, s.config.TintB)
	s.dirty = true
}

// ClearPoints removes all points, leaving only the guides.
func (s *Scene) ClearPoints() {
	s.cloud.Clear()
	s.dirty = true
}

// Rotate orbits the camera by angle deltas in degrees.
func (s *Scene) Rotate(deltaH, deltaV float32) {
	s.Camera.Rotate(deltaH, deltaV)
	s.dirty = true
}

// Zoom moves the camera toward (negative) or away from the axis.
func (s *Scene) Zoom(delta float32) {
	s.Camera.Zoom(delta)
	s.dirty = true
}

// SetAngles jumps the camera to absolute angles.
func (s *Scene) SetAngles(h, v float32) {
	s.Camera.SetAngles(h, v)
	s.dirty = true
}

// SetDistance jumps the camera to an absolute distance.
func (s *Scene) SetDistance(d float32) {
	s.Camera.SetDistance(d)
	s.dirty = true
}

// HandleDrag applies a mouse drag in pixels.
func (s *Scene) HandleDrag(dx, dy float32) {
	s.Camera.HandleDrag(dx, dy)
	s.dirty = true
}

// HandleWheel applies scroll wheel notches.
func (s *Scene) HandleWheel(notches float32) {
	s.Camera.HandleWheel(notches)
	s.dirty = true
}

// ResetCamera restores the default viewpoint.
func (s *Scene) ResetCamera() {
	s.Camera.Reset()
	s.dirty = true
}

// ApplyPreset jumps to a named camera preset.
func (s *Scene) ApplyPreset(name string) error {
	p, err := camera.PresetByName(name)
	if err != nil {
		return err
	}
	s.Camera.ApplyPreset(p)
	s.dirty = true
	return nil
}

// Resize changes the framebuffer size.
func (s *Scene) Resize(width, height int) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
	s.dirty = true
}

// Render draws a frame into the framebuffer.
func (s *Scene) Render() {
	start := time.Now()
	s.renderer.Render(s.Camera, s.guides, s.cloud, s.framebuffer)
	s.dirty = false

	stats := s.renderer.Stats()
	logger.Debug("frame rendered",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("guides", stats.Guides),
		zap.Int("primary", stats.Primary),
		zap.Int("secondary", stats.Secondary),
	)
}

// RenderIfDirty renders only when state changed since the last frame and
// reports whether it did.
func (s *Scene) RenderIfDirty() bool {
	if !s.dirty {
		return false
	}
	s.Render()
	return true
}

// Dirty reports whether the framebuffer is stale.
func (s *Scene) Dirty() bool {
	return s.dirty
}

// Stats returns the on-screen point counts of the last frame.
func (s *Scene) Stats() renderer.Stats {
	return s.renderer.Stats()
}

// Cloud returns the point-cloud buffer.
func (s *Scene) Cloud() *pointcloud.Buffer {
	return s.cloud
}

// Framebuffer returns the render target.
func (s *Scene) Framebuffer() *framebuffer.Framebuffer {
	return s.framebuffer
}

// Image returns the last frame as 8-bit RGBA.
func (s *Scene) Image() *image.RGBA {
	return s.framebuffer.Image()
}

// ReadRGB returns the last frame as tightly packed 8-bit RGB rows.
func (s *Scene) ReadRGB() []byte {
	return s.framebuffer.ReadRGB()
}

// SaveScreenshot writes the last frame to path as PNG.
func (s *Scene) SaveScreenshot(path string) error {
	if err := debug.SavePNG(path, s.Image()); err != nil {
		return fmt.Errorf("saving screenshot: %w", err)
	}
	logger.Info("screenshot saved", zap.String("path", path))
	return nil
}

// Capture writes the last frame to a timestamped file in the screenshot
// directory and returns its path.
func (s *Scene) Capture() (string, error) {
	path, err := s.screenshots.Capture(s.Image())
	if err != nil {
		return "", fmt.Errorf("capturing screenshot: %w", err)
	}
	logger.Info("screenshot saved", zap.String("path", path))
	return path, nil
}
