// Package viewer implements the hslview application: loading sample sets
// into a scene, one-shot rendering and the interactive loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hslcloud/internal/config"
	"github.com/Faultbox/hslcloud/internal/engine/hsl"
	"github.com/Faultbox/hslcloud/internal/engine/input"
	"github.com/Faultbox/hslcloud/internal/engine/renderer"
	"github.com/Faultbox/hslcloud/internal/engine/scene"
	"github.com/Faultbox/hslcloud/internal/logger"
	"github.com/Faultbox/hslcloud/internal/samples"
	"github.com/Faultbox/hslcloud/internal/stats"
)

// Display shows frames and delivers input. window.Window implements it.
type Display interface {
	PollEvents(dst []input.Event) []input.Event
	Present(rgba []byte, width, height int) error
	Delay(ms uint32)
}

// Viewer is the application instance.
type Viewer struct {
	config     *config.Config
	scene      *scene.Scene
	controller *input.Controller

	primary   []hsl.Sample
	secondary []hsl.Sample
}

// SceneConfig converts the file configuration into scene settings.
func SceneConfig(cfg *config.Config) scene.Config {
	return scene.Config{
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
		MaxPoints: cfg.Render.MaxPoints,
		Render: renderer.Config{
			FOV:         cfg.Render.FOVDegrees,
			Near:        cfg.Render.Near,
			SplatRadius: cfg.Render.SplatRadius,
			Background:  cfg.Render.BackgroundColor(),
		},
		TintA:            cfg.Render.TintA(),
		TintB:            cfg.Render.TintB(),
		ScreenshotDir:    cfg.Data.ScreenshotDir,
		ScreenshotPrefix: cfg.Data.ScreenshotPrefix,
	}
}

// New creates a viewer with the camera placed as configured.
func New(cfg *config.Config) (*Viewer, error) {
	backend, err := renderer.Initialize(cfg.Render.Workers)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}

	sc := scene.New(backend, SceneConfig(cfg))
	sc.Camera.DragSensitivity = cfg.Camera.DragSensitivity
	sc.Camera.ZoomStep = cfg.Camera.ZoomStep
	sc.SetAngles(cfg.Camera.HAngle, cfg.Camera.VAngle)
	sc.SetDistance(cfg.Camera.Distance)

	logger.Info("viewer initialized",
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height),
		zap.Int("max_points", cfg.Render.MaxPoints),
		zap.Int("workers", backend.Workers()),
	)

	return &Viewer{
		config:     cfg,
		scene:      sc,
		controller: input.NewController(),
	}, nil
}

// Scene returns the scene being viewed.
func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

// Load reads the sample sets and puts them in the scene. With a nil
// compare source the primary cloud is shown in its own colors, or in
// color A when tinted is set; otherwise the two are compared.
func (v *Viewer) Load(primary, compare samples.Source, tinted bool) error {
	a, err := primary.Samples()
	if err != nil {
		return fmt.Errorf("loading %s: %w", primary, err)
	}
	logger.Info("primary cloud", zap.Stringer("summary", stats.Summarize(a)))

	v.primary, v.secondary = a, nil
	if compare == nil {
		if tinted {
			v.scene.SetPointCloudTinted(a)
		} else {
			v.scene.SetPointCloud(a)
		}
		return nil
	}

	b, err := compare.Samples()
	if err != nil {
		return fmt.Errorf("loading %s: %w", compare, err)
	}
	logger.Info("comparison cloud", zap.Stringer("summary", stats.Summarize(b)))

	v.secondary = b
	v.scene.SetComparison(a, b)
	return nil
}

// Summaries returns statistics of the loaded sets. The second is zero when
// nothing is being compared.
func (v *Viewer) Summaries() (primary, secondary stats.Summary) {
	return stats.Summarize(v.primary), stats.Summarize(v.secondary)
}

// RenderTo renders one frame and writes it to path as PNG.
func (v *Viewer) RenderTo(path string) error {
	v.scene.Render()
	return v.scene.SaveScreenshot(path)
}

// SaveHistogram writes a hue histogram of the primary set.
func (v *Viewer) SaveHistogram(path string, bins int) error {
	if err := stats.SaveHueHistogram(v.primary, bins, path); err != nil {
		return fmt.Errorf("hue histogram: %w", err)
	}
	logger.Info("histogram saved", zap.String("path", path))
	return nil
}

// Run drives the interactive loop until the display asks to quit.
func (v *Viewer) Run(d Display) error {
	var (
		events     []input.Event
		frame      []byte
		frameCount int
		fpsTimer   = time.Now()
	)

	var frameDelay uint32
	if v.config.Window.FPSLimit > 0 {
		frameDelay = uint32(1000 / v.config.Window.FPSLimit)
	}

	logger.Info("starting view loop")

	for {
		events = d.PollEvents(events[:0])
		res := v.controller.Apply(v.scene, events)
		if res.Quit {
			return nil
		}
		if res.Reset {
			v.scene.ResetCamera()
		}

		if v.scene.RenderIfDirty() || frame == nil {
			frame = v.scene.Framebuffer().ReadPixels()
		}

		if res.Screenshot {
			if _, err := v.scene.Capture(); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}

		width, height := v.scene.Framebuffer().Size()
		if err := d.Present(frame, width, height); err != nil {
			return fmt.Errorf("present: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameDelay > 0 {
			d.Delay(frameDelay)
		}
	}
}
