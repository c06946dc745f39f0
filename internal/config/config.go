// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Config holds all viewer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Window  WindowConfig  `yaml:"window"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds framebuffer and rasterizer settings.
type RenderConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	MaxPoints   int     `yaml:"max_points"`
	FOVDegrees  float32 `yaml:"fov_degrees"`
	Near        float32 `yaml:"near"`
	SplatRadius int     `yaml:"splat_radius"`
	Background  string  `yaml:"background"` // hex, e.g. "#1a1a1f"
	ColorA      string  `yaml:"color_a"`    // first cloud in comparison mode
	ColorB      string  `yaml:"color_b"`    // second cloud in comparison mode
	Workers     int     `yaml:"workers"`    // 0 = one per CPU
}

// CameraConfig holds the initial orbit and input sensitivity.
type CameraConfig struct {
	HAngle          float32 `yaml:"h_angle"`
	VAngle          float32 `yaml:"v_angle"`
	Distance        float32 `yaml:"distance"`
	DragSensitivity float32 `yaml:"drag_sensitivity"` // degrees per pixel
	ZoomStep        float32 `yaml:"zoom_step"`        // distance per wheel notch
}

// WindowConfig holds interactive window settings.
type WindowConfig struct {
	Title    string `yaml:"title"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"`
}

// DataConfig holds output paths.
type DataConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotPrefix string `yaml:"screenshot_prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:       800,
			Height:      600,
			MaxPoints:   50000,
			FOVDegrees:  45,
			Near:        0.1,
			SplatRadius: 2,
			Background:  "#1a1a1f",
			ColorA:      "#3399ff",
			ColorB:      "#ff7f33",
			Workers:     0,
		},
		Camera: CameraConfig{
			HAngle:          45,
			VAngle:          0,
			Distance:        3.5,
			DragSensitivity: 0.5,
			ZoomStep:        0.3,
		},
		Window: WindowConfig{
			Title:    "HSL Cloud",
			VSync:    true,
			FPSLimit: 60,
		},
		Data: DataConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotPrefix: "hslcloud",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.MaxPoints <= 0 {
		errs = append(errs, fmt.Errorf("max_points %d must be positive", c.Render.MaxPoints))
	}
	if c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("fov_degrees %g must be in (0, 180)", c.Render.FOVDegrees))
	}
	if c.Render.Near <= 0 {
		errs = append(errs, fmt.Errorf("near %g must be positive", c.Render.Near))
	}
	if c.Render.SplatRadius < 0 {
		errs = append(errs, fmt.Errorf("splat_radius %d must not be negative", c.Render.SplatRadius))
	}
	if c.Render.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Render.Workers))
	}
	for name, hex := range map[string]string{
		"background": c.Render.Background,
		"color_a":    c.Render.ColorA,
		"color_b":    c.Render.ColorB,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", name, hex, err))
		}
	}
	if c.Camera.ZoomStep < 0 {
		errs = append(errs, fmt.Errorf("zoom_step %g must not be negative", c.Camera.ZoomStep))
	}
	return errors.Join(errs...)
}

// BackgroundColor returns the clear color as linear 0..1 RGB.
func (r RenderConfig) BackgroundColor() mgl32.Vec3 {
	return hexColor(r.Background, mgl32.Vec3{0.1, 0.1, 0.12})
}

// TintA returns the uniform color of the first comparison cloud.
func (r RenderConfig) TintA() mgl32.Vec3 {
	return hexColor(r.ColorA, mgl32.Vec3{0.2, 0.6, 1.0})
}

// TintB returns the uniform color of the second comparison cloud.
func (r RenderConfig) TintB() mgl32.Vec3 {
	return hexColor(r.ColorB, mgl32.Vec3{1.0, 0.5, 0.2})
}

// hexColor parses s, falling back when it is not a valid hex color.
func hexColor(s string, fallback mgl32.Vec3) mgl32.Vec3 {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
