// Package main is the entry point for hslview, a viewer for HSL sample
// clouds inside the HSL cylinder.
//
// Usage:
//
//	hslview [flags] <samples.csv|photo.png> [compare.csv]
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/hslcloud/internal/config"
	"github.com/Faultbox/hslcloud/internal/engine/window"
	"github.com/Faultbox/hslcloud/internal/logger"
	"github.com/Faultbox/hslcloud/internal/samples"
	"github.com/Faultbox/hslcloud/internal/viewer"
)

var (
	flagMask        = flag.String("mask", "", "Mask image selecting photo pixels (white = keep)")
	flagSkinOnly    = flag.Bool("skin-only", false, "Keep only skin-tone hues")
	flagTinted      = flag.Bool("tinted", false, "Paint a single cloud in color A instead of its own colors")
	flagPreset      = flag.String("preset", "", "Camera preset: front, side, top or angle")
	flagHAngle      = flag.Float64("h-angle", 0, "Horizontal camera angle in degrees")
	flagVAngle      = flag.Float64("v-angle", 0, "Vertical camera angle in degrees")
	flagDistance    = flag.Float64("distance", 0, "Camera distance from the axis")
	flagOut         = flag.String("out", "", "Write the rendered frame to this PNG")
	flagHistogram   = flag.String("histogram", "", "Write a hue histogram to this PNG")
	flagBins        = flag.Int("bins", 36, "Hue histogram bins")
	flagInteractive = flag.Bool("interactive", false, "Open a window to orbit the cloud")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <samples.csv|photo.png> [compare.csv]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 || len(args) > 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("config: %+v", cfg)

	if err := run(cfg, args); err != nil {
		logger.Error("hslview failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string) error {
	v, err := viewer.New(cfg)
	if err != nil {
		return err
	}

	primary := samples.FromPath(args[0], *flagMask, *flagSkinOnly)
	var compare samples.Source
	if len(args) == 2 {
		compare = samples.FromPath(args[1], *flagMask, *flagSkinOnly)
	}
	if err := v.Load(primary, compare, *flagTinted); err != nil {
		return err
	}

	if err := applyView(v); err != nil {
		return err
	}

	if *flagHistogram != "" {
		if err := v.SaveHistogram(*flagHistogram, *flagBins); err != nil {
			return err
		}
	}

	if *flagOut != "" {
		if err := v.RenderTo(*flagOut); err != nil {
			return err
		}
	}

	if *flagInteractive {
		return interactive(cfg, v, strings.Join(args, " vs "))
	}
	if *flagOut == "" && *flagHistogram == "" {
		p, s := v.Summaries()
		fmt.Println(p)
		if s.Count > 0 {
			fmt.Println(s)
		}
	}
	return nil
}

// applyView applies camera flags. A preset is applied first so explicit
// angles override it.
func applyView(v *viewer.Viewer) error {
	sc := v.Scene()
	if *flagPreset != "" {
		if err := sc.ApplyPreset(*flagPreset); err != nil {
			return err
		}
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["h-angle"] || set["v-angle"] {
		h, vert := sc.Camera.HAngle(), sc.Camera.VAngle()
		if set["h-angle"] {
			h = float32(*flagHAngle)
		}
		if set["v-angle"] {
			vert = float32(*flagVAngle)
		}
		sc.SetAngles(h, vert)
	}
	if set["distance"] {
		sc.SetDistance(float32(*flagDistance))
	}
	return nil
}

func interactive(cfg *config.Config, v *viewer.Viewer, inputs string) error {
	win, err := window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	win.SetTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, inputs))
	// The window manager may not honor the requested size.
	v.Scene().Resize(win.GetSize())

	return v.Run(win)
}
