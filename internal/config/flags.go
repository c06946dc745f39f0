package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Frame width in pixels")
	flagHeight    = flag.Int("height", 0, "Frame height in pixels")
	flagMaxPoints = flag.Int("max-points", 0, "Point capacity per cloud")
	flagWorkers   = flag.Int("workers", 0, "Render workers (0 keeps the configured value)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagMaxPoints > 0 {
		cfg.Render.MaxPoints = *flagMaxPoints
	}
	if *flagWorkers > 0 {
		cfg.Render.Workers = *flagWorkers
	}
}
