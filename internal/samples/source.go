package samples

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/hslcloud/internal/engine/hsl"
	"github.com/Faultbox/hslcloud/internal/logger"
)

// Source produces a set of samples.
type Source interface {
	Samples() ([]hsl.Sample, error)
	String() string
}

// CSVSource reads samples from a CSV file.
type CSVSource struct {
	Path string

	// SkinOnly keeps only hues in [SkinHueMin, SkinHueMax].
	SkinOnly bool
}

func (s CSVSource) Samples() ([]hsl.Sample, error) {
	out, err := LoadCSVFile(s.Path)
	if err != nil {
		return nil, err
	}
	loaded := len(out)
	if s.SkinOnly {
		out = FilterHue(out, SkinHueMin, SkinHueMax)
	}
	logger.Info("samples loaded",
		zap.String("source", s.Path),
		zap.Int("rows", loaded),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func (s CSVSource) String() string { return s.Path }

// ImageSource extracts samples from a photo, optionally through a mask.
type ImageSource struct {
	Path     string
	MaskPath string

	// SkinOnly keeps only hues in [SkinHueMin, SkinHueMax].
	SkinOnly bool
}

func (s ImageSource) Samples() ([]hsl.Sample, error) {
	out, err := LoadImage(s.Path, s.MaskPath)
	if err != nil {
		return nil, err
	}
	extracted := len(out)
	if s.SkinOnly {
		out = FilterHue(out, SkinHueMin, SkinHueMax)
	}
	logger.Info("samples extracted",
		zap.String("source", s.Path),
		zap.String("mask", s.MaskPath),
		zap.Int("pixels", extracted),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func (s ImageSource) String() string { return s.Path }

// FromPath picks a source by file extension: .csv and .txt are tables,
// anything else is decoded as an image.
func FromPath(path, maskPath string, skinOnly bool) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return CSVSource{Path: path, SkinOnly: skinOnly}
	default:
		return ImageSource{Path: path, MaskPath: maskPath, SkinOnly: skinOnly}
	}
}
