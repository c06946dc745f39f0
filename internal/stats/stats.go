// Package stats summarizes HSL sample sets.
package stats

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/hslcloud/internal/engine/hsl"
)

// ErrNoSamples is returned when a histogram is requested for an empty set.
var ErrNoSamples = errors.New("stats: no samples")

// Summary describes a sample set. Hue is averaged on the circle, so 350°
// and 10° average to 0°, not 180°.
type Summary struct {
	Count int

	MeanHue float64 // degrees in [0, 360)
	MeanS   float64
	StdS    float64
	MeanL   float64
	StdL    float64
}

// Summarize computes a Summary. An empty set yields the zero Summary;
// standard deviations of a single sample are zero.
func Summarize(samples []hsl.Sample) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	hue := make([]float64, n)
	sat := make([]float64, n)
	light := make([]float64, n)
	for i, s := range samples {
		hue[i] = float64(s.H) * math.Pi / 180
		sat[i] = float64(s.S)
		light[i] = float64(s.L)
	}

	sum := Summary{
		Count:   n,
		MeanHue: wrapDegrees(stat.CircularMean(hue, nil) * 180 / math.Pi),
	}
	if n == 1 {
		sum.MeanS, sum.MeanL = sat[0], light[0]
		return sum
	}
	sum.MeanS, sum.StdS = stat.MeanStdDev(sat, nil)
	sum.MeanL, sum.StdL = stat.MeanStdDev(light, nil)
	return sum
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d hue=%.1f° s=%.3f±%.3f l=%.3f±%.3f",
		s.Count, s.MeanHue, s.MeanS, s.StdS, s.MeanL, s.StdL)
}

func wrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// HueValues returns the wrapped hues of samples for plotting.
func HueValues(samples []hsl.Sample) plotter.Values {
	v := make(plotter.Values, len(samples))
	for i, s := range samples {
		v[i] = wrapDegrees(float64(s.H))
	}
	return v
}

// SaveHueHistogram writes a PNG histogram of sample hues to path.
func SaveHueHistogram(samples []hsl.Sample, bins int, path string) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if bins <= 0 {
		bins = 36
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Hue distribution (%d samples)", len(samples))
	p.X.Label.Text = "Hue (degrees)"
	p.Y.Label.Text = "Samples"

	h, err := plotter.NewHist(HueValues(samples), bins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 230, G: 150, B: 110, A: 255}
	p.Add(h)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving histogram: %w", err)
	}
	return nil
}
