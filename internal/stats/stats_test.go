package stats

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hslcloud/internal/engine/hsl"
)

// hueDistance is the shortest angle between two hues in degrees.
func hueDistance(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	return math.Min(d, 360-d)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarizeSingle(t *testing.T) {
	got := Summarize([]hsl.Sample{{H: 25, S: 0.5, L: 0.75}})
	assert.Equal(t, 1, got.Count)
	assert.InDelta(t, 25, got.MeanHue, 1e-9)
	assert.Equal(t, 0.5, got.MeanS)
	assert.Equal(t, 0.75, got.MeanL)
	assert.Zero(t, got.StdS)
	assert.Zero(t, got.StdL)
}

func TestSummarize(t *testing.T) {
	got := Summarize([]hsl.Sample{
		{H: 10, S: 0.25, L: 0.5},
		{H: 30, S: 0.75, L: 0.5},
	})
	assert.Equal(t, 2, got.Count)
	assert.InDelta(t, 20, got.MeanHue, 1e-9)
	assert.InDelta(t, 0.5, got.MeanS, 1e-9)
	assert.InDelta(t, math.Sqrt(0.125), got.StdS, 1e-9)
	assert.InDelta(t, 0.5, got.MeanL, 1e-9)
	assert.InDelta(t, 0, got.StdL, 1e-9)
}

func TestSummarizeHueWrapsAroundZero(t *testing.T) {
	got := Summarize([]hsl.Sample{{H: 350}, {H: 10}, {H: 355}, {H: 5}})
	assert.Less(t, hueDistance(got.MeanHue, 0), 1e-6)
	assert.GreaterOrEqual(t, got.MeanHue, 0.0)
	assert.Less(t, got.MeanHue, 360.0)
}

func TestSummaryString(t *testing.T) {
	s := Summary{Count: 3, MeanHue: 20, MeanS: 0.5, StdS: 0.1, MeanL: 0.6, StdL: 0.2}
	assert.Equal(t, "n=3 hue=20.0° s=0.500±0.100 l=0.600±0.200", s.String())
}

func TestWrapDegrees(t *testing.T) {
	for in, want := range map[float64]float64{0: 0, 360: 0, -90: 270, 725: 5, 359.5: 359.5} {
		assert.InDelta(t, want, wrapDegrees(in), 1e-9, "wrap(%v)", in)
	}
}

func TestHueValues(t *testing.T) {
	got := HueValues([]hsl.Sample{{H: 370}, {H: -10}, {H: 20}})
	assert.InDeltaSlice(t, []float64{10, 350, 20}, []float64(got), 1e-4)
}

func TestSaveHueHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "hue.png")
	samples := []hsl.Sample{{H: 15}, {H: 18}, {H: 22}, {H: 22}, {H: 30}}

	require.NoError(t, SaveHueHistogram(samples, 10, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestSaveHueHistogramSingleValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hue.png")
	require.NoError(t, SaveHueHistogram([]hsl.Sample{{H: 20}, {H: 20}}, 0, path))
	assert.FileExists(t, path)
}

func TestSaveHueHistogramEmpty(t *testing.T) {
	err := SaveHueHistogram(nil, 10, filepath.Join(t.TempDir(), "hue.png"))
	assert.ErrorIs(t, err, ErrNoSamples)
}
