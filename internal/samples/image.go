package samples

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/Faultbox/hslcloud/internal/engine/hsl"
)

// Skin tones sit in a narrow band of warm hues.
const (
	SkinHueMin = 14.0
	SkinHueMax = 32.0
)

// Extract converts every selected pixel of img to an HSL sample in
// row-major order. A pixel is selected when its mask luminance is above
// 50%; a nil mask selects every pixel. Fully transparent pixels are skipped.
func Extract(img, mask image.Image) []hsl.Sample {
	b := img.Bounds()
	out := make([]hsl.Sample, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask != nil && !selected(mask, x-b.Min.X, y-b.Min.Y) {
				continue
			}
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			h, s, l := c.Hsl()
			out = append(out, hsl.Sample{H: float32(h), S: float32(s), L: float32(l)})
		}
	}
	return out
}

// selected reports whether the mask pixel at offset (dx, dy) from the mask
// origin is bright.
func selected(mask image.Image, dx, dy int) bool {
	mb := mask.Bounds()
	g := color.GrayModel.Convert(mask.At(mb.Min.X+dx, mb.Min.Y+dy)).(color.Gray)
	return g.Y > 127
}

// FilterHue keeps samples whose hue lies in [minDeg, maxDeg].
func FilterHue(samples []hsl.Sample, minDeg, maxDeg float32) []hsl.Sample {
	out := make([]hsl.Sample, 0, len(samples))
	for _, s := range samples {
		if s.H >= minDeg && s.H <= maxDeg {
			out = append(out, s)
		}
	}
	return out
}

// LoadImage decodes a photo and an optional mask (empty maskPath means no
// mask) and extracts the masked pixels. The mask must match the photo size.
func LoadImage(path, maskPath string) ([]hsl.Sample, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	var mask image.Image
	if maskPath != "" {
		mask, err = decodeFile(maskPath)
		if err != nil {
			return nil, err
		}
		if mask.Bounds().Size() != img.Bounds().Size() {
			return nil, fmt.Errorf("mask %s is %v, photo %s is %v",
				maskPath, mask.Bounds().Size(), path, img.Bounds().Size())
		}
	}

	return Extract(img, mask), nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
