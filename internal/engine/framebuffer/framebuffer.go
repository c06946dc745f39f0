// Package framebuffer provides the CPU render target the rasterizer draws into.
package framebuffer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Framebuffer is a width×height grid of linear RGB colors in [0,1], stored
// row-major with (0,0) at the top-left.
type Framebuffer struct {
	pixels []mgl32.Vec3
	width  int
	height int
}

// New creates a framebuffer with the specified dimensions.
// Dimensions below 1 are raised to 1.
func New(width, height int) *Framebuffer {
	width = max(width, 1)
	height = max(height, 1)
	return &Framebuffer{
		pixels: make([]mgl32.Vec3, width*height),
		width:  width,
		height: height,
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Resize reallocates the pixel store if the dimensions changed.
// Contents are undefined until the next Clear.
func (fb *Framebuffer) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width = width
	fb.height = height
	fb.pixels = make([]mgl32.Vec3, width*height)
}

// Clear fills every pixel with c.
func (fb *Framebuffer) Clear(c mgl32.Vec3) {
	fb.ClearRows(0, fb.height, c)
}

// ClearRows fills rows [y0, y1) with c.
func (fb *Framebuffer) ClearRows(y0, y1 int, c mgl32.Vec3) {
	y0 = max(y0, 0)
	y1 = min(y1, fb.height)
	if y0 >= y1 {
		return
	}
	row := fb.pixels[y0*fb.width : y1*fb.width]
	for i := range row {
		row[i] = c
	}
}

// InBounds reports whether (x, y) is a valid pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

// Set writes c at (x, y). Out-of-bounds writes are ignored.
func (fb *Framebuffer) Set(x, y int, c mgl32.Vec3) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.pixels[y*fb.width+x] = c
}

// At returns the color at (x, y), or black when out of bounds.
func (fb *Framebuffer) At(x, y int) mgl32.Vec3 {
	if !fb.InBounds(x, y) {
		return mgl32.Vec3{}
	}
	return fb.pixels[y*fb.width+x]
}

// Pixels returns the backing store. Writes through it are visible to readers.
func (fb *Framebuffer) Pixels() []mgl32.Vec3 {
	return fb.pixels
}

// ToByte scales a channel value to 8 bits: v·255 clamped to [0,255], then
// truncated.
func ToByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v*255, 0, 255))
}

// ReadRGB returns the frame as height×width×3 bytes, row-major, top row first.
func (fb *Framebuffer) ReadRGB() []byte {
	out := make([]byte, len(fb.pixels)*3)
	for i, p := range fb.pixels {
		out[i*3+0] = ToByte(p[0])
		out[i*3+1] = ToByte(p[1])
		out[i*3+2] = ToByte(p[2])
	}
	return out
}

// ReadPixels returns the frame as opaque RGBA bytes, top row first.
func (fb *Framebuffer) ReadPixels() []byte {
	out := make([]byte, len(fb.pixels)*4)
	fb.readRGBAInto(out)
	return out
}

// Image converts the frame to an 8-bit RGBA image with opaque alpha.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.readRGBAInto(img.Pix)
	return img
}

func (fb *Framebuffer) readRGBAInto(dst []byte) {
	for i, p := range fb.pixels {
		dst[i*4+0] = ToByte(p[0])
		dst[i*4+1] = ToByte(p[1])
		dst[i*4+2] = ToByte(p[2])
		dst[i*4+3] = 0xff
	}
}
