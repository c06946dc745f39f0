package samples

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

const tgaHeaderSize = 18

// maxTGAPixels bounds the declared image size (64 megapixels).
const maxTGAPixels = 1 << 26

func init() {
	// TGA has no signature; match on an absent color map and a true-color type.
	image.RegisterFormat("tga", "?\x00\x02", decodeTGA, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGA, decodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	depth       int // bytes per pixel
	topToBottom bool
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var b [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return tgaHeader{}, fmt.Errorf("tga header: %w", err)
	}
	h := tgaHeader{
		idLength:    int(b[0]),
		imageType:   b[2],
		width:       int(b[12]) | int(b[13])<<8,
		height:      int(b[14]) | int(b[15])<<8,
		depth:       int(b[16]) / 8,
		topToBottom: b[17]&0x20 != 0,
	}
	switch {
	case b[1] != 0:
		return h, errors.New("tga: color-mapped images not supported")
	case h.imageType != tgaTrueColor && h.imageType != tgaTrueColorRLE:
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	case b[16] != 24 && b[16] != 32:
		return h, fmt.Errorf("tga: unsupported bit depth %d", b[16])
	case h.width*h.height > maxTGAPixels:
		return h, fmt.Errorf("tga: %dx%d image exceeds %d pixels", h.width, h.height, maxTGAPixels)
	}
	return h, nil
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// decodeTGA reads uncompressed and RLE true-color TGA images. Pixels are
// stored BGR(A); rows run bottom-up unless the descriptor says otherwise.
// The pixel buffer grows with the data actually read, so a truncated file
// fails without allocating its declared size.
func decodeTGA(r io.Reader) (image.Image, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := io.CopyN(io.Discard, r, int64(h.idLength)); err != nil {
		return nil, fmt.Errorf("tga id field: %w", err)
	}

	total := h.width * h.height
	pix := make([]byte, 0, 4*min(total, 1<<16))
	px := make([]byte, h.depth)

	put := func() {
		a := uint8(255)
		if h.depth == 4 {
			a = px[3]
		}
		pix = append(pix, px[2], px[1], px[0], a)
	}

	if h.imageType == tgaTrueColor {
		for i := 0; i < total; i++ {
			if _, err := io.ReadFull(r, px); err != nil {
				return nil, fmt.Errorf("tga pixel %d: %w", i, err)
			}
			put()
		}
	} else {
		var packet [1]byte
		for i := 0; i < total; {
			if _, err := io.ReadFull(r, packet[:]); err != nil {
				return nil, fmt.Errorf("tga packet at pixel %d: %w", i, err)
			}
			n := min(int(packet[0]&0x7f)+1, total-i)
			repeat := packet[0]&0x80 != 0
			for j := 0; j < n; j++ {
				if j == 0 || !repeat {
					if _, err := io.ReadFull(r, px); err != nil {
						return nil, fmt.Errorf("tga pixel %d: %w", i, err)
					}
				}
				put()
				i++
			}
		}
	}

	img := &image.NRGBA{
		Pix:    pix,
		Stride: 4 * h.width,
		Rect:   image.Rect(0, 0, h.width, h.height),
	}
	if !h.topToBottom {
		flipRows(img)
	}
	return img, nil
}

// flipRows mirrors img vertically in place.
func flipRows(img *image.NRGBA) {
	tmp := make([]byte, img.Stride)
	for top, bottom := 0, img.Rect.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : (top+1)*img.Stride]
		b := img.Pix[bottom*img.Stride : (bottom+1)*img.Stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
