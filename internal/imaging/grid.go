// Package imaging provides the low-level pixel operations the scan pipeline
// is built from: decoding, color-space conversion, filtering, thresholding
// and contour extraction. Everything operates on Grid, an 8-bit BGR image,
// and returns new values rather than mutating inputs.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
)

// Grid is an 8-bit, 3-channel image in blue-green-red channel order,
// stored row-major with interleaved channels.
type Grid struct {
	W, H int
	Pix  []uint8 // length W*H*3
}

// NewGrid allocates a zeroed grid of the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{W: g.W, H: g.H, Pix: make([]uint8, len(g.Pix))}
	copy(out.Pix, g.Pix)
	return out
}

// At returns the blue, green and red components at (x, y).
func (g *Grid) At(x, y int) (b, g2, r uint8) {
	i := (y*g.W + x) * 3
	return g.Pix[i], g.Pix[i+1], g.Pix[i+2]
}

// Set writes the blue, green and red components at (x, y).
func (g *Grid) Set(x, y int, b, g2, r uint8) {
	i := (y*g.W + x) * 3
	g.Pix[i] = b
	g.Pix[i+1] = g2
	g.Pix[i+2] = r
}

// FromImage converts a decoded standard-library image into a BGR grid.
func FromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewGrid(w, h)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, gr, b, _ := img.At(x, y).RGBA()
			out.Pix[i] = uint8(b >> 8)
			out.Pix[i+1] = uint8(gr >> 8)
			out.Pix[i+2] = uint8(r >> 8)
			i += 3
		}
	}
	return out
}

// ToImage converts the grid back into a standard-library RGBA image.
func (g *Grid) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			b, gr, r := g.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: gr, B: b, A: 255})
		}
	}
	return img
}

// EncodeJPEG re-encodes the grid as a JPEG byte stream. Used for the
// in-process content hash, not for integrity of the original upload.
func (g *Grid) EncodeJPEG() ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, g.ToImage(), &jpeg.Options{Quality: 95}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Mask is a binary image of the same dimensions as its source grid.
type Mask struct {
	W, H int
	Pix  []bool // length W*H
}

// NewMask allocates an all-false mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Pix: make([]bool, w*h)}
}

// At reports whether (x, y) is a foreground pixel.
func (m *Mask) At(x, y int) bool { return m.Pix[y*m.W+x] }

// Count returns the number of true pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}
