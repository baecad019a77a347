package imaging

import (
	"github.com/nfnt/resize"
)

// Tensor is a normalized model input: Size x Size pixels, three channels in
// BGR order, values scaled to [0, 1].
type Tensor struct {
	Size int
	Data []float32 // length Size*Size*3
}

// ResizeForModel resizes the grid to a fixed square and scales pixel values
// to [0, 1], producing the classifier's input tensor.
func ResizeForModel(g *Grid, size int) *Tensor {
	resized := resize.Resize(uint(size), uint(size), g.ToImage(), resize.Bilinear)
	small := FromImage(resized)

	data := make([]float32, len(small.Pix))
	for i, v := range small.Pix {
		data[i] = float32(v) / 255.0
	}
	return &Tensor{Size: size, Data: data}
}
