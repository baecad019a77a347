package imaging

import "math"

// reflect101 mirrors an out-of-range coordinate back into [0, n) without
// repeating the border pixel.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// AddWeighted returns round(alpha*a + beta*b) per pixel, saturated to 8 bits.
// Both planes must have the same length.
func AddWeighted(a []uint8, alpha float64, b []uint8, beta float64) []uint8 {
	out := make([]uint8, len(a))
	for i := range a {
		out[i] = clampU8(math.Round(alpha*float64(a[i]) + beta*float64(b[i])))
	}
	return out
}

// gaussianKernel1D builds a normalized 1D Gaussian kernel of the given odd
// size. A non-positive sigma picks the conventional size-derived sigma.
func gaussianKernel1D(size int, sigma float64) []float64 {
	if sigma <= 0 {
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}
	k := make([]float64, size)
	mid := size / 2
	sum := 0.0
	for i := range k {
		d := float64(i - mid)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// GaussianBlur applies a separable Gaussian blur with an odd kernel size to a
// single 8-bit plane. Borders are mirrored (reflect-101).
func GaussianBlur(plane []uint8, w, h, size int) []uint8 {
	kernel := gaussianKernel1D(size, 0)
	mid := size / 2

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k := -mid; k <= mid; k++ {
				sum += kernel[k+mid] * float64(plane[y*w+reflect101(x+k, w)])
			}
			tmp[y*w+x] = sum
		}
	}
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k := -mid; k <= mid; k++ {
				sum += kernel[k+mid] * tmp[reflect101(y+k, h)*w+x]
			}
			out[y*w+x] = clampU8(math.Round(sum))
		}
	}
	return out
}

// Convolve3x3 convolves each channel of the grid with a 3x3 kernel,
// saturating the result to 8 bits. Borders are mirrored (reflect-101).
func Convolve3x3(g *Grid, kernel [9]float64) *Grid {
	out := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var acc [3]float64
			ki := 0
			for dy := -1; dy <= 1; dy++ {
				sy := reflect101(y+dy, g.H)
				for dx := -1; dx <= 1; dx++ {
					sx := reflect101(x+dx, g.W)
					i := (sy*g.W + sx) * 3
					kv := kernel[ki]
					acc[0] += kv * float64(g.Pix[i])
					acc[1] += kv * float64(g.Pix[i+1])
					acc[2] += kv * float64(g.Pix[i+2])
					ki++
				}
			}
			o := (y*g.W + x) * 3
			out.Pix[o] = clampU8(math.Round(acc[0]))
			out.Pix[o+1] = clampU8(math.Round(acc[1]))
			out.Pix[o+2] = clampU8(math.Round(acc[2]))
		}
	}
	return out
}

// BilateralFilter applies an edge-preserving smoothing filter with the given
// pixel neighborhood diameter and color/space sigmas. Range weights use the
// L1 distance across the three channels.
func BilateralFilter(g *Grid, diameter int, sigmaColor, sigmaSpace float64) *Grid {
	radius := diameter / 2
	gaussColor := -0.5 / (sigmaColor * sigmaColor)
	gaussSpace := -0.5 / (sigmaSpace * sigmaSpace)

	// Precompute the range weight for every possible L1 color distance.
	colorWeight := make([]float64, 256*3)
	for i := range colorWeight {
		colorWeight[i] = math.Exp(float64(i*i) * gaussColor)
	}
	spaceWeight := make([]float64, 0, diameter*diameter)
	offsets := make([][2]int, 0, diameter*diameter)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			if d2 > float64(radius*radius) {
				continue
			}
			spaceWeight = append(spaceWeight, math.Exp(d2*gaussSpace))
			offsets = append(offsets, [2]int{dx, dy})
		}
	}

	out := NewGrid(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			ci := (y*g.W + x) * 3
			cb := int(g.Pix[ci])
			cg := int(g.Pix[ci+1])
			cr := int(g.Pix[ci+2])

			var wsum, bsum, gsum, rsum float64
			for k, off := range offsets {
				sx, sy := x+off[0], y+off[1]
				if sx < 0 || sx >= g.W || sy < 0 || sy >= g.H {
					continue
				}
				si := (sy*g.W + sx) * 3
				sb := int(g.Pix[si])
				sg := int(g.Pix[si+1])
				sr := int(g.Pix[si+2])
				diff := absInt(sb-cb) + absInt(sg-cg) + absInt(sr-cr)
				wt := spaceWeight[k] * colorWeight[diff]
				wsum += wt
				bsum += wt * float64(sb)
				gsum += wt * float64(sg)
				rsum += wt * float64(sr)
			}
			out.Pix[ci] = clampU8(math.Round(bsum / wsum))
			out.Pix[ci+1] = clampU8(math.Round(gsum / wsum))
			out.Pix[ci+2] = clampU8(math.Round(rsum / wsum))
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
