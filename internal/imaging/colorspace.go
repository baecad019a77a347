package imaging

import "math"

// Gray converts the grid to an 8-bit grayscale plane using the standard
// luma weights (0.299 R + 0.587 G + 0.114 B).
func (g *Grid) Gray() []uint8 {
	out := make([]uint8, g.W*g.H)
	for i, j := 0, 0; i < len(g.Pix); i, j = i+3, j+1 {
		b := float64(g.Pix[i])
		gr := float64(g.Pix[i+1])
		r := float64(g.Pix[i+2])
		out[j] = uint8(math.Round(0.299*r + 0.587*gr + 0.114*b))
	}
	return out
}

// HSV converts the grid to three 8-bit planes: hue on the 0-179 scale,
// saturation and value on 0-255, matching the usual 8-bit HSV convention.
func (g *Grid) HSV() (h, s, v []uint8) {
	n := g.W * g.H
	h = make([]uint8, n)
	s = make([]uint8, n)
	v = make([]uint8, n)
	for i, j := 0, 0; i < len(g.Pix); i, j = i+3, j+1 {
		b := float64(g.Pix[i])
		gr := float64(g.Pix[i+1])
		r := float64(g.Pix[i+2])

		max := math.Max(r, math.Max(gr, b))
		min := math.Min(r, math.Min(gr, b))
		delta := max - min

		v[j] = uint8(max)
		if max > 0 {
			s[j] = uint8(math.Round(255 * delta / max))
		}

		var hue float64
		switch {
		case delta == 0:
			hue = 0
		case max == r:
			hue = 60 * (gr - b) / delta
		case max == gr:
			hue = 120 + 60*(b-r)/delta
		default:
			hue = 240 + 60*(r-gr)/delta
		}
		if hue < 0 {
			hue += 360
		}
		hv := int(math.Round(hue / 2))
		if hv > 179 {
			hv = 0
		}
		h[j] = uint8(hv)
	}
	return h, s, v
}

// labF is the CIE cube-root transfer function.
func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// Lab converts the grid to three 8-bit planes in the scaled CIE Lab space:
// L on 0-255 (L* scaled by 255/100), a and b offset by +128. D65 white point.
func (g *Grid) Lab() (l, a, bb []uint8) {
	n := g.W * g.H
	l = make([]uint8, n)
	a = make([]uint8, n)
	bb = make([]uint8, n)
	for i, j := 0, 0; i < len(g.Pix); i, j = i+3, j+1 {
		bf := float64(g.Pix[i]) / 255.0
		gf := float64(g.Pix[i+1]) / 255.0
		rf := float64(g.Pix[i+2]) / 255.0

		x := (0.412453*rf + 0.357580*gf + 0.180423*bf) / 0.950456
		y := 0.212671*rf + 0.715160*gf + 0.072169*bf
		z := (0.019334*rf + 0.119193*gf + 0.950227*bf) / 1.088754

		var lStar float64
		if y > 0.008856 {
			lStar = 116*math.Cbrt(y) - 16
		} else {
			lStar = 903.3 * y
		}
		aStar := 500 * (labF(x) - labF(y))
		bStar := 200 * (labF(y) - labF(z))

		l[j] = clampU8(math.Round(lStar * 255.0 / 100.0))
		a[j] = clampU8(math.Round(aStar + 128))
		bb[j] = clampU8(math.Round(bStar + 128))
	}
	return l, a, bb
}

// labInverseF inverts labF.
func labInverseF(t float64) float64 {
	t3 := t * t * t
	if t3 > 0.008856 {
		return t3
	}
	return (t - 16.0/116.0) / 7.787
}

// GridFromLab rebuilds a BGR grid from scaled 8-bit Lab planes. Inverse of
// Lab; used by the enhancer after equalizing the lightness channel.
func GridFromLab(w, h int, l, a, bb []uint8) *Grid {
	out := NewGrid(w, h)
	for j := 0; j < w*h; j++ {
		lStar := float64(l[j]) * 100.0 / 255.0
		aStar := float64(a[j]) - 128
		bStar := float64(bb[j]) - 128

		fy := (lStar + 16) / 116
		fx := fy + aStar/500
		fz := fy - bStar/200

		var y float64
		if lStar > 903.3*0.008856 {
			y = fy * fy * fy
		} else {
			y = lStar / 903.3
		}
		x := labInverseF(fx) * 0.950456
		z := labInverseF(fz) * 1.088754

		r := 3.240479*x - 1.537150*y - 0.498535*z
		gr := -0.969256*x + 1.875992*y + 0.041556*z
		b := 0.055648*x - 0.204043*y + 1.057311*z

		i := j * 3
		out.Pix[i] = clampU8(math.Round(b * 255))
		out.Pix[i+1] = clampU8(math.Round(gr * 255))
		out.Pix[i+2] = clampU8(math.Round(r * 255))
	}
	return out
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
