package imaging

// OtsuThreshold picks the threshold that maximizes the between-class variance
// of the plane's 256-bin histogram.
func OtsuThreshold(plane []uint8) uint8 {
	var hist [256]float64
	for _, v := range plane {
		hist[v]++
	}
	total := float64(len(plane))
	if total == 0 {
		return 0
	}

	sumAll := 0.0
	for i := 0; i < 256; i++ {
		sumAll += float64(i) * hist[i]
	}

	var best float64
	var threshold uint8
	sumB, wB := 0.0, 0.0
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * hist[t]
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(t)
		}
	}
	return threshold
}

// BinarizeOtsu thresholds the plane with Otsu's method: values above the
// threshold become 255, everything else 0. A uniform plane has no separating
// threshold and degrades to all-background.
func BinarizeOtsu(plane []uint8) []uint8 {
	out := make([]uint8, len(plane))
	if len(plane) == 0 {
		return out
	}
	uniform := true
	for _, v := range plane {
		if v != plane[0] {
			uniform = false
			break
		}
	}
	if uniform {
		return out
	}
	t := OtsuThreshold(plane)
	for i, v := range plane {
		if v > t {
			out[i] = 255
		}
	}
	return out
}

// Dilate grows foreground regions of a binary plane with a square structuring
// element of the given odd size.
func Dilate(plane []uint8, w, h, size int) []uint8 {
	r := size / 2
	out := make([]uint8, len(plane))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var max uint8
			for dy := -r; dy <= r && max < 255; dy++ {
				sy := y + dy
				if sy < 0 || sy >= h {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					sx := x + dx
					if sx < 0 || sx >= w {
						continue
					}
					if plane[sy*w+sx] > max {
						max = plane[sy*w+sx]
						if max == 255 {
							break
						}
					}
				}
			}
			out[y*w+x] = max
		}
	}
	return out
}

// Erode shrinks foreground regions of a binary plane with a square
// structuring element of the given odd size.
func Erode(plane []uint8, w, h, size int) []uint8 {
	r := size / 2
	out := make([]uint8, len(plane))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			min := uint8(255)
			for dy := -r; dy <= r && min > 0; dy++ {
				sy := y + dy
				if sy < 0 || sy >= h {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					sx := x + dx
					if sx < 0 || sx >= w {
						continue
					}
					if plane[sy*w+sx] < min {
						min = plane[sy*w+sx]
						if min == 0 {
							break
						}
					}
				}
			}
			out[y*w+x] = min
		}
	}
	return out
}

// MorphClose merges nearby foreground fragments: dilation then erosion, each
// applied the given number of times.
func MorphClose(plane []uint8, w, h, size, iterations int) []uint8 {
	out := plane
	for i := 0; i < iterations; i++ {
		out = Dilate(out, w, h, size)
	}
	for i := 0; i < iterations; i++ {
		out = Erode(out, w, h, size)
	}
	return out
}

// MorphOpen removes speckle noise: erosion then dilation, each applied the
// given number of times.
func MorphOpen(plane []uint8, w, h, size, iterations int) []uint8 {
	out := plane
	for i := 0; i < iterations; i++ {
		out = Erode(out, w, h, size)
	}
	for i := 0; i < iterations; i++ {
		out = Dilate(out, w, h, size)
	}
	return out
}
