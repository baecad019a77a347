package imaging

import "math"

// CLAHE applies contrast-limited adaptive histogram equalization to a single
// 8-bit plane using a grid of tilesX x tilesY tiles and bilinear blending of
// the per-tile mappings. clipLimit is the relative histogram clip factor.
func CLAHE(plane []uint8, w, h int, clipLimit float64, tilesX, tilesY int) []uint8 {
	tileW := (w + tilesX - 1) / tilesX
	tileH := (h + tilesY - 1) / tilesY

	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := minInt(x0+tileW, w), minInt(y0+tileH, h)
			luts[ty*tilesX+tx] = tileLUT(plane, w, x0, y0, x1, y1, clipLimit)
		}
	}

	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		// Position relative to tile centers.
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := clampInt(ty0+1, 0, tilesY-1)
		ty0 = clampInt(ty0, 0, tilesY-1)

		for x := 0; x < w; x++ {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := clampInt(tx0+1, 0, tilesX-1)
			tx0c := clampInt(tx0, 0, tilesX-1)

			v := plane[y*w+x]
			v00 := float64(luts[ty0*tilesX+tx0c][v])
			v01 := float64(luts[ty0*tilesX+tx1][v])
			v10 := float64(luts[ty1*tilesX+tx0c][v])
			v11 := float64(luts[ty1*tilesX+tx1][v])

			top := v00*(1-wx) + v01*wx
			bottom := v10*(1-wx) + v11*wx
			out[y*w+x] = clampU8(math.Round(top*(1-wy) + bottom*wy))
		}
	}
	return out
}

// tileLUT builds the clipped-histogram equalization mapping for one tile.
func tileLUT(plane []uint8, stride, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	area := (x1 - x0) * (y1 - y0)
	if area == 0 {
		var identity [256]uint8
		for i := range identity {
			identity[i] = uint8(i)
		}
		return identity
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[plane[y*stride+x]]++
		}
	}

	clip := int(clipLimit * float64(area) / 256.0)
	if clip < 1 {
		clip = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > clip {
			excess += hist[i] - clip
			hist[i] = clip
		}
	}
	// Redistribute the clipped excess evenly.
	per := excess / 256
	rem := excess % 256
	for i := range hist {
		hist[i] += per
		if i < rem {
			hist[i]++
		}
	}

	var lut [256]uint8
	scale := 255.0 / float64(area)
	cdf := 0
	for i := range hist {
		cdf += hist[i]
		lut[i] = clampU8(math.Round(float64(cdf) * scale))
	}
	return lut
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
