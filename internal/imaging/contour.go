package imaging

import "math"

// Point is a pixel coordinate.
type Point struct{ X, Y int }

// Contour is the outer boundary of one connected foreground component,
// together with the labels of the pixels it encloses.
type Contour struct {
	Points []Point
	Area   float64 // enclosed polygon area (shoelace over boundary points)
	label  int32
}

// neighbor offsets in clockwise order: N, NE, E, SE, S, SW, W, NW.
var mooreDirs = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// FindExternalContours extracts the outer boundary of every 8-connected
// foreground component of a binary plane. Holes are not reported.
func FindExternalContours(plane []uint8, w, h int) []Contour {
	labels := make([]int32, w*h)
	var contours []Contour
	next := int32(1)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if plane[i] == 0 || labels[i] != 0 {
				continue
			}
			// First pixel of a new component in scan order: its N and W
			// neighbors are guaranteed background, so tracing can start
			// with a westward backtrack.
			pts := traceBoundary(plane, w, h, Point{x, y})
			floodLabel(plane, labels, w, h, Point{x, y}, next)
			contours = append(contours, Contour{
				Points: pts,
				Area:   shoelaceArea(pts),
				label:  next,
			})
			next++
		}
	}
	return contours
}

// traceBoundary walks the outer boundary of the component containing start
// using Moore-neighbor tracing with Jacob's stopping criterion.
func traceBoundary(plane []uint8, w, h int, start Point) []Point {
	at := func(p Point) bool {
		return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h && plane[p.Y*w+p.X] > 0
	}

	pts := []Point{start}
	backtrack := Point{start.X - 1, start.Y}
	initialBacktrack := backtrack
	cur := start

	maxSteps := 4 * (w*h + 1)
	for step := 0; step < maxSteps; step++ {
		// Direction index of the backtrack pixel relative to cur.
		var bi int
		for d, off := range mooreDirs {
			if cur.X+off.X == backtrack.X && cur.Y+off.Y == backtrack.Y {
				bi = d
				break
			}
		}
		found := false
		prev := backtrack
		for k := 1; k <= 8; k++ {
			d := (bi + k) % 8
			p := Point{cur.X + mooreDirs[d].X, cur.Y + mooreDirs[d].Y}
			if at(p) {
				backtrack = prev
				cur = p
				found = true
				break
			}
			prev = p
		}
		if !found {
			break // isolated single pixel
		}
		if cur == start && backtrack == initialBacktrack {
			break
		}
		pts = append(pts, cur)
	}
	return pts
}

// floodLabel marks every pixel of the 8-connected component containing start.
func floodLabel(plane []uint8, labels []int32, w, h int, start Point, label int32) {
	stack := []Point{start}
	labels[start.Y*w+start.X] = label
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, off := range mooreDirs {
			nx, ny := p.X+off.X, p.Y+off.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			i := ny*w + nx
			if plane[i] > 0 && labels[i] == 0 {
				labels[i] = label
				stack = append(stack, Point{nx, ny})
			}
		}
	}
}

// shoelaceArea computes the enclosed area of a pixel-boundary polygon.
func shoelaceArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += float64(pts[i].X)*float64(pts[j].Y) - float64(pts[j].X)*float64(pts[i].Y)
	}
	return math.Abs(sum) / 2
}

// LargestContourMask selects the contour with the largest enclosed area and
// rasterizes it as a filled mask (holes inside the boundary are filled). The
// returned area is the polygon area of the winning contour; a nil-area result
// with an all-false mask means no contour was found.
func LargestContourMask(plane []uint8, w, h int) (*Mask, float64) {
	contours := FindExternalContours(plane, w, h)
	mask := NewMask(w, h)
	if len(contours) == 0 {
		return mask, 0
	}

	best := contours[0]
	for _, c := range contours[1:] {
		if c.Area > best.Area {
			best = c
		}
	}

	// Re-label to isolate the winning component, then fill its holes by
	// flood-filling the background from the image border: anything the
	// border flood cannot reach is enclosed by the boundary.
	labels := make([]int32, w*h)
	floodLabel(plane, labels, w, h, best.Points[0], best.label)

	outside := make([]bool, w*h)
	var stack []Point
	for x := 0; x < w; x++ {
		for _, y := range [2]int{0, h - 1} {
			if labels[y*w+x] != best.label && !outside[y*w+x] {
				outside[y*w+x] = true
				stack = append(stack, Point{x, y})
			}
		}
	}
	for y := 0; y < h; y++ {
		for _, x := range [2]int{0, w - 1} {
			if labels[y*w+x] != best.label && !outside[y*w+x] {
				outside[y*w+x] = true
				stack = append(stack, Point{x, y})
			}
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, off := range [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := p.X+off.X, p.Y+off.Y
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			i := ny*w + nx
			if labels[i] != best.label && !outside[i] {
				outside[i] = true
				stack = append(stack, Point{nx, ny})
			}
		}
	}

	for i := range mask.Pix {
		mask.Pix[i] = !outside[i]
	}
	return mask, best.Area
}
