package contour

import "image"

// mooreDirs enumerates the 8-neighborhood clockwise starting west, with y
// growing downward.
var mooreDirs = [8]image.Point{
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
}

// traceOuterBoundaries finds every 8-connected foreground component in the
// binary image and returns the ordered outer boundary of each. Holes inside
// a component are never traced; callers that care about them do not exist in
// this pipeline.
func traceOuterBoundaries(binary *image.Gray) [][]image.Point {
	bounds := binary.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	visited := make([]bool, w*h)
	idx := func(p image.Point) int {
		return (p.Y-bounds.Min.Y)*w + (p.X - bounds.Min.X)
	}
	fg := func(p image.Point) bool {
		if p.X < bounds.Min.X || p.X >= bounds.Max.X || p.Y < bounds.Min.Y || p.Y >= bounds.Max.Y {
			return false
		}
		return binary.GrayAt(p.X, p.Y).Y > 128
	}

	var boundaries [][]image.Point

	// Row scan guarantees the first unvisited pixel of a component is its
	// topmost-leftmost one, the anchor the tracer requires.
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			start := image.Point{X: x, Y: y}
			if !fg(start) || visited[idx(start)] {
				continue
			}
			boundaries = append(boundaries, traceBoundary(start, fg))
			floodComponent(start, fg, visited, idx)
		}
	}

	return boundaries
}

// traceBoundary walks the outer boundary clockwise from the topmost-leftmost
// pixel of a component using Moore-neighbor tracing with Jacob's stopping
// criterion.
func traceBoundary(start image.Point, fg func(image.Point) bool) []image.Point {
	boundary := []image.Point{start}

	startBack := start.Add(mooreDirs[0]) // west neighbor, known background
	cur, back := start, startBack

	for steps := 0; ; steps++ {
		// Index of the backtrack direction around cur.
		d := back.Sub(cur)
		var from int
		for i, md := range mooreDirs {
			if md == d {
				from = i
				break
			}
		}

		next := cur
		found := false
		for k := 1; k <= 8; k++ {
			n := cur.Add(mooreDirs[(from+k)%8])
			if fg(n) {
				back = cur.Add(mooreDirs[(from+k-1)%8])
				next = n
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel.
			return boundary
		}

		if next == start && back == startBack {
			return boundary
		}
		cur = next
		boundary = append(boundary, cur)

		if steps > 4*1000*1000 {
			// Safety valve; a boundary longer than this means a bug,
			// not a bigger template.
			return boundary
		}
	}
}

// floodComponent marks every pixel 8-connected to start as visited.
func floodComponent(start image.Point, fg func(image.Point) bool, visited []bool, idx func(image.Point) int) {
	stack := []image.Point{start}
	visited[idx(start)] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range mooreDirs {
			n := p.Add(d)
			if !fg(n) || visited[idx(n)] {
				continue
			}
			visited[idx(n)] = true
			stack = append(stack, n)
		}
	}
}
