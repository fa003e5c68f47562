package contour

import (
	"image"
	"math"
)

// shoelaceArea returns the absolute area enclosed by the closed polygon, via
// the shoelace integral. Matches the area used for contour selection.
func shoelaceArea(pts []image.Point) float64 {
	if len(pts) < 3 {
		return 0
	}

	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += float64(pts[i].X)*float64(pts[j].Y) - float64(pts[j].X)*float64(pts[i].Y)
	}

	return math.Abs(sum) / 2
}

// closedPerimeter returns the length of the closed path through pts,
// including the implicit edge from the last point back to the first.
func closedPerimeter(pts []image.Point) float64 {
	if len(pts) < 2 {
		return 0
	}

	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		dx := float64(pts[j].X - pts[i].X)
		dy := float64(pts[j].Y - pts[i].Y)
		sum += math.Hypot(dx, dy)
	}

	return sum
}

// approxPolygon simplifies a closed boundary with the Douglas-Peucker
// algorithm. The curve is split at its anchor point and the point farthest
// from it, and each arc is simplified with the given tolerance; the result
// is the reduced vertex list in the original winding order.
func approxPolygon(pts []image.Point, epsilon float64) []image.Point {
	if len(pts) < 3 {
		out := make([]image.Point, len(pts))
		copy(out, pts)
		return out
	}

	// Farthest point from the first gives a stable split for closed curves.
	far := 0
	farDist := -1.0
	for i, p := range pts {
		d := sqDist(p, pts[0])
		if d > farDist {
			farDist = d
			far = i
		}
	}
	if far == 0 {
		// Degenerate: every point equals pts[0].
		return []image.Point{pts[0]}
	}

	first := douglasPeucker(pts[:far+1], epsilon)
	second := douglasPeucker(append(pts[far:], pts[0]), epsilon)

	// Drop the duplicated junction vertices when rejoining the halves.
	out := make([]image.Point, 0, len(first)+len(second)-2)
	out = append(out, first...)
	out = append(out, second[1:len(second)-1]...)
	return out
}

// douglasPeucker reduces an open polyline, keeping both endpoints.
func douglasPeucker(pts []image.Point, epsilon float64) []image.Point {
	if len(pts) < 3 {
		out := make([]image.Point, len(pts))
		copy(out, pts)
		return out
	}

	far := 0
	farDist := 0.0
	for i := 1; i < len(pts)-1; i++ {
		d := perpDist(pts[i], pts[0], pts[len(pts)-1])
		if d > farDist {
			farDist = d
			far = i
		}
	}

	if farDist <= epsilon {
		return []image.Point{pts[0], pts[len(pts)-1]}
	}

	left := douglasPeucker(pts[:far+1], epsilon)
	right := douglasPeucker(pts[far:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpDist is the perpendicular distance from p to the segment ab. When a
// and b coincide it degrades to the point distance.
func perpDist(p, a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)

	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Sqrt(sqDist(p, a))
	}

	return math.Abs(dx*float64(a.Y-p.Y)-float64(a.X-p.X)*dy) / length
}

func sqDist(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return dx*dx + dy*dy
}
