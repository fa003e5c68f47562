// Package measure reduces a detected contour set to a single geometric
// summary of the template outline: bounding box, enclosed area, perimeter
// and moment centroid.
package measure

import (
	"math"

	"github.com/ivlev/framescan/internal/contour"
)

// Measurement is the fixed-field summary of the representative contour.
// When HasCenter is false the centroid could not be computed (degenerate
// moments); CenterX/CenterY are zero and must be ignored.
type Measurement struct {
	Width     uint32
	Height    uint32
	CenterX   uint32
	CenterY   uint32
	Area      float64
	Perimeter float64
	HasCenter bool
}

// FromContours selects the representative outline from a contour set and
// measures it. A nil result means no contour existed; callers treat that as
// "no frame detected", never as an error. With multiple contours the one
// with the largest enclosed area wins; exact ties keep the first
// encountered, since areas are floating point and exact ties are
// measure-zero in practice.
func FromContours(contours []contour.Contour) *Measurement {
	if len(contours) == 0 {
		return nil
	}

	main := &contours[0]
	for i := 1; i < len(contours); i++ {
		if contours[i].Area > main.Area {
			main = &contours[i]
		}
	}

	m := &Measurement{
		Area:      main.Area,
		Perimeter: main.Perim,
	}

	minX, minY := main.Points[0].X, main.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range main.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	m.Width = uint32(maxX - minX + 1)
	m.Height = uint32(maxY - minY + 1)

	if cx, cy, ok := centroid(main); ok {
		m.CenterX = uint32(cx)
		m.CenterY = uint32(cy)
		m.HasCenter = true
	}

	return m
}

// centroid computes the polygon centroid from the first-order moments,
// (M10/M00, M01/M00) via Green's theorem over the closed boundary. A zero
// M00 (collinear or empty boundary) yields ok false instead of a division
// by zero.
func centroid(c *contour.Contour) (cx, cy float64, ok bool) {
	pts := c.Points
	if len(pts) < 3 {
		return 0, 0, false
	}

	var m00, m10, m01 float64
	for i := range pts {
		j := (i + 1) % len(pts)
		xi, yi := float64(pts[i].X), float64(pts[i].Y)
		xj, yj := float64(pts[j].X), float64(pts[j].Y)

		cross := xi*yj - xj*yi
		m00 += cross
		m10 += (xi + xj) * cross
		m01 += (yi + yj) * cross
	}

	if m00 == 0 {
		return 0, 0, false
	}

	cx = m10 / (3 * m00)
	cy = m01 / (3 * m00)
	return math.Floor(cx), math.Floor(cy), true
}
