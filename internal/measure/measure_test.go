package measure

import (
	"image"
	"testing"

	"github.com/ivlev/framescan/internal/contour"
)

func rectContour(x0, y0, x1, y1 int, area float64) contour.Contour {
	return contour.Contour{
		Points: []image.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}},
		Area:   area,
		Perim:  float64(2 * (x1 - x0 + y1 - y0)),
	}
}

func TestFromContoursEmpty(t *testing.T) {
	if m := FromContours(nil); m != nil {
		t.Errorf("empty contour set: want nil measurement, got %+v", m)
	}
}

func TestFromContoursRectangle(t *testing.T) {
	c := rectContour(10, 20, 109, 59, 3861)

	m := FromContours([]contour.Contour{c})
	if m == nil {
		t.Fatal("want a measurement, got nil")
	}

	if m.Width != 100 || m.Height != 40 {
		t.Errorf("bounding box = %dx%d, want 100x40", m.Width, m.Height)
	}
	if m.Area != 3861 {
		t.Errorf("area = %.1f, want 3861", m.Area)
	}
	if m.Perimeter != c.Perim {
		t.Errorf("perimeter = %.1f, want %.1f", m.Perimeter, c.Perim)
	}
	if !m.HasCenter {
		t.Fatal("want a centroid for a proper rectangle")
	}
	if m.CenterX != 59 || m.CenterY != 39 {
		t.Errorf("centroid = (%d,%d), want (59,39)", m.CenterX, m.CenterY)
	}
}

func TestFromContoursLargestWins(t *testing.T) {
	small := rectContour(0, 0, 10, 10, 100)
	large := rectContour(20, 20, 220, 120, 20000)

	m := FromContours([]contour.Contour{small, large})
	if m == nil {
		t.Fatal("want a measurement, got nil")
	}
	if m.Area != 20000 {
		t.Errorf("selected area = %.1f, want the larger 20000", m.Area)
	}
	if m.Width != 201 || m.Height != 101 {
		t.Errorf("bounding box = %dx%d, want 201x101", m.Width, m.Height)
	}
}

func TestFromContoursTieKeepsFirst(t *testing.T) {
	first := rectContour(0, 0, 50, 50, 2500)
	second := rectContour(100, 100, 150, 150, 2500)

	m := FromContours([]contour.Contour{first, second})
	if m == nil {
		t.Fatal("want a measurement, got nil")
	}
	// An exact tie keeps the first encountered.
	if m.CenterX != 25 || m.CenterY != 25 {
		t.Errorf("centroid = (%d,%d), want the first contour's (25,25)", m.CenterX, m.CenterY)
	}
}

func TestFromContoursDegenerateCentroid(t *testing.T) {
	// Collinear boundary: zero enclosed area, so the moment M00 vanishes.
	c := contour.Contour{
		Points: []image.Point{{X: 0, Y: 5}, {X: 5, Y: 5}, {X: 10, Y: 5}},
		Area:   0,
		Perim:  20,
	}

	m := FromContours([]contour.Contour{c})
	if m == nil {
		t.Fatal("a degenerate contour still yields a measurement")
	}
	if m.HasCenter {
		t.Error("collinear boundary must not report a centroid")
	}
	if m.Width != 11 || m.Height != 1 {
		t.Errorf("bounding box = %dx%d, want 11x1", m.Width, m.Height)
	}
}
