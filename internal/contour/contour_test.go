package contour

import (
	"image"
	"image/color"
	"testing"
)

// fillRect paints a solid rectangle, bounds inclusive of min, exclusive of
// max, like the capture fixtures in the rest of the tests.
func fillRect(img *image.Gray, x0, y0, x1, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func TestExtractRectangleOutline(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	fillRect(img, 0, 0, 200, 200, 0)
	fillRect(img, 50, 50, 150, 150, 255)

	extractor := NewExtractor()
	contours := extractor.Extract(img)

	if len(contours) == 0 {
		t.Fatal("expected at least one contour, got none")
	}

	c := contours[0]
	t.Logf("contour: %d boundary points, %d approx vertices, area %.1f, perimeter %.1f",
		len(c.Points), len(c.Approx), c.Area, c.Perim)

	if c.Area < 9000 || c.Area > 10500 {
		t.Errorf("enclosed area = %.1f, want ≈ 9800", c.Area)
	}
	if len(c.Approx) != 4 {
		t.Errorf("approx vertices = %d, want 4 for a rectangle", len(c.Approx))
	}
	if c.Perim < 380 || c.Perim > 420 {
		t.Errorf("perimeter = %.1f, want ≈ 396", c.Perim)
	}

	// The traced outline must hug the drawn rectangle.
	minX, minY := c.Points[0].X, c.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range c.Points {
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
	if minX < 48 || minX > 52 || maxX < 147 || maxX > 151 {
		t.Errorf("outline x span [%d,%d], want ≈ [50,149]", minX, maxX)
	}
	if minY < 48 || minY > 52 || maxY < 147 || maxY > 151 {
		t.Errorf("outline y span [%d,%d], want ≈ [50,149]", minY, maxY)
	}
}

func TestExtractUniformFrames(t *testing.T) {
	tests := []struct {
		name  string
		shade uint8
	}{
		{"all black", 0},
		{"all white", 255},
		{"flat gray", 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewGray(image.Rect(0, 0, 120, 120))
			fillRect(img, 0, 0, 120, 120, tt.shade)

			contours := NewExtractor().Extract(img)
			if len(contours) != 0 {
				t.Errorf("expected no contours on a uniform frame, got %d", len(contours))
			}
		})
	}
}

func TestExtractMinAreaFilter(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	fillRect(img, 45, 45, 55, 55, 255) // ~81 px² enclosed, below the default 1000

	contours := NewExtractor().Extract(img)
	if len(contours) != 0 {
		t.Errorf("expected the small blob to be filtered, got %d contours", len(contours))
	}
}

func TestExtractVertexFilterRejectsCross(t *testing.T) {
	// A cross has 12 corners, well past the 4–8 range for frame-like
	// outlines.
	img := image.NewGray(image.Rect(0, 0, 300, 300))
	fillRect(img, 30, 120, 270, 180, 255)
	fillRect(img, 120, 30, 180, 270, 255)

	contours := NewExtractor().Extract(img)
	if len(contours) != 0 {
		for _, c := range contours {
			t.Logf("accepted contour: %d approx vertices, area %.1f", len(c.Approx), c.Area)
		}
		t.Errorf("expected the cross to be rejected, got %d contours", len(contours))
	}
}

func TestExtractInvertedPolarity(t *testing.T) {
	// Backlit rig: dark template on a bright table.
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	fillRect(img, 0, 0, 200, 200, 255)
	fillRect(img, 50, 50, 150, 150, 0)

	inverted := NewExtractor()
	inverted.Invert = true
	contours := inverted.Extract(img)
	if len(contours) == 0 {
		t.Fatal("inverted settings: expected the dark template outline, got none")
	}

	c := contours[0]
	if got := len(c.Approx); got != 4 {
		t.Errorf("approx vertices = %d, want 4", got)
	}
	// Inversion traces the template itself, not the bright halo around it,
	// so the enclosed area stays that of the drawn square.
	if c.Area < 9000 || c.Area > 10500 {
		t.Errorf("enclosed area = %.1f, want ≈ 9800", c.Area)
	}
}

func TestExtractIsStateless(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	fillRect(img, 50, 50, 150, 150, 255)

	extractor := NewExtractor()
	first := extractor.Extract(img)
	second := extractor.Extract(img)

	if len(first) != len(second) {
		t.Fatalf("contour count changed between calls: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Area != second[i].Area || len(first[i].Points) != len(second[i].Points) {
			t.Errorf("contour %d differs between identical calls", i)
		}
	}
}
