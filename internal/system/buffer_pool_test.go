package system

import (
	"image"
	"testing"
)

func TestGrayPoolRoundTrip(t *testing.T) {
	rect := image.Rect(0, 0, 64, 48)

	img := GetGray(rect)
	if img == nil || img.Bounds() != rect {
		t.Fatalf("GetGray returned %v, want bounds %v", img, rect)
	}

	img.Pix[0] = 0xAB
	PutGray(img)

	// A buffer handed back for the same rectangle may be the recycled one;
	// either way it must have the right dimensions.
	again := GetGray(rect)
	if again.Bounds() != rect {
		t.Errorf("recycled bounds = %v, want %v", again.Bounds(), rect)
	}

	other := GetGray(image.Rect(0, 0, 8, 8))
	if other.Bounds().Dx() != 8 {
		t.Errorf("pools must be keyed by rectangle, got %v", other.Bounds())
	}
}

func TestPutGrayNil(t *testing.T) {
	PutGray(nil) // must not panic
}
