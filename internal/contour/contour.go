package contour

import (
	"image"

	"github.com/ivlev/framescan/internal/system"
)

// Contour is a closed polygonal boundary detected in an image. Points hold
// the full traced outer boundary in order; Approx is the simplified polygon
// used for the shape filter. The closing edge from the last point back to the
// first is implicit.
type Contour struct {
	Points []image.Point
	Approx []image.Point
	Area   float64
	Perim  float64
}

// Extractor finds frame-like outlines in a still image. The zero value is not
// usable; construct with NewExtractor.
type Extractor struct {
	MinArea     float64 // minimum enclosed area in px²
	MinVertices int     // accepted polygon vertex range, inclusive
	MaxVertices int
	Offset      int  // adaptive threshold offset above the local mean
	Invert      bool // foreground darker than surround (backlit rigs)
}

// NewExtractor creates an extractor with the stock detection settings:
// area above 1000 px² and 4 to 8 polygon vertices, the heuristic for
// roughly rectangular template outlines.
func NewExtractor() *Extractor {
	return &Extractor{
		MinArea:     1000,
		MinVertices: 4,
		MaxVertices: 8,
		Offset:      2,
	}
}

// Extract runs the full detection chain on img: grayscale reduction, 5×5
// Gaussian smoothing, adaptive local thresholding, morphological closing and
// opening, outer boundary tracing and polygon filtering. The result may be
// empty; an empty set means "no frame detected this cycle" and is a normal
// outcome, not an error. Extract retains no state between calls.
func (e *Extractor) Extract(img image.Image) []Contour {
	gray := toGrayscale(img)

	blurred := gaussianBlur5(gray)
	binary := adaptiveThreshold(blurred, adaptiveBlock, e.Offset, e.Invert)
	system.PutGray(blurred)

	// Closing fills pinholes in the outline band, opening drops speckle.
	cleaned := morphClose3(binary)
	system.PutGray(binary)
	opened := morphOpen3(cleaned)
	system.PutGray(cleaned)
	defer system.PutGray(opened)

	var accepted []Contour
	for _, boundary := range traceOuterBoundaries(opened) {
		perim := closedPerimeter(boundary)
		approx := approxPolygon(boundary, approxTolerance*perim)
		area := shoelaceArea(boundary)

		if area <= e.MinArea {
			continue
		}
		if len(approx) < e.MinVertices || len(approx) > e.MaxVertices {
			continue
		}

		accepted = append(accepted, Contour{
			Points: boundary,
			Approx: approx,
			Area:   area,
			Perim:  perim,
		})
	}

	return accepted
}

const (
	// adaptiveBlock is the side of the local mean window, in pixels.
	adaptiveBlock = 11
	// approxTolerance is the polygon approximation epsilon as a fraction
	// of the boundary perimeter.
	approxTolerance = 0.02
)
