// Package profile derives the 1000-sample radial distance profile consumed
// by edgers: boundary distance from the template centroid at uniform angular
// steps, in tenths of a millimetre.
package profile

import (
	"image"
	"math"

	"github.com/ivlev/framescan/internal/contour"
	"github.com/ivlev/framescan/internal/measure"
)

const (
	// SampleCount is the fixed profile length. Index i corresponds to the
	// angle 2πi/SampleCount.
	SampleCount = 1000

	// MinRadius and MaxRadius bound every emitted sample, in 0.1 mm.
	MinRadius = 1500
	MaxRadius = 2700
)

// Calibration maps pixel distances to physical units.
type Calibration struct {
	// MMPerPixel is the physical width of one pixel at the template plane.
	MMPerPixel float64
}

// DefaultCalibration matches the stock capture rig.
var DefaultCalibration = Calibration{MMPerPixel: 0.25}

// Synthesize produces the radial profile for a measurement. Without a
// measurement or without a centroid the profile is empty, which is the
// normal "nothing detected" outcome.
//
// When the representative contour is available the profile is the true
// per-angle boundary distance: a ray cast from the centroid at each of the
// 1000 angles, intersected with the contour polygon. When only the
// measurement survives (decoded records, replayed captures) the legacy
// synthetic curve is used instead; see SynthesizeLegacy.
func Synthesize(m *measure.Measurement, c *contour.Contour, cal Calibration) []uint16 {
	if m == nil || !m.HasCenter {
		return nil
	}
	if c == nil || len(c.Points) < 3 {
		return SynthesizeLegacy(m)
	}

	center := point{x: float64(m.CenterX), y: float64(m.CenterY)}
	scale := cal.MMPerPixel * 10 // px → 0.1 mm

	radii := make([]uint16, SampleCount)
	for i := 0; i < SampleCount; i++ {
		theta := 2 * math.Pi * float64(i) / SampleCount
		dist := castRay(center, theta, c.Points)
		radii[i] = clampRadius(math.Round(dist * scale))
	}

	return radii
}

// SynthesizeLegacy reproduces the shape-agnostic sinusoidal curve emitted
// by first-generation rigs, r(θ) = 1550 + 100·sin 2θ + 50·cos 3θ. It
// ignores the measured geometry entirely and exists only to replay records
// for which no contour survives; new captures always go through the ray
// caster.
func SynthesizeLegacy(m *measure.Measurement) []uint16 {
	if m == nil || !m.HasCenter {
		return nil
	}

	radii := make([]uint16, SampleCount)
	for i := 0; i < SampleCount; i++ {
		theta := 2 * math.Pi * float64(i) / SampleCount
		r := 1550 + 100*math.Sin(2*theta) + 50*math.Cos(3*theta)
		radii[i] = clampRadius(math.Round(r))
	}

	return radii
}

type point struct{ x, y float64 }

// castRay returns the distance from origin to the farthest crossing of the
// closed polygon along direction theta, in pixels. The farthest crossing is
// the outer boundary when the centroid sits inside a band-shaped trace.
// Zero means the ray never crosses the polygon, which clamps to MinRadius
// downstream.
func castRay(origin point, theta float64, pts []image.Point) float64 {
	dx, dy := math.Cos(theta), math.Sin(theta)

	best := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		ax, ay := float64(pts[i].X), float64(pts[i].Y)
		bx, by := float64(pts[j].X), float64(pts[j].Y)

		// Solve origin + t·d = a + u·(b−a) for t ≥ 0, u ∈ [0,1].
		ex, ey := bx-ax, by-ay
		denom := dx*ey - dy*ex
		if denom == 0 {
			continue // parallel
		}

		t := ((ax-origin.x)*ey - (ay-origin.y)*ex) / denom
		var u float64
		if ex != 0 {
			u = (origin.x + t*dx - ax) / ex
		} else if ey != 0 {
			u = (origin.y + t*dy - ay) / ey
		} else {
			continue // zero-length edge
		}

		if t >= 0 && u >= 0 && u <= 1 && t > best {
			best = t
		}
	}

	return best
}

func clampRadius(r float64) uint16 {
	if r < MinRadius {
		return MinRadius
	}
	if r > MaxRadius {
		return MaxRadius
	}
	return uint16(r)
}
