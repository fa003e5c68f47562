// Package scan ties the detection pipeline together: image in, immutable
// scan record out. Every stage returns fresh values; nothing here keeps
// state between calls, so a single Scanner is safe to use from concurrent
// goroutines on independent inputs.
package scan

import (
	"context"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/framescan/internal/contour"
	"github.com/ivlev/framescan/internal/measure"
	"github.com/ivlev/framescan/internal/profile"
	"github.com/ivlev/framescan/internal/source"
)

// FormatVersion is the OMA container version written for new records.
const FormatVersion = 1

// DefaultDevice identifies the stock capture rig in new records.
const DefaultDevice = "Huvitz Excelon Frame Scanner"

// Record is one completed template scan. Records are immutable after
// construction; the codec and any presentation layer only ever read them.
type Record struct {
	Version     uint32
	Timestamp   string // RFC 3339
	Device      string
	Measurement measure.Measurement
	Radii       []uint16
}

// Scanner runs the capture pipeline. The zero value is unusable; construct
// with NewScanner.
type Scanner struct {
	Extractor   *contour.Extractor
	Calibration profile.Calibration
	Device      string
}

// NewScanner returns a Scanner with stock detection settings and
// calibration.
func NewScanner(device string) *Scanner {
	if device == "" {
		device = DefaultDevice
	}
	return &Scanner{
		Extractor:   contour.NewExtractor(),
		Calibration: profile.DefaultCalibration,
		Device:      device,
	}
}

// Scan runs contour extraction, measurement and profile synthesis on one
// owned frame snapshot. The boolean is false when no qualifying outline was
// found; that is the expected outcome for frames without a template in
// view, not an error.
func (s *Scanner) Scan(img image.Image) (*Record, bool) {
	contours := s.Extractor.Extract(img)

	m := measure.FromContours(contours)
	if m == nil {
		return nil, false
	}

	var main *contour.Contour
	for i := range contours {
		if contours[i].Area == m.Area {
			main = &contours[i]
			break
		}
	}

	return &Record{
		Version:     FormatVersion,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Device:      s.Device,
		Measurement: *m,
		Radii:       profile.Synthesize(m, main, s.Calibration),
	}, true
}

// ScanBatch scans every page of src concurrently, bounded by workers.
// The result has one slot per page; a nil slot means nothing was detected
// on that page. Rendering errors abort the batch.
func (s *Scanner) ScanBatch(ctx context.Context, src source.Source, dpi, workers int) ([]*Record, error) {
	count := src.PageCount()
	records := make([]*Record, count)

	g, ctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := src.RenderPage(i, dpi)
			if err != nil {
				return err
			}
			if rec, ok := s.Scan(img); ok {
				records[i] = rec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
