package oma

import (
	"encoding/json"

	"github.com/ivlev/framescan/internal/scan"
)

// jsonRecord is the debug projection of a scan record. It mirrors the
// record contents in a structured text form and is independent of the
// binary container; nothing ever parses it back into an OMA file.
type jsonRecord struct {
	Version     uint32          `json:"version"`
	Timestamp   string          `json:"timestamp"`
	Device      string          `json:"device"`
	Measurement jsonMeasurement `json:"measurements"`
	Radii       []uint16        `json:"radii"`
}

type jsonMeasurement struct {
	Width     uint32    `json:"width"`
	Height    uint32    `json:"height"`
	Center    [2]uint32 `json:"center"`
	Area      float64   `json:"area"`
	Perimeter float64   `json:"perimeter"`
}

// ExportJSON renders rec as indented JSON for inspection and debugging.
func ExportJSON(rec *scan.Record) ([]byte, error) {
	m := rec.Measurement
	out := jsonRecord{
		Version:   rec.Version,
		Timestamp: rec.Timestamp,
		Device:    rec.Device,
		Measurement: jsonMeasurement{
			Width:     m.Width,
			Height:    m.Height,
			Center:    [2]uint32{m.CenterX, m.CenterY},
			Area:      m.Area,
			Perimeter: m.Perimeter,
		},
		Radii: rec.Radii,
	}

	return json.MarshalIndent(out, "", "  ")
}
