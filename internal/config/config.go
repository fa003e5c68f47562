package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the resolved CLI settings for one run.
type Config struct {
	InputPath    string
	OutputPath   string
	Device       string
	DPI          int
	Workers      int
	JSONExport   bool
	LabelOutput  bool
	ShowStats    bool
	ProfilePath  string
	BuildVersion string
}

// ScanProfile is the per-rig tuning file: detection thresholds and the
// optical calibration of the camera mount. Rigs ship with a profile next to
// the binary; the defaults cover the stock frontlit mount.
type ScanProfile struct {
	Device      string  `yaml:"device"`
	MinArea     float64 `yaml:"min_area"`     // px²
	MinVertices int     `yaml:"min_vertices"` // polygon filter, inclusive
	MaxVertices int     `yaml:"max_vertices"`
	Offset      int     `yaml:"threshold_offset"` // counts above local mean
	Invert      bool    `yaml:"invert"`           // backlit rig: template is the dark region
	MMPerPixel  float64 `yaml:"mm_per_pixel"`
}

// DefaultScanProfile returns the stock rig tuning.
func DefaultScanProfile() *ScanProfile {
	return &ScanProfile{
		Device:      "Huvitz Excelon Frame Scanner",
		MinArea:     1000,
		MinVertices: 4,
		MaxVertices: 8,
		Offset:      2,
		MMPerPixel:  0.25,
	}
}

// WriteScanProfile writes a profile to a YAML file.
func WriteScanProfile(p *ScanProfile, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScanProfile reads a profile from a YAML file. Fields missing from the
// file keep their zero value; callers normally start from
// DefaultScanProfile and overlay the file on top via this function's
// result.
func ReadScanProfile(path string) (*ScanProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := DefaultScanProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}

	return p, nil
}
