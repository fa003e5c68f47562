package oma

import (
	"fmt"
	"os"

	"github.com/ivlev/framescan/internal/scan"
)

// WriteFile encodes rec and writes it to path. File system errors are
// surfaced verbatim; corruption and missing files are not transient, so
// nothing here retries.
func WriteFile(path string, rec *scan.Record) error {
	if err := os.WriteFile(path, Encode(rec), 0644); err != nil {
		return fmt.Errorf("oma: write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and decodes the OMA file at path. Decode failures keep
// their type (ErrBadMagic, *TruncatedError) through the wrap so callers can
// still tell a corrupt file from a disk error.
func ReadFile(path string) (*scan.Record, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oma: read %s: %w", path, err)
	}

	rec, err := Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("oma: decode %s: %w", path, err)
	}
	return rec, nil
}
