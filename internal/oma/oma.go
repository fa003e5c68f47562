// Package oma encodes and decodes the OMA binary container: the scan record
// format exchanged with optical lab edgers. The layout is little-endian
// throughout and carries no padding:
//
//	magic        4 bytes, literal "OMAF"
//	version      u32
//	numRadii     u32
//	timestampLen u32, then that many UTF-8 bytes
//	deviceLen    u32, then that many UTF-8 bytes
//	width, height, centerX, centerY   4×u32
//	area, perimeter                   2×f64
//	radii        numRadii×u16, tenths of a millimetre
//
// Decoding is pure: identical bytes always yield an identical record.
package oma

import (
	"encoding/binary"
	"math"

	"github.com/ivlev/framescan/internal/measure"
	"github.com/ivlev/framescan/internal/scan"
)

// Magic is the four-byte marker opening every OMA file.
var Magic = [4]byte{'O', 'M', 'A', 'F'}

// Encode serializes a record to the container layout. It always succeeds
// for a well-formed record: radius counts up to the u32 range and arbitrary
// UTF-8 timestamp and device strings round-trip exactly.
func Encode(rec *scan.Record) []byte {
	ts := []byte(rec.Timestamp)
	dev := []byte(rec.Device)

	size := 4 + 4 + 4 + // magic, version, numRadii
		4 + len(ts) +
		4 + len(dev) +
		4*4 + 2*8 +
		2*len(rec.Radii)

	buf := make([]byte, 0, size)
	buf = append(buf, Magic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, rec.Version)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(rec.Radii)))

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(ts)))
	buf = append(buf, ts...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(dev)))
	buf = append(buf, dev...)

	m := rec.Measurement
	buf = binary.LittleEndian.AppendUint32(buf, m.Width)
	buf = binary.LittleEndian.AppendUint32(buf, m.Height)
	buf = binary.LittleEndian.AppendUint32(buf, m.CenterX)
	buf = binary.LittleEndian.AppendUint32(buf, m.CenterY)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(m.Area))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(m.Perimeter))

	for _, r := range rec.Radii {
		buf = binary.LittleEndian.AppendUint16(buf, r)
	}

	return buf
}

// Decode parses a container buffer back into a record. It fails with
// ErrBadMagic when the marker is wrong and with *TruncatedError when any
// declared length would read past the end of the buffer. Earlier readers of
// this format sliced on the declared lengths without checking them and could
// read out of bounds on corrupt files; the guards change the failure mode
// for malformed input only, never the result for well-formed files.
func Decode(buf []byte) (*scan.Record, error) {
	r := reader{buf: buf}

	magic, err := r.bytes("magic", 4)
	if err != nil {
		return nil, err
	}
	if [4]byte(magic) != Magic {
		return nil, ErrBadMagic
	}

	version, err := r.uint32("version")
	if err != nil {
		return nil, err
	}
	numRadii, err := r.uint32("radius count")
	if err != nil {
		return nil, err
	}

	timestamp, err := r.lengthPrefixedString("timestamp")
	if err != nil {
		return nil, err
	}
	device, err := r.lengthPrefixedString("device info")
	if err != nil {
		return nil, err
	}

	var m measure.Measurement
	if m.Width, err = r.uint32("width"); err != nil {
		return nil, err
	}
	if m.Height, err = r.uint32("height"); err != nil {
		return nil, err
	}
	if m.CenterX, err = r.uint32("centerX"); err != nil {
		return nil, err
	}
	if m.CenterY, err = r.uint32("centerY"); err != nil {
		return nil, err
	}
	if m.Area, err = r.float64("area"); err != nil {
		return nil, err
	}
	if m.Perimeter, err = r.float64("perimeter"); err != nil {
		return nil, err
	}
	// The container has no presence flag for the centroid; persisted
	// records always carry one.
	m.HasCenter = true

	radii, err := r.radii("radius section", int(numRadii))
	if err != nil {
		return nil, err
	}

	return &scan.Record{
		Version:     version,
		Timestamp:   timestamp,
		Device:      device,
		Measurement: m,
		Radii:       radii,
	}, nil
}

// reader walks the buffer with a bounds check ahead of every slice.
type reader struct {
	buf []byte
	off int
}

func (r *reader) need(field string, n int) error {
	if n < 0 || len(r.buf)-r.off < n {
		return &TruncatedError{Field: field, Need: n, Have: len(r.buf) - r.off}
	}
	return nil
}

func (r *reader) bytes(field string, n int) ([]byte, error) {
	if err := r.need(field, n); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) uint32(field string) (uint32, error) {
	b, err := r.bytes(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) float64(field string) (float64, error) {
	b, err := r.bytes(field, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) lengthPrefixedString(field string) (string, error) {
	n, err := r.uint32(field + " length")
	if err != nil {
		return "", err
	}
	b, err := r.bytes(field, int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) radii(field string, count int) ([]uint16, error) {
	if count == 0 {
		return nil, nil
	}
	b, err := r.bytes(field, 2*count)
	if err != nil {
		return nil, err
	}

	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return out, nil
}
