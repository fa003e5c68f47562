package label

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/framescan/internal/measure"
	"github.com/ivlev/framescan/internal/scan"
)

func testRecord() *scan.Record {
	return &scan.Record{
		Version:   1,
		Timestamp: "2024-05-14T09:30:00Z",
		Device:    "Huvitz Excelon Frame Scanner",
		Measurement: measure.Measurement{
			Width: 1552, Height: 51, CenterX: 776, CenterY: 25,
			Area: 79152, Perimeter: 3206, HasCenter: true,
		},
		Radii: []uint16{1500, 1600, 1700},
	}
}

func TestPayload(t *testing.T) {
	rec := testRecord()

	payload := Payload("/srv/jobs/scan_42.oma", rec)
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		t.Fatalf("payload %q: want 3 |-separated fields", payload)
	}
	if parts[0] != "scan_42.oma" {
		t.Errorf("file field = %q, want the base name", parts[0])
	}
	if parts[1] != rec.Timestamp {
		t.Errorf("timestamp field = %q", parts[1])
	}
	if len(parts[2]) != 8 {
		t.Errorf("checksum field = %q, want 8 hex digits", parts[2])
	}

	// The payload is derived from the encoded record, so the same record
	// always labels the same.
	if again := Payload("/srv/jobs/scan_42.oma", rec); again != payload {
		t.Errorf("payload not deterministic: %q then %q", payload, again)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label.png")

	if err := Write(path, "scan_42.oma", testRecord()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("label not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("label file is empty")
	}
}
