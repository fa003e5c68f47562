// Package label produces the printed job-ticket QR that travels with a
// physical template through the lab. The code embeds enough to match a
// ticket back to its OMA file without scanning the file itself.
package label

import (
	"fmt"
	"hash/crc32"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/framescan/internal/oma"
	"github.com/ivlev/framescan/internal/scan"
)

// qrSize is the rendered label edge in pixels, sized for 300 dpi thermal
// ticket stock.
const qrSize = 256

// Payload builds the ticket string for a record stored at omaPath: file
// name, capture timestamp and a CRC-32 of the encoded container.
func Payload(omaPath string, rec *scan.Record) string {
	sum := crc32.ChecksumIEEE(oma.Encode(rec))
	return fmt.Sprintf("%s|%s|%08x", filepath.Base(omaPath), rec.Timestamp, sum)
}

// Write renders the job label PNG for a record stored at omaPath.
func Write(labelPath, omaPath string, rec *scan.Record) error {
	payload := Payload(omaPath, rec)
	if err := qrcode.WriteFile(payload, qrcode.Medium, qrSize, labelPath); err != nil {
		return fmt.Errorf("label: render %s: %w", labelPath, err)
	}
	return nil
}
