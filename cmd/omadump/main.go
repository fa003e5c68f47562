// omadump inspects OMA files: prints a record summary or emits the JSON
// debug projection.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ivlev/framescan/internal/oma"
)

func main() {
	jsonOut := flag.Bool("json", false, "Emit the JSON projection instead of a summary")
	showRadii := flag.Bool("radii", false, "Print every radius sample")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: omadump [-json] [-radii] file.oma ...")
	}

	exitCode := 0
	for _, path := range flag.Args() {
		if err := dump(path, *jsonOut, *showRadii); err != nil {
			switch {
			case errors.Is(err, oma.ErrBadMagic):
				fmt.Fprintf(os.Stderr, "[-] %s: not an OMA file\n", path)
			case oma.IsTruncated(err):
				fmt.Fprintf(os.Stderr, "[-] %s: corrupt (truncated): %v\n", path, err)
			default:
				fmt.Fprintf(os.Stderr, "[-] %s: %v\n", path, err)
			}
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func dump(path string, jsonOut, showRadii bool) error {
	rec, err := oma.ReadFile(path)
	if err != nil {
		return err
	}

	if jsonOut {
		data, err := oma.ExportJSON(rec)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	m := rec.Measurement
	fmt.Printf("%s\n", path)
	fmt.Printf("  version:   %d\n", rec.Version)
	fmt.Printf("  timestamp: %s\n", rec.Timestamp)
	fmt.Printf("  device:    %s\n", rec.Device)
	fmt.Printf("  box:       %dx%d px, center (%d,%d)\n", m.Width, m.Height, m.CenterX, m.CenterY)
	fmt.Printf("  area:      %.1f px² | perimeter: %.1f px\n", m.Area, m.Perimeter)

	if len(rec.Radii) == 0 {
		fmt.Printf("  radii:     none\n")
		return nil
	}

	minR, maxR := rec.Radii[0], rec.Radii[0]
	for _, r := range rec.Radii[1:] {
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
	}
	fmt.Printf("  radii:     %d samples, %.1f–%.1f mm\n", len(rec.Radii), float64(minR)/10, float64(maxR)/10)

	if showRadii {
		for i, r := range rec.Radii {
			fmt.Printf("    %4d  %.2f°  %.1f mm\n", i, 360*float64(i)/float64(len(rec.Radii)), float64(r)/10)
		}
	}
	return nil
}
