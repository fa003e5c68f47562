package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/framescan/internal/config"
	"github.com/ivlev/framescan/internal/contour"
	"github.com/ivlev/framescan/internal/label"
	"github.com/ivlev/framescan/internal/oma"
	"github.com/ivlev/framescan/internal/profile"
	"github.com/ivlev/framescan/internal/scan"
	"github.com/ivlev/framescan/internal/source"
	"github.com/ivlev/framescan/internal/system"
)

func main() {
	system.InitResourceLimits()

	// Create the working directories if they do not exist.
	dirs := []string{"input/captures", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Capture image, directory of captures, or scanned tracing-sheet PDF (default: latest file in input/captures/)")
	outputPtr := flag.String("output", "", "Output OMA path (if empty, generated automatically in output/)")
	devicePtr := flag.String("device", "", "Device identifier stored in the record (default from scan profile)")
	dpiPtr := flag.Int("dpi", 300, "Rasterization DPI for PDF inputs")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Concurrent scan workers for multi-page inputs")
	profilePtr := flag.String("scan-profile", "", "Scan profile YAML with rig tuning and calibration")
	jsonPtr := flag.Bool("json", false, "Also write the JSON debug export next to each OMA file")
	labelPtr := flag.Bool("label", false, "Also write the job-ticket QR label next to each OMA file")
	statsPtr := flag.Bool("stats", false, "Print run statistics after the batch")

	flag.Parse()

	start := time.Now()

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestCapture("input/captures")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a capture in input/captures/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Selected capture: %s\n", inputPath)
	}

	prof := config.DefaultScanProfile()
	if *profilePtr != "" {
		loaded, err := config.ReadScanProfile(*profilePtr)
		if err != nil {
			log.Fatalf("[-] Error reading scan profile: %v", err)
		}
		prof = loaded
		fmt.Printf("[*] Using scan profile: %s\n", *profilePtr)
	}

	device := *devicePtr
	if device == "" {
		device = prof.Device
	}

	cfg := &config.Config{
		InputPath:   inputPath,
		OutputPath:  *outputPtr,
		Device:      device,
		DPI:         *dpiPtr,
		Workers:     *workersPtr,
		JSONExport:  *jsonPtr,
		LabelOutput: *labelPtr,
		ShowStats:   *statsPtr,
		ProfilePath: *profilePtr,
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		log.Fatalf("[-] Error opening source: %v", err)
	}
	defer src.Close()

	pageCount := src.PageCount()
	if pageCount == 0 {
		log.Fatalf("[-] Error: source has no pages or images")
	}

	scanner := scannerFromProfile(prof, cfg.Device)

	fmt.Println("--- [FRAMESCAN CAPTURE] ---")
	fmt.Printf("[*] Source: %s | Frames/Pages: %d\n", cfg.InputPath, pageCount)
	fmt.Printf("[*] Device: %s | Calibration: %.4f mm/px\n", cfg.Device, prof.MMPerPixel)
	fmt.Println("---------------------------")

	records, err := scanner.ScanBatch(context.Background(), src, cfg.DPI, cfg.Workers)
	if err != nil {
		log.Fatalf("[-] Scan failed: %v", err)
	}

	detected := 0
	for i, rec := range records {
		if rec == nil {
			fmt.Printf("[!] Page %d: no frame detected\n", i+1)
			continue
		}
		detected++

		outPath := outputPathFor(cfg, i, pageCount)
		if err := oma.WriteFile(outPath, rec); err != nil {
			log.Fatalf("[-] %v", err)
		}
		m := rec.Measurement
		fmt.Printf("[+] Page %d: %s (%dx%d px, center %d,%d, %d radii)\n",
			i+1, outPath, m.Width, m.Height, m.CenterX, m.CenterY, len(rec.Radii))

		if cfg.JSONExport {
			if err := writeJSON(outPath, rec); err != nil {
				log.Fatalf("[-] %v", err)
			}
		}
		if cfg.LabelOutput {
			labelPath := strings.TrimSuffix(outPath, ".oma") + "_label.png"
			if err := label.Write(labelPath, outPath, rec); err != nil {
				log.Fatalf("[-] %v", err)
			}
			fmt.Printf("[*] Job label: %s\n", labelPath)
		}
	}

	if detected == 0 {
		fmt.Println("[!] No frame detected in any page")
	} else {
		fmt.Printf("[+++] Done: %d of %d pages produced OMA files\n", detected, pageCount)
	}

	if cfg.ShowStats {
		system.CollectRunStats(start).Print()
	}
}

// scannerFromProfile builds the pipeline from the rig tuning.
func scannerFromProfile(prof *config.ScanProfile, device string) *scan.Scanner {
	s := scan.NewScanner(device)
	s.Extractor = &contour.Extractor{
		MinArea:     prof.MinArea,
		MinVertices: prof.MinVertices,
		MaxVertices: prof.MaxVertices,
		Offset:      prof.Offset,
		Invert:      prof.Invert,
	}
	s.Calibration = profile.Calibration{MMPerPixel: prof.MMPerPixel}
	return s
}

// outputPathFor resolves the OMA path for one page. Multi-page sources get
// a page suffix; single captures use the -output flag verbatim when given.
func outputPathFor(cfg *config.Config, index, pageCount int) string {
	if cfg.OutputPath != "" {
		if pageCount == 1 {
			return cfg.OutputPath
		}
		ext := filepath.Ext(cfg.OutputPath)
		base := strings.TrimSuffix(cfg.OutputPath, ext)
		return fmt.Sprintf("%s_p%d%s", base, index+1, ext)
	}

	baseName := filepath.Base(cfg.InputPath)
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	if pageCount == 1 {
		return filepath.Join("output", fmt.Sprintf("%s_%s.oma", cleanName, timestamp))
	}
	return filepath.Join("output", fmt.Sprintf("%s_%s_p%d.oma", cleanName, timestamp, index+1))
}

func writeJSON(omaPath string, rec *scan.Record) error {
	data, err := oma.ExportJSON(rec)
	if err != nil {
		return err
	}

	jsonPath := strings.TrimSuffix(omaPath, ".oma") + ".json"
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return err
	}
	fmt.Printf("[*] JSON export: %s\n", jsonPath)
	return nil
}
