package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/savyohenriquedev/exoskel/internal/app"
	"github.com/savyohenriquedev/exoskel/internal/capture"
	"github.com/savyohenriquedev/exoskel/internal/detector"
	"github.com/savyohenriquedev/exoskel/internal/overlay"
	"github.com/savyohenriquedev/exoskel/internal/store"
)

func main() {
	fmt.Println("exoskel - Real-Time Hand Exoskeleton Overlay")

	// Any failure escaping the loop surfaces here, is reported once, and
	// ends the process cleanly. It is never retried.
	if err := run(); err != nil {
		log.Fatalf("exoskel: %v", err)
	}
}

func run() error {
	cameraID := flag.Int("camera", 0, "camera device index (overrides stored setting)")
	maxHands := flag.Int("max-hands", 2, "maximum number of tracked hands (overrides stored setting)")
	minDetection := flag.Float64("min-detection-confidence", 0.5, "minimum detection confidence (overrides stored setting)")
	minTracking := flag.Float64("min-tracking-confidence", 0.5, "minimum tracking confidence (overrides stored setting)")
	flag.Parse()

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home directory: %w", err)
	}

	dataDir := filepath.Join(homeDir, ".exoskel")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	st, err := store.New(filepath.Join(dataDir, "exoskel.db"))
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	if err := st.Settings().SeedDefaults(); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	settings, err := st.Settings().Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Explicitly-set flags win over stored settings for this run only.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "camera":
			settings.CameraID = *cameraID
		case "max-hands":
			settings.MaxHands = *maxHands
		case "min-detection-confidence":
			settings.MinDetectionConfidence = *minDetection
		case "min-tracking-confidence":
			settings.MinTrackingConfidence = *minTracking
		}
	})

	if recent, err := st.Sessions().Recent(1); err == nil && len(recent) > 0 {
		last := recent[0]
		log.Printf("Previous run: %d frames at %.1f fps (%s)", last.Cycles, last.MeanFPS, last.ExitReason)
	}

	detectorConfig := detector.Config{
		MaxHands:               settings.MaxHands,
		MinDetectionConfidence: settings.MinDetectionConfidence,
		MinTrackingConfidence:  settings.MinTrackingConfidence,
	}

	// Try MediaPipe first, fall back to the mock detector so the window
	// still comes up (with no overlays) when the service is missing.
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detectorConfig); err == nil {
		det = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	}

	loop := app.New(app.Config{
		Camera:   capture.NewCamera(settings.CameraID),
		Detector: det,
		Display:  app.NewWindowDisplay(app.WindowTitle),
		Renderer: overlay.NewRenderer(overlay.DefaultStyle()),
	})

	summary, runErr := loop.Run()

	session := store.Session{
		StartedAt:  summary.StartedAt,
		EndedAt:    summary.EndedAt,
		Cycles:     summary.Cycles,
		MeanFPS:    summary.MeanFPS,
		ExitReason: summary.ExitReason,
	}
	if err := st.Sessions().Create(&session); err != nil {
		log.Printf("Failed to record session: %v", err)
	}

	log.Printf("Processed %d frames at %.1f fps (%s)", summary.Cycles, summary.MeanFPS, summary.ExitReason)

	return runErr
}
