package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected; an empty result is
	// a normal per-frame outcome, not an error.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection. These are the only
// tunables the estimator exposes.
type Config struct {
	// MaxHands caps the number of concurrently tracked hands (default: 2).
	MaxHands int

	// MinDetectionConfidence is the minimum score to register a new hand (0.0-1.0).
	MinDetectionConfidence float64

	// MinTrackingConfidence is the minimum score to keep tracking an
	// existing hand across frames (0.0-1.0).
	MinTrackingConfidence float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:               2,
		MinDetectionConfidence: 0.5,
		MinTrackingConfidence:  0.5,
	}
}
