// Package app orchestrates the real-time frame-processing pipeline:
// capture, hand detection, contour reconstruction, overlay compositing and
// display, once per frame on a single goroutine.
package app

import (
	"fmt"
	"image"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/savyohenriquedev/exoskel/internal/capture"
	"github.com/savyohenriquedev/exoskel/internal/detector"
	"github.com/savyohenriquedev/exoskel/internal/overlay"
)

// Loop timing and control constants.
const (
	// QuitKey ends the loop when observed by the per-cycle key poll.
	QuitKey = 'q'
	// PollTimeoutMs bounds the non-blocking key poll.
	PollTimeoutMs = 1
)

// State is the display loop lifecycle state.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateTerminating
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Exit reasons recorded in the run summary.
const (
	ExitReasonQuit              = "quit-key"
	ExitReasonCaptureFailed     = "capture-failed"
	ExitReasonDeviceUnavailable = "device-unavailable"
	ExitReasonFault             = "fault"
)

// FrameRenderer composites hand overlays and the fps readout onto an
// annotated frame copy. *overlay.Renderer is the production implementation.
type FrameRenderer interface {
	Draw(annotated *gocv.Mat, hands []detector.HandLandmarks, contours [][]image.Point, fps float64)
}

// Config holds the collaborators of the display loop. Camera, Detector and
// Display are owned exclusively by the loop once Run starts, and are
// released by it exactly once.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Display  Display
	Renderer FrameRenderer
}

// Summary describes one completed run.
type Summary struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Cycles     int
	MeanFPS    float64
	ExitReason string
}

// Loop is the display loop state machine:
// Initializing -> Running -> Terminating -> Closed. Closed is terminal; a
// Loop does not restart.
type Loop struct {
	camera   capture.Camera
	detector detector.Detector
	display  Display
	renderer FrameRenderer
	tracker  *FrameRateTracker

	state    State
	released bool
}

// New creates a Loop from the given collaborators.
func New(cfg Config) *Loop {
	return &Loop{
		camera:   cfg.Camera,
		detector: cfg.Detector,
		display:  cfg.Display,
		renderer: cfg.Renderer,
		tracker:  NewFrameRateTracker(),
		state:    StateInitializing,
	}
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Run executes the pipeline until the quit key is observed, a capture fails,
// or camera acquisition fails. Frames are processed strictly in capture
// order; a slow detector lowers the observed fps but never skips frames.
// Resources are released exactly once on every exit path, including a panic
// escaping the loop body, which Run converts into a returned error.
func (l *Loop) Run() (summary Summary, err error) {
	summary.StartedAt = time.Now()

	defer func() {
		if r := recover(); r != nil {
			summary.ExitReason = ExitReasonFault
			err = fmt.Errorf("unexpected failure: %v", r)
		}
		summary.EndedAt = time.Now()
	}()
	defer l.release()

	if openErr := l.camera.Open(); openErr != nil {
		log.Printf("Failed to open camera: %v", openErr)
		summary.ExitReason = ExitReasonDeviceUnavailable
		return summary, openErr
	}

	l.tracker.Reset(time.Now())
	l.state = StateRunning
	var fpsSum float64

	for l.state == StateRunning {
		frame, readErr := l.camera.ReadFrame()
		if readErr != nil {
			// Surfaced, not retried: the stale frame is never reused.
			log.Printf("Capture failed, terminating: %v", readErr)
			summary.ExitReason = ExitReasonCaptureFailed
			l.state = StateTerminating
			break
		}

		fpsSum += l.processFrame(frame)
		summary.Cycles++

		if key := l.display.PollKey(PollTimeoutMs); key == QuitKey {
			summary.ExitReason = ExitReasonQuit
			l.state = StateTerminating
		}
	}

	if summary.Cycles > 0 {
		summary.MeanFPS = fpsSum / float64(summary.Cycles)
	}

	return summary, nil
}

// processFrame runs one cycle's transform chain on a captured frame and
// returns the fps reading used for the overlay. The frame is closed here.
func (l *Loop) processFrame(frame *gocv.Mat) float64 {
	defer frame.Close()

	// The estimator expects RGB; capture delivers BGR.
	rgb := gocv.NewMat()
	gocv.CvtColor(*frame, &rgb, gocv.ColorBGRToRGB)
	hands, err := l.detector.Detect(&rgb)
	rgb.Close()

	if err != nil {
		// A detector error is unexpected but recoverable; the cycle still
		// renders and displays. Zero detections arrive as an empty slice
		// and are not logged at all.
		log.Printf("Hand detection failed: %v", err)
		hands = nil
	}

	width := frame.Cols()
	height := frame.Rows()

	contours := make([][]image.Point, 0, len(hands))
	for i := range hands {
		contours = append(contours, overlay.BuildContour(hands[i], width, height))
	}

	fps := l.tracker.Tick(time.Now())

	// Draw on a copy; the captured frame itself is never mutated.
	annotated := frame.Clone()
	defer annotated.Close()

	l.renderer.Draw(&annotated, hands, contours, fps)

	if showErr := l.display.Show(&annotated); showErr != nil {
		log.Printf("Display failed: %v", showErr)
	}

	return fps
}

// release closes the camera, detector and display. It is idempotent and
// runs on every Run exit path.
func (l *Loop) release() {
	if l.released {
		return
	}
	l.released = true
	l.state = StateTerminating

	if err := l.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if l.detector != nil {
		if err := l.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
	if l.display != nil {
		if err := l.display.Close(); err != nil {
			log.Printf("Error closing display: %v", err)
		}
	}

	l.state = StateClosed
}
