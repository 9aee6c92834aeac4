package app

import (
	"errors"
	"image"
	"strings"
	"testing"

	"gocv.io/x/gocv"

	"github.com/savyohenriquedev/exoskel/internal/capture"
	"github.com/savyohenriquedev/exoskel/internal/detector"
)

// spyRenderer records what each cycle asked it to draw.
type spyRenderer struct {
	contourCounts []int
	fpsValues     []float64
}

func (r *spyRenderer) Draw(annotated *gocv.Mat, hands []detector.HandLandmarks, contours [][]image.Point, fps float64) {
	r.contourCounts = append(r.contourCounts, len(contours))
	r.fpsValues = append(r.fpsValues, fps)
}

// panicRenderer simulates an unexpected fault escaping the loop body.
type panicRenderer struct{}

func (panicRenderer) Draw(annotated *gocv.Mat, hands []detector.HandLandmarks, contours [][]image.Point, fps float64) {
	panic("renderer exploded")
}

func loopFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()

	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}

	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})

	return frames
}

// Scenario: three frames with zero, one, and two hands must render zero, one,
// and two contours, with a finite fps reading on every cycle.
func TestLoop_RendersContoursPerDetectedHand(t *testing.T) {
	camera := capture.NewMockCamera(loopFrames(t, 3), false)

	mock := detector.NewMockDetector()
	mock.SetSequence([][]detector.HandLandmarks{
		nil,
		{detector.OpenPalmLandmarks()},
		{detector.OpenPalmLandmarks(), detector.FistLandmarks()},
	})

	display := NewMockDisplay()
	renderer := &spyRenderer{}

	loop := New(Config{
		Camera:   camera,
		Detector: mock,
		Display:  display,
		Renderer: renderer,
	})

	summary, err := loop.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Cycles != 3 {
		t.Errorf("Cycles = %d, want 3", summary.Cycles)
	}

	wantCounts := []int{0, 1, 2}
	if len(renderer.contourCounts) != len(wantCounts) {
		t.Fatalf("renderer invoked %d times, want %d", len(renderer.contourCounts), len(wantCounts))
	}
	for i, want := range wantCounts {
		if renderer.contourCounts[i] != want {
			t.Errorf("cycle %d rendered %d contours, want %d", i+1, renderer.contourCounts[i], want)
		}
	}

	for i, fps := range renderer.fpsValues {
		if fps < 0 {
			t.Errorf("cycle %d fps = %f, want non-negative", i+1, fps)
		}
	}

	if display.Shows() != 3 {
		t.Errorf("Shows() = %d, want 3", display.Shows())
	}
	if loop.State() != StateClosed {
		t.Errorf("State() = %v, want %v", loop.State(), StateClosed)
	}
}

// Scenario: device open fails — no capture attempts, no detection, resources
// released once, error surfaced.
func TestLoop_DeviceUnavailable(t *testing.T) {
	camera := capture.NewMockCamera(nil, false)
	camera.SetOpenError(capture.ErrDeviceUnavailable)

	mock := detector.NewMockDetector()
	display := NewMockDisplay()
	renderer := &spyRenderer{}

	loop := New(Config{
		Camera:   camera,
		Detector: mock,
		Display:  display,
		Renderer: renderer,
	})

	summary, err := loop.Run()
	if !errors.Is(err, capture.ErrDeviceUnavailable) {
		t.Fatalf("Run() error = %v, want ErrDeviceUnavailable", err)
	}

	if summary.ExitReason != ExitReasonDeviceUnavailable {
		t.Errorf("ExitReason = %q, want %q", summary.ExitReason, ExitReasonDeviceUnavailable)
	}
	if summary.Cycles != 0 {
		t.Errorf("Cycles = %d, want 0", summary.Cycles)
	}
	if camera.Reads() != 0 {
		t.Errorf("Reads() = %d, want 0 (no capture attempts)", camera.Reads())
	}
	if mock.Detects() != 0 {
		t.Errorf("Detects() = %d, want 0", mock.Detects())
	}
	if display.Shows() != 0 {
		t.Errorf("Shows() = %d, want 0", display.Shows())
	}
	if display.Closes() != 1 {
		t.Errorf("display Closes() = %d, want 1", display.Closes())
	}
	if loop.State() != StateClosed {
		t.Errorf("State() = %v, want %v", loop.State(), StateClosed)
	}
}

// Scenario: termination key observed on cycle 5 — the loop completes cycle
// 5's render and display, then stops; no cycle 6 executes.
func TestLoop_QuitKeyOnCycleFive(t *testing.T) {
	camera := capture.NewMockCamera(loopFrames(t, 2), true)

	mock := detector.NewMockDetector()
	display := NewMockDisplay()
	display.SetKeys([]int{-1, -1, -1, -1, QuitKey})
	renderer := &spyRenderer{}

	loop := New(Config{
		Camera:   camera,
		Detector: mock,
		Display:  display,
		Renderer: renderer,
	})

	summary, err := loop.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.ExitReason != ExitReasonQuit {
		t.Errorf("ExitReason = %q, want %q", summary.ExitReason, ExitReasonQuit)
	}
	if summary.Cycles != 5 {
		t.Errorf("Cycles = %d, want 5", summary.Cycles)
	}
	if camera.Reads() != 5 {
		t.Errorf("Reads() = %d, want 5 (no cycle 6)", camera.Reads())
	}
	if display.Shows() != 5 {
		t.Errorf("Shows() = %d, want 5 (cycle 5 still displayed)", display.Shows())
	}
	if camera.Closes() != 1 {
		t.Errorf("camera Closes() = %d, want exactly 1", camera.Closes())
	}
	if mock.Closes() != 1 {
		t.Errorf("detector Closes() = %d, want exactly 1", mock.Closes())
	}
	if display.Closes() != 1 {
		t.Errorf("display Closes() = %d, want exactly 1", display.Closes())
	}
	if loop.State() != StateClosed {
		t.Errorf("State() = %v, want %v", loop.State(), StateClosed)
	}
}

// A capture failure on cycle N terminates the loop without invoking the
// detector or renderer for cycle N; release still happens exactly once.
func TestLoop_CaptureFailureMidRun(t *testing.T) {
	camera := capture.NewMockCamera(loopFrames(t, 2), true)
	camera.FailAtRead(3)

	mock := detector.NewMockDetector()
	display := NewMockDisplay()
	renderer := &spyRenderer{}

	loop := New(Config{
		Camera:   camera,
		Detector: mock,
		Display:  display,
		Renderer: renderer,
	})

	summary, err := loop.Run()
	if err != nil {
		t.Fatalf("Run() error = %v (a mid-run capture failure terminates gracefully)", err)
	}

	if summary.ExitReason != ExitReasonCaptureFailed {
		t.Errorf("ExitReason = %q, want %q", summary.ExitReason, ExitReasonCaptureFailed)
	}
	if summary.Cycles != 2 {
		t.Errorf("Cycles = %d, want 2", summary.Cycles)
	}
	if mock.Detects() != 2 {
		t.Errorf("Detects() = %d, want 2 (not invoked for the failed cycle)", mock.Detects())
	}
	if len(renderer.contourCounts) != 2 {
		t.Errorf("renderer invoked %d times, want 2 (not invoked for the failed cycle)", len(renderer.contourCounts))
	}
	if camera.Closes() != 1 {
		t.Errorf("camera Closes() = %d, want exactly 1", camera.Closes())
	}
	if loop.State() != StateClosed {
		t.Errorf("State() = %v, want %v", loop.State(), StateClosed)
	}
}

// No-detection frames are a normal outcome: the loop keeps running and the
// renderer is still invoked with zero contours.
func TestLoop_NoDetectionIsNotAnError(t *testing.T) {
	camera := capture.NewMockCamera(loopFrames(t, 1), true)

	mock := detector.NewMockDetector() // always returns no hands
	display := NewMockDisplay()
	display.SetKeys([]int{-1, -1, QuitKey})
	renderer := &spyRenderer{}

	loop := New(Config{
		Camera:   camera,
		Detector: mock,
		Display:  display,
		Renderer: renderer,
	})

	summary, err := loop.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Cycles != 3 {
		t.Errorf("Cycles = %d, want 3", summary.Cycles)
	}
	for i, count := range renderer.contourCounts {
		if count != 0 {
			t.Errorf("cycle %d rendered %d contours, want 0", i+1, count)
		}
	}
}

// A panic escaping the loop body is converted into an error and resources
// are still released exactly once.
func TestLoop_PanicReleasesResources(t *testing.T) {
	camera := capture.NewMockCamera(loopFrames(t, 1), true)

	mock := detector.NewMockDetector()
	display := NewMockDisplay()

	loop := New(Config{
		Camera:   camera,
		Detector: mock,
		Display:  display,
		Renderer: panicRenderer{},
	})

	summary, err := loop.Run()
	if err == nil {
		t.Fatal("Run() should surface the panic as an error")
	}
	if !strings.Contains(err.Error(), "unexpected failure") {
		t.Errorf("Run() error = %v, want an unexpected-failure message", err)
	}

	if summary.ExitReason != ExitReasonFault {
		t.Errorf("ExitReason = %q, want %q", summary.ExitReason, ExitReasonFault)
	}
	if camera.Closes() != 1 {
		t.Errorf("camera Closes() = %d, want exactly 1", camera.Closes())
	}
	if display.Closes() != 1 {
		t.Errorf("display Closes() = %d, want exactly 1", display.Closes())
	}
	if loop.State() != StateClosed {
		t.Errorf("State() = %v, want %v", loop.State(), StateClosed)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateInitializing, "initializing"},
		{StateRunning, "running"},
		{StateTerminating, "terminating"},
		{StateClosed, "closed"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
