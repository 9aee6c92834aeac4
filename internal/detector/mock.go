package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// Results can be fixed for every call or scripted per frame, so tests can
// express sequences like "no hands, then one hand, then two hands".
type MockDetector struct {
	hands   []HandLandmarks
	queue   [][]HandLandmarks
	err     error
	detects int
	closes  int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetSequence scripts per-frame results. Each Detect call consumes one entry;
// once the sequence is exhausted Detect falls back to the fixed hands.
func (m *MockDetector) SetSequence(seq [][]HandLandmarks) {
	m.queue = seq
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the next scripted result, the fixed hands, or the error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.detects++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	m.closes++
	return nil
}

// Detects returns how many times Detect was called.
func (m *MockDetector) Detects() int {
	return m.detects
}

// Closes returns how many times Close was called.
func (m *MockDetector) Closes() int {
	return m.closes
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm.
// All fingers are extended, every coordinate stays inside [0,1].
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at base
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward (slightly longer)
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// FistLandmarks returns a preset HandLandmarks representing a closed fist.
// All fingers are curled back toward the palm.
func FistLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Left",
		Score:      0.92,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb folded across the curled fingers
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.01}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.57, Y: 0.72, Z: 0.01}
	landmarks.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.70, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.69, Z: 0.0}

	// Index finger curled
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.64, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.53, Y: 0.67, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.52, Y: 0.70, Z: -0.02}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.67, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.62, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.66, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.70, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.63, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.43, Y: 0.67, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.71, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.66, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.69, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.37, Y: 0.73, Z: -0.02}

	return landmarks
}
