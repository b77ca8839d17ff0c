package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open right
// palm roughly centered in the frame, fingers extended upward. Useful as a
// realistic single-hand input for overlay tests.
func OpenPalmLandmarks() HandLandmarks {
	hand := HandLandmarks{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Thumb extended to the side.
	hand.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	hand.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70}
	hand.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65}
	hand.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60}

	// Index finger extended upward.
	hand.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	hand.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	hand.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	hand.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	// Middle finger, slightly longer.
	hand.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	hand.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	hand.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	hand.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	// Ring finger.
	hand.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	hand.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	hand.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	hand.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	// Pinky.
	hand.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	hand.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	hand.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	hand.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return hand
}
