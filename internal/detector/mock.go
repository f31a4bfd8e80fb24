package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/hand"
)

// MockResult is one scripted response of a MockDetector.
type MockResult struct {
	Hands []hand.Landmarks
	Err   error
	// Panic makes Detect panic with this value instead of returning.
	Panic any
}

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu     sync.Mutex
	hands  []hand.Landmarks
	err    error
	script []MockResult
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []hand.Landmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetScript queues per-call results. Once the script runs out, Detect falls
// back to the values from SetHands and SetError.
func (m *MockDetector) SetScript(results ...MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = results
}

// Detect returns the next scripted result or the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]hand.Landmarks, error) {
	m.mu.Lock()
	m.calls++
	var next *MockResult
	if len(m.script) > 0 {
		next = &m.script[0]
		m.script = m.script[1:]
	}
	hands, err := m.hands, m.err
	m.mu.Unlock()

	if next != nil {
		if next.Panic != nil {
			panic(next.Panic)
		}
		return next.Hands, next.Err
	}
	if err != nil {
		return nil, err
	}
	return hands, nil
}

// Calls returns how many times Detect was called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close was called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close marks the mock as closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
