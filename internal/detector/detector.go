// Package detector finds hand landmarks in video frames.
package detector

import (
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/hand"
)

// ErrScriptNotFound is returned when the MediaPipe helper script cannot be located.
var ErrScriptNotFound = errors.New("mediapipe_service.py not found")

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]hand.Landmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// ScriptPath overrides the helper script lookup when set.
	ScriptPath string

	// Python overrides the interpreter lookup when set.
	Python string

	// IdleTimeout stops the helper process after this long without a request.
	// Zero keeps it running until Close.
	IdleTimeout time.Duration
}

// DefaultConfig returns the single-hand configuration used for pointer control.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.8,
		MinTrackingConf: 0.7,
		IdleTimeout:     30 * time.Second,
	}
}

// Validate checks that thresholds are in range.
func (c Config) Validate() error {
	if c.MaxHands < 1 {
		return fmt.Errorf("max hands must be at least 1, got %d", c.MaxHands)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be within [0,1], got %v", c.MinConfidence)
	}
	if c.MinTrackingConf < 0 || c.MinTrackingConf > 1 {
		return fmt.Errorf("min tracking confidence must be within [0,1], got %v", c.MinTrackingConf)
	}
	return nil
}

// Primary returns the hand that drives the pointer: the first detected one.
// It returns nil when hands is empty.
func Primary(hands []hand.Landmarks) *hand.Landmarks {
	if len(hands) == 0 {
		return nil
	}
	h := hands[0]
	return &h
}
