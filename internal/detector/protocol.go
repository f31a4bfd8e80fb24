package detector

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ayusman/mudra/internal/hand"
)

// The helper reads a 4-byte big-endian length followed by a JPEG on stdin and
// answers each frame with one JSON line on stdout.

type response struct {
	Hands []jsonHand `json:"hands"`
	Error string     `json:"error,omitempty"`
}

// jsonHand represents the JSON structure from the Python service.
type jsonHand struct {
	Points     []hand.Point `json:"points"`
	Handedness string       `json:"handedness"`
	Score      float64      `json:"score"`
}

func (h jsonHand) toLandmarks() (hand.Landmarks, error) {
	if len(h.Points) != hand.NumLandmarks {
		return hand.Landmarks{}, fmt.Errorf("hand has %d points, want %d", len(h.Points), hand.NumLandmarks)
	}
	lm := hand.Landmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}
	copy(lm.Points[:], h.Points)
	return lm, nil
}

// writeFrame sends one encoded image to the helper.
func writeFrame(w io.Writer, data []byte) error {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))

	if _, err := w.Write(length[:]); err != nil {
		return fmt.Errorf("write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	return nil
}

// decodeResponse parses one response line. At most maxHands hands are returned.
func decodeResponse(line []byte, maxHands int) ([]hand.Landmarks, error) {
	var resp response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("mediapipe service: %s", resp.Error)
	}

	n := len(resp.Hands)
	if maxHands > 0 && n > maxHands {
		n = maxHands
	}
	result := make([]hand.Landmarks, 0, n)
	for _, h := range resp.Hands[:n] {
		lm, err := h.toLandmarks()
		if err != nil {
			return nil, err
		}
		result = append(result, lm)
	}
	return result, nil
}
