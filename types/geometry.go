package types

import "time"

// Rect is a rectangular region in frame-pixel space.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether the point lies strictly inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return r.Left < x && x < r.Right && r.Top < y && y < r.Bottom
}

// Frame is a single captured video frame.
//
// Data is the raw pixel buffer in whatever layout the producing VideoSource
// and consuming encoder/estimator agree on; the core never inspects it.
// Frames are treated as immutable once produced.
type Frame struct {
	// Data is the raw pixel buffer.
	Data []byte

	// Width is the frame width in pixels.
	Width int

	// Height is the frame height in pixels.
	Height int

	// Timestamp is the capture time.
	Timestamp time.Time
}
