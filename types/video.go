package types

import "context"

// VideoSource yields frames from an opened camera or stream.
//
// Next may block until a frame is available; no acquisition timeout is
// imposed by the core. A stalled source stalls its worker until it yields a
// frame or the worker's context is cancelled, whichever the implementation
// observes first.
type VideoSource interface {
	// Next returns the next frame, blocking until one is available.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//
	// Returns:
	//   - *Frame: The captured frame
	//   - error: io.EOF at end of stream, ctx.Err() on cancellation, or a
	//     capture error (a single failed read is treated as transient by
	//     the monitoring worker)
	Next(ctx context.Context) (*Frame, error)

	// Close releases the underlying device or stream handle.
	// Safe to call after a failed Next.
	Close() error
}

// VideoOpener opens a video source for a monitoring session.
//
// Each session opens its own source and closes it on every exit path. An
// open failure is reported to the caller as a failed session start.
type VideoOpener interface {
	Open(ctx context.Context) (VideoSource, error)
}

// FaceEncoder locates faces in a frame and computes embedding vectors.
//
// Implementations wrap an opaque face-embedding model; the core treats them
// as capability providers and never interprets the frame data itself.
type FaceEncoder interface {
	// Locate returns the bounding regions of detected faces.
	Locate(ctx context.Context, frame *Frame) ([]Rect, error)

	// Encode computes one embedding vector per located region.
	// The returned slice is parallel to regions.
	Encode(ctx context.Context, frame *Frame, regions []Rect) ([][]float64, error)
}

// PoseEstimator detects per-person body keypoints in a frame.
//
// Implementations return a bounded number of persons per frame (multi-pose
// models cap detections, typically at six).
type PoseEstimator interface {
	Estimate(ctx context.Context, frame *Frame) ([]Pose, error)
}
