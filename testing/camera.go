package testing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chungastico/vigia/types"
)

// FakeCamera implements types.VideoOpener with scripted behavior.
//
// Each Open produces a FakeSource that yields a fresh frame every
// FrameInterval until the worker's context is cancelled. Zero values give a
// working 640x480 camera with a 1ms frame interval.
type FakeCamera struct {
	// OpenErr, when set, makes Open fail (ResourceUnavailable path).
	OpenErr error

	// ReadErr, when set together with FailAfter, is returned by Next once
	// FailAfter frames have been produced.
	ReadErr   error
	FailAfter int

	// FrameInterval is the pacing between frames (default 1ms).
	FrameInterval time.Duration

	// Width and Height are the produced frame dimensions (default 640x480).
	Width, Height int

	mu      sync.Mutex
	sources []*FakeSource
}

var _ types.VideoOpener = (*FakeCamera)(nil)

// Open returns a new scripted source, or OpenErr when set.
func (c *FakeCamera) Open(_ context.Context) (types.VideoSource, error) {
	if c.OpenErr != nil {
		return nil, c.OpenErr
	}

	src := &FakeSource{camera: c}

	c.mu.Lock()
	c.sources = append(c.sources, src)
	c.mu.Unlock()

	return src, nil
}

// Sources returns every source opened so far, in order.
func (c *FakeCamera) Sources() []*FakeSource {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*FakeSource, len(c.sources))
	copy(out, c.sources)

	return out
}

func (c *FakeCamera) interval() time.Duration {
	if c.FrameInterval > 0 {
		return c.FrameInterval
	}

	return time.Millisecond
}

func (c *FakeCamera) dimensions() (int, int) {
	w, h := c.Width, c.Height
	if w == 0 {
		w = 640
	}
	if h == 0 {
		h = 480
	}

	return w, h
}

// FakeSource is a scripted video source produced by FakeCamera.
type FakeSource struct {
	camera *FakeCamera
	frames atomic.Int64
	closed atomic.Bool
}

var _ types.VideoSource = (*FakeSource)(nil)

// Next yields a frame after the camera's frame interval, honoring ctx.
func (s *FakeSource) Next(ctx context.Context) (*types.Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.camera.interval()):
	}

	n := s.frames.Add(1)
	if s.camera.ReadErr != nil && s.camera.FailAfter > 0 && n > int64(s.camera.FailAfter) {
		return nil, s.camera.ReadErr
	}

	w, h := s.camera.dimensions()

	return &types.Frame{Width: w, Height: h, Timestamp: time.Now()}, nil
}

// Close marks the source released.
func (s *FakeSource) Close() error {
	s.closed.Store(true)

	return nil
}

// Closed reports whether Close was called.
func (s *FakeSource) Closed() bool {
	return s.closed.Load()
}

// FrameCount returns how many frames were produced.
func (s *FakeSource) FrameCount() int64 {
	return s.frames.Load()
}

// StaticEncoder implements types.FaceEncoder returning fixed results.
//
// When Regions is empty, Locate synthesizes one region per configured
// embedding so tests only need to script embeddings.
type StaticEncoder struct {
	Regions    []types.Rect
	Embeddings [][]float64

	LocateErr error
	EncodeErr error
}

var _ types.FaceEncoder = (*StaticEncoder)(nil)

// Locate returns the scripted face regions.
func (e *StaticEncoder) Locate(_ context.Context, _ *types.Frame) ([]types.Rect, error) {
	if e.LocateErr != nil {
		return nil, e.LocateErr
	}
	if len(e.Regions) > 0 {
		return e.Regions, nil
	}

	regions := make([]types.Rect, len(e.Embeddings))
	for i := range regions {
		regions[i] = types.Rect{Left: float64(i * 10), Top: 0, Right: float64(i*10 + 10), Bottom: 10}
	}

	return regions, nil
}

// Encode returns the scripted embeddings.
func (e *StaticEncoder) Encode(_ context.Context, _ *types.Frame, _ []types.Rect) ([][]float64, error) {
	if e.EncodeErr != nil {
		return nil, e.EncodeErr
	}

	return e.Embeddings, nil
}

// StaticEstimator implements types.PoseEstimator returning fixed poses.
type StaticEstimator struct {
	Poses []types.Pose
	Err   error
}

var _ types.PoseEstimator = (*StaticEstimator)(nil)

// Estimate returns the scripted poses.
func (e *StaticEstimator) Estimate(_ context.Context, _ *types.Frame) ([]types.Pose, error) {
	if e.Err != nil {
		return nil, e.Err
	}

	return e.Poses, nil
}
