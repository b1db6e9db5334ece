// Package enroll captures face embedding samples for new students.
//
// Enrollment is an offline operation: it never runs while a monitoring
// session holds the camera. The Monitor only sees new students on its next
// attendance start, when it rebuilds the match gallery.
package enroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chungastico/vigia/internal/logging"
	"github.com/chungastico/vigia/types"
)

const (
	// DefaultSamples is the embedding sample count captured per student.
	DefaultSamples = 5

	// DefaultTimeout bounds the whole capture loop.
	DefaultTimeout = 20 * time.Second

	// DefaultPause is the wait between accepted samples, giving the
	// student time to vary their head position.
	DefaultPause = 500 * time.Millisecond
)

// Enroller captures face samples from the camera and persists new students.
type Enroller struct {
	store   types.Store
	camera  types.VideoOpener
	encoder types.FaceEncoder

	samples int
	timeout time.Duration
	pause   time.Duration
	logger  types.Logger
}

// Option configures an Enroller.
type Option func(*Enroller)

// WithSamples sets the number of embedding samples to capture.
func WithSamples(n int) Option {
	return func(e *Enroller) {
		e.samples = n
	}
}

// WithTimeout sets the overall capture deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Enroller) {
		e.timeout = d
	}
}

// WithPause sets the wait between accepted samples.
func WithPause(d time.Duration) Option {
	return func(e *Enroller) {
		e.pause = d
	}
}

// WithLogger sets a logger.
func WithLogger(logger types.Logger) Option {
	return func(e *Enroller) {
		e.logger = logger
	}
}

// New creates an Enroller.
//
// Parameters:
//   - store: Persistence store the new student is written to
//   - camera: Video opener for the capture session
//   - encoder: Face locator and embedding encoder
//   - opts: Optional configuration (sample count, timeout, pause, logger)
//
// Returns:
//   - *Enroller: Initialized enroller
//   - error: Dependency error when a required collaborator is nil
func New(store types.Store, camera types.VideoOpener, encoder types.FaceEncoder, opts ...Option) (*Enroller, error) {
	if store == nil {
		return nil, types.ErrStoreRequired
	}
	if camera == nil {
		return nil, types.ErrCameraRequired
	}
	if encoder == nil {
		return nil, types.ErrFaceEncoderRequired
	}

	e := &Enroller{
		store:   store,
		camera:  camera,
		encoder: encoder,
		samples: DefaultSamples,
		timeout: DefaultTimeout,
		pause:   DefaultPause,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Enroll captures face samples for the student and persists them.
//
// The student's ID is checked for duplicates before the camera opens, so a
// re-enrollment attempt fails fast without capturing anything. Frames with
// zero or multiple faces are skipped; only frames with exactly one face
// contribute a sample. Nothing is persisted unless the full sample count is
// reached before the deadline.
//
// Parameters:
//   - ctx: Context for cancellation (the capture deadline is added to it)
//   - student: Student identity to enroll; Embeddings is overwritten with
//     the captured samples on success
//
// Returns:
//   - error: ErrStudentExists on a duplicate ID, ErrEnrollmentIncomplete
//     when the deadline expires first, or a camera/store error
func (e *Enroller) Enroll(ctx context.Context, student *types.Student) error {
	if student == nil || student.ID == "" {
		return fmt.Errorf("%w: student ID is required", types.ErrInvalidConfig)
	}

	_, err := e.store.Student(ctx, student.ID)
	switch {
	case err == nil:
		return fmt.Errorf("student %q: %w", student.ID, types.ErrStudentExists)
	case !errors.Is(err, types.ErrStudentNotFound):
		return fmt.Errorf("check existing student: %w", err)
	}

	src, err := e.camera.Open(ctx)
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			e.logger.Error("failed to close video source", "error", cerr)
		}
	}()

	captureCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	embeddings, err := e.capture(captureCtx, src)
	if err != nil {
		return err
	}

	student.Embeddings = embeddings
	if err := e.store.AddStudent(ctx, student); err != nil {
		return fmt.Errorf("persist student: %w", err)
	}

	e.logger.Info("student enrolled",
		"student_id", student.ID,
		"samples", len(embeddings),
	)

	return nil
}

// capture collects embedding samples until the target count or deadline.
func (e *Enroller) capture(ctx context.Context, src types.VideoSource) ([][]float64, error) {
	embeddings := make([][]float64, 0, e.samples)

	for len(embeddings) < e.samples {
		frame, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: captured %d of %d samples",
					types.ErrEnrollmentIncomplete, len(embeddings), e.samples)
			}

			e.logger.Warn("frame capture failed during enrollment", "error", err)

			continue
		}

		regions, err := e.encoder.Locate(ctx, frame)
		if err != nil {
			return nil, fmt.Errorf("locate faces: %w", err)
		}
		if len(regions) != 1 {
			// Zero faces or an onlooker in frame, wait for a clean shot
			continue
		}

		vectors, err := e.encoder.Encode(ctx, frame, regions)
		if err != nil {
			return nil, fmt.Errorf("encode face: %w", err)
		}
		if len(vectors) != 1 {
			continue
		}

		embeddings = append(embeddings, vectors[0])
		e.logger.Debug("sample captured", "count", len(embeddings), "target", e.samples)

		if len(embeddings) == e.samples {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: captured %d of %d samples",
				types.ErrEnrollmentIncomplete, len(embeddings), e.samples)
		case <-time.After(e.pause):
		}
	}

	return embeddings, nil
}
