package types

import "errors"

// Sentinel errors for the Vigia library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). All components should use these sentinel errors for known
// error conditions and wrap external errors with context using
// fmt.Errorf("%s: %w", msg, err).

// Monitor errors - Public API errors returned by the Monitor component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired is returned when the persistence store is nil.
	ErrStoreRequired = errors.New("store is required")

	// ErrCameraRequired is returned when the video opener is nil.
	ErrCameraRequired = errors.New("video opener is required")

	// ErrFaceEncoderRequired is returned when the face encoder is nil.
	ErrFaceEncoderRequired = errors.New("face encoder is required")

	// ErrAttendanceActive is returned when the attendance session is
	// already running: starting it again is a no-op rejection, and a pose
	// session cannot start until it is stopped.
	ErrAttendanceActive = errors.New("attendance session already active")

	// ErrPoseActive is returned when the pose session is already running.
	ErrPoseActive = errors.New("pose session already active")

	// ErrAttendanceNotActive is returned when stopping an attendance
	// session that is not running.
	ErrAttendanceNotActive = errors.New("attendance session not active")

	// ErrPoseNotActive is returned when stopping a pose session that is
	// not running.
	ErrPoseNotActive = errors.New("pose session not active")

	// ErrNoEnrolledStudents is returned when an attendance session starts
	// with no stored embeddings to match against.
	ErrNoEnrolledStudents = errors.New("no enrolled students with embeddings")

	// ErrPoseUnavailable is returned when a pose session starts without a
	// pose estimator configured.
	ErrPoseUnavailable = errors.New("pose estimator not available")
)

// Store errors - returned by persistence implementations.
var (
	// ErrStudentNotFound is returned when a student ID is absent.
	ErrStudentNotFound = errors.New("student not found")

	// ErrStudentExists is returned on a duplicate student ID. The store
	// rejects the write with no partial state.
	ErrStudentExists = errors.New("student already registered")
)

// Enrollment errors.
var (
	// ErrEnrollmentIncomplete is returned when too few embedding samples
	// were captured before the enrollment deadline.
	ErrEnrollmentIncomplete = errors.New("not enough face samples captured")
)

// Notify errors.
var (
	// ErrConnRequired is returned when a NATS connection is nil.
	ErrConnRequired = errors.New("NATS connection is required")
)
