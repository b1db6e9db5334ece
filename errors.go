package vigia

import "github.com/chungastico/vigia/types"

// Sentinel errors returned by the Monitor.
//
// The canonical definitions live in the types subpackage so internal
// packages can return them without importing the root package. They are
// aliased here so callers can write errors.Is(err, vigia.ErrPoseActive).
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrStoreRequired is returned when the persistence store is nil.
	ErrStoreRequired = types.ErrStoreRequired

	// ErrCameraRequired is returned when the video opener is nil.
	ErrCameraRequired = types.ErrCameraRequired

	// ErrFaceEncoderRequired is returned when the face encoder is nil.
	ErrFaceEncoderRequired = types.ErrFaceEncoderRequired

	// ErrAttendanceActive is returned when the attendance session is
	// already running.
	ErrAttendanceActive = types.ErrAttendanceActive

	// ErrPoseActive is returned when the pose session is already running.
	ErrPoseActive = types.ErrPoseActive

	// ErrAttendanceNotActive is returned when stopping an attendance
	// session that is not running.
	ErrAttendanceNotActive = types.ErrAttendanceNotActive

	// ErrPoseNotActive is returned when stopping a pose session that is
	// not running.
	ErrPoseNotActive = types.ErrPoseNotActive

	// ErrNoEnrolledStudents is returned when an attendance session starts
	// with no stored embeddings to match against.
	ErrNoEnrolledStudents = types.ErrNoEnrolledStudents

	// ErrPoseUnavailable is returned when a pose session starts without a
	// pose estimator configured.
	ErrPoseUnavailable = types.ErrPoseUnavailable

	// ErrStudentNotFound is returned when a student ID is absent from the
	// store.
	ErrStudentNotFound = types.ErrStudentNotFound

	// ErrStudentExists is returned on a duplicate student ID.
	ErrStudentExists = types.ErrStudentExists
)
