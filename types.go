package vigia

import "github.com/chungastico/vigia/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the
// `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `vigia`
// package, while still providing a convenient `vigia.Student`,
// `vigia.Logger`, etc. for users.
type (
	SessionState        = types.SessionState
	Student             = types.Student
	AttendanceEvent     = types.AttendanceEvent
	ParticipationEvent  = types.ParticipationEvent
	AttendanceRecord    = types.AttendanceRecord
	ParticipationRecord = types.ParticipationRecord
	Period              = types.Period
	DayTime             = types.DayTime
	Rect                = types.Rect
	Frame               = types.Frame
	Keypoint            = types.Keypoint
	Pose                = types.Pose
)

// Re-export interfaces from the types subpackage for convenience.
type (
	VideoSource      = types.VideoSource
	VideoOpener      = types.VideoOpener
	FaceEncoder      = types.FaceEncoder
	PoseEstimator    = types.PoseEstimator
	Store            = types.Store
	Reporter         = types.Reporter
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export SessionState constants from the types subpackage.
const (
	SessionIdle       = types.SessionIdle
	SessionAttendance = types.SessionAttendance
	SessionPose       = types.SessionPose
)
