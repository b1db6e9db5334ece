package types

// SessionState represents the monitoring session lifecycle state.
//
// Exactly one non-idle session may be active at any instant. Transitions:
//
//	SessionIdle → SessionAttendance → SessionIdle
//	SessionIdle → SessionPose → SessionIdle
//
// Starting a session while the opposite one is active is rejected, never
// queued. The return to SessionIdle happens either through an explicit stop
// or through a worker self-stop on unrecoverable failure.
type SessionState int32

const (
	// SessionIdle indicates no monitoring session is active.
	SessionIdle SessionState = iota

	// SessionAttendance indicates the face-recognition attendance worker is running.
	SessionAttendance

	// SessionPose indicates the pose/gesture participation worker is running.
	SessionPose
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "Idle"
	case SessionAttendance:
		return "Attendance"
	case SessionPose:
		return "Pose"
	default:
		return "Unknown"
	}
}
