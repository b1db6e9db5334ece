package types

import "context"

// Hooks defines callbacks for Monitor lifecycle and recording events.
//
// All hooks are optional and called asynchronously in background goroutines
// to avoid blocking the monitoring workers or the state machine.
//
// IMPORTANT: Hook execution behavior:
//   - Hooks run concurrently and may not complete before a session stops
//   - Hook errors are logged but don't fail Monitor operations
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Make hooks idempotent
type Hooks struct {
	// OnSessionChanged is called when the monitoring session state transitions.
	OnSessionChanged func(ctx context.Context, from, to SessionState) error

	// OnAttendanceRecorded is called after an attendance event is persisted.
	OnAttendanceRecorded func(ctx context.Context, ev AttendanceEvent) error

	// OnParticipationRecorded is called after a participation event is persisted.
	OnParticipationRecorded func(ctx context.Context, ev ParticipationEvent) error

	// OnError is called when a recoverable error occurs inside a worker.
	OnError func(ctx context.Context, err error) error
}
