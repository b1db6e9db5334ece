// Package hooks provides the default no-op hook implementation.
package hooks

import (
	"context"

	"github.com/chungastico/vigia/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.SessionState, types.SessionState) error = (*NopHooks)(nil).OnSessionChanged
	_ func(context.Context, types.AttendanceEvent) error                  = (*NopHooks)(nil).OnAttendanceRecorded
	_ func(context.Context, types.ParticipationEvent) error               = (*NopHooks)(nil).OnParticipationRecorded
	_ func(context.Context, error) error                                  = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnSessionChanged:        h.OnSessionChanged,
		OnAttendanceRecorded:    h.OnAttendanceRecorded,
		OnParticipationRecorded: h.OnParticipationRecorded,
		OnError:                 h.OnError,
	}
}

// OnSessionChanged is a no-op implementation.
func (h *NopHooks) OnSessionChanged(_ context.Context, _, _ types.SessionState) error {
	return nil
}

// OnAttendanceRecorded is a no-op implementation.
func (h *NopHooks) OnAttendanceRecorded(_ context.Context, _ types.AttendanceEvent) error {
	return nil
}

// OnParticipationRecorded is a no-op implementation.
func (h *NopHooks) OnParticipationRecorded(_ context.Context, _ types.ParticipationEvent) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
