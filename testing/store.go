package testing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chungastico/vigia/types"
)

// MemStore is a thread-safe in-memory Store implementation for tests.
//
// Records are kept in insertion order. Error fields, when set, are returned
// by the corresponding operations to exercise failure paths.
type MemStore struct {
	mu            sync.Mutex
	students      map[string]types.Student
	attendance    []types.AttendanceEvent
	participation []types.ParticipationEvent

	// Optional injected failures.
	StudentsErr            error
	RecordAttendanceErr    error
	RecordParticipationErr error
}

var _ types.Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{students: make(map[string]types.Student)}
}

// Student returns the student with the given ID.
func (m *MemStore) Student(_ context.Context, id string) (*types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.students[id]
	if !ok {
		return nil, types.ErrStudentNotFound
	}

	return &s, nil
}

// Students returns all students ordered by ID for deterministic gallery builds.
func (m *MemStore) Students(_ context.Context) ([]types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StudentsErr != nil {
		return nil, m.StudentsErr
	}

	out := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// AddStudent persists a student, rejecting duplicate IDs.
func (m *MemStore) AddStudent(_ context.Context, s *types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[s.ID]; ok {
		return types.ErrStudentExists
	}
	m.students[s.ID] = *s

	return nil
}

// RecordAttendance appends an attendance event.
func (m *MemStore) RecordAttendance(_ context.Context, studentID, period string, ts time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordAttendanceErr != nil {
		return m.RecordAttendanceErr
	}
	m.attendance = append(m.attendance, types.AttendanceEvent{
		StudentID: studentID,
		Period:    period,
		Timestamp: ts,
	})

	return nil
}

// RecordParticipation appends a participation event.
func (m *MemStore) RecordParticipation(_ context.Context, studentID, period string, ts time.Time, points int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordParticipationErr != nil {
		return m.RecordParticipationErr
	}
	m.participation = append(m.participation, types.ParticipationEvent{
		StudentID: studentID,
		Period:    period,
		Timestamp: ts,
		Points:    points,
	})

	return nil
}

// AttendedOn reports whether an attendance record exists for the student and
// period within day's calendar day.
func (m *MemStore) AttendedOn(_ context.Context, studentID, period string, day time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ev := range m.attendance {
		if ev.StudentID == studentID && ev.Period == period && sameDay(ev.Timestamp, day) {
			return true, nil
		}
	}

	return false, nil
}

// LastParticipation returns the most recent participation timestamp for the
// student and period.
func (m *MemStore) LastParticipation(_ context.Context, studentID, period string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		latest time.Time
		found  bool
	)
	for _, ev := range m.participation {
		if ev.StudentID == studentID && ev.Period == period && ev.Timestamp.After(latest) {
			latest = ev.Timestamp
			found = true
		}
	}

	return latest, found, nil
}

// AttendanceEvents returns a copy of all recorded attendance events.
func (m *MemStore) AttendanceEvents() []types.AttendanceEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.AttendanceEvent, len(m.attendance))
	copy(out, m.attendance)

	return out
}

// ParticipationEvents returns a copy of all recorded participation events.
func (m *MemStore) ParticipationEvents() []types.ParticipationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.ParticipationEvent, len(m.participation))
	copy(out, m.participation)

	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
