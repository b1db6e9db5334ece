package types

import (
	"context"
	"time"
)

// Store is the persistence collaborator for students and monitoring records.
//
// Attendance and participation tables are append-only; the write-time
// invariants (at most one attendance per student/period/day, cooldown
// spacing between participations) are enforced by the dedup and debounce
// engines, not by storage constraints. The engines use a non-atomic
// read-then-decide pattern that is safe under the single-writer-per-session
// discipline guaranteed by the Monitor.
type Store interface {
	// Student returns the student with the given ID.
	//
	// Returns:
	//   - *Student: The student, nil when not found
	//   - error: ErrStudentNotFound when absent, or a storage error
	Student(ctx context.Context, id string) (*Student, error)

	// Students returns all enrolled students including their embeddings.
	Students(ctx context.Context) ([]Student, error)

	// AddStudent persists a newly enrolled student.
	//
	// Returns:
	//   - error: ErrStudentExists on duplicate ID, no partial write occurs
	AddStudent(ctx context.Context, s *Student) error

	// RecordAttendance appends an attendance record.
	RecordAttendance(ctx context.Context, studentID, period string, ts time.Time) error

	// RecordParticipation appends a participation record with a point value.
	RecordParticipation(ctx context.Context, studentID, period string, ts time.Time, points int) error

	// AttendedOn reports whether an attendance record exists for the
	// student and period within day's calendar day.
	AttendedOn(ctx context.Context, studentID, period string, day time.Time) (bool, error)

	// LastParticipation returns the timestamp of the most recent
	// participation record for the student and period.
	//
	// Returns:
	//   - time.Time: Timestamp of the latest record
	//   - bool: false when no record exists
	//   - error: Storage error
	LastParticipation(ctx context.Context, studentID, period string) (time.Time, bool, error)
}

// AttendanceRecord is an attendance row joined with student identity,
// returned by reporting queries.
type AttendanceRecord struct {
	StudentID string    `json:"studentId"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Period    string    `json:"period"`
	Timestamp time.Time `json:"timestamp"`
}

// ParticipationRecord is a participation row joined with student identity.
type ParticipationRecord struct {
	StudentID string    `json:"studentId"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Period    string    `json:"period"`
	Timestamp time.Time `json:"timestamp"`
	Points    int       `json:"points"`
}

// Reporter exposes dashboard-facing read queries over monitoring records.
//
// Implemented by production stores alongside Store; the monitoring core
// itself never calls these.
type Reporter interface {
	// AttendanceSummary returns distinct attendee counts per period for
	// day's calendar day.
	AttendanceSummary(ctx context.Context, day time.Time) (map[string]int, error)

	// AttendanceRecords returns all attendance rows for day's calendar
	// day, newest first.
	AttendanceRecords(ctx context.Context, day time.Time) ([]AttendanceRecord, error)

	// AttendanceHistory returns a student's attendance events, newest first.
	AttendanceHistory(ctx context.Context, studentID string) ([]AttendanceEvent, error)

	// ParticipationSummary returns accumulated points per period per
	// student for day's calendar day.
	ParticipationSummary(ctx context.Context, day time.Time) (map[string]map[string]int, error)

	// ParticipationRecords returns all participation rows for day's
	// calendar day, newest first.
	ParticipationRecords(ctx context.Context, day time.Time) ([]ParticipationRecord, error)
}
