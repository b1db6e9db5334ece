package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chungastico/vigia/types"
)

// Reporting queries joining monitoring records with student identity.
// These serve dashboards and exports; the monitoring core never calls them.

// AttendanceSummary returns distinct attendee counts per period for day's
// calendar day.
func (s *Store) AttendanceSummary(ctx context.Context, day time.Time) (map[string]int, error) {
	start, end := dayWindow(day)

	rows, err := s.conn.Pool().Query(ctx,
		`SELECT period, COUNT(DISTINCT student_id)
		 FROM attendance
		 WHERE recorded_at >= $1 AND recorded_at < $2
		 GROUP BY period`, start, end)
	if err != nil {
		return nil, fmt.Errorf("postgres: attendance summary: %w", err)
	}
	defer rows.Close()

	summary := make(map[string]int)
	for rows.Next() {
		var period string
		var count int
		if err := rows.Scan(&period, &count); err != nil {
			return nil, fmt.Errorf("postgres: scan summary row: %w", err)
		}
		summary[period] = count
	}

	return summary, rows.Err()
}

// AttendanceRecords returns all attendance rows for day's calendar day,
// newest first.
func (s *Store) AttendanceRecords(ctx context.Context, day time.Time) ([]types.AttendanceRecord, error) {
	start, end := dayWindow(day)

	rows, err := s.conn.Pool().Query(ctx,
		`SELECT a.student_id, st.name, st.surname, a.period, a.recorded_at
		 FROM attendance a
		 JOIN students st ON st.id = a.student_id
		 WHERE a.recorded_at >= $1 AND a.recorded_at < $2
		 ORDER BY a.recorded_at DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("postgres: attendance records: %w", err)
	}
	defer rows.Close()

	var records []types.AttendanceRecord
	for rows.Next() {
		var r types.AttendanceRecord
		if err := rows.Scan(&r.StudentID, &r.Name, &r.Surname, &r.Period, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("postgres: scan attendance row: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// AttendanceHistory returns a student's attendance events, newest first.
func (s *Store) AttendanceHistory(ctx context.Context, studentID string) ([]types.AttendanceEvent, error) {
	rows, err := s.conn.Pool().Query(ctx,
		`SELECT student_id, period, recorded_at
		 FROM attendance
		 WHERE student_id = $1
		 ORDER BY recorded_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("postgres: attendance history: %w", err)
	}
	defer rows.Close()

	var events []types.AttendanceEvent
	for rows.Next() {
		var ev types.AttendanceEvent
		if err := rows.Scan(&ev.StudentID, &ev.Period, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("postgres: scan history row: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// ParticipationSummary returns accumulated points per period per student
// for day's calendar day.
func (s *Store) ParticipationSummary(ctx context.Context, day time.Time) (map[string]map[string]int, error) {
	start, end := dayWindow(day)

	rows, err := s.conn.Pool().Query(ctx,
		`SELECT period, student_id, SUM(points)
		 FROM participation
		 WHERE recorded_at >= $1 AND recorded_at < $2
		 GROUP BY period, student_id`, start, end)
	if err != nil {
		return nil, fmt.Errorf("postgres: participation summary: %w", err)
	}
	defer rows.Close()

	summary := make(map[string]map[string]int)
	for rows.Next() {
		var period, studentID string
		var points int
		if err := rows.Scan(&period, &studentID, &points); err != nil {
			return nil, fmt.Errorf("postgres: scan summary row: %w", err)
		}
		if summary[period] == nil {
			summary[period] = make(map[string]int)
		}
		summary[period][studentID] = points
	}

	return summary, rows.Err()
}

// ParticipationRecords returns all participation rows for day's calendar
// day, newest first.
func (s *Store) ParticipationRecords(ctx context.Context, day time.Time) ([]types.ParticipationRecord, error) {
	start, end := dayWindow(day)

	rows, err := s.conn.Pool().Query(ctx,
		`SELECT p.student_id, st.name, st.surname, p.period, p.recorded_at, p.points
		 FROM participation p
		 JOIN students st ON st.id = p.student_id
		 WHERE p.recorded_at >= $1 AND p.recorded_at < $2
		 ORDER BY p.recorded_at DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("postgres: participation records: %w", err)
	}
	defer rows.Close()

	var records []types.ParticipationRecord
	for rows.Next() {
		var r types.ParticipationRecord
		if err := rows.Scan(&r.StudentID, &r.Name, &r.Surname, &r.Period, &r.Timestamp, &r.Points); err != nil {
			return nil, fmt.Errorf("postgres: scan participation row: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
