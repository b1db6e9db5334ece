package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chungastico/vigia/types"
)

// Store implements types.Store on PostgreSQL.
type Store struct {
	conn *Connection
}

// Compile-time assertion that Store implements the persistence interfaces.
var (
	_ types.Store    = (*Store)(nil)
	_ types.Reporter = (*Store)(nil)
)

// NewStore creates a Store over an established connection.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

// Student returns the student with the given ID.
func (s *Store) Student(ctx context.Context, id string) (*types.Student, error) {
	row := s.conn.Pool().QueryRow(ctx,
		`SELECT id, name, surname, embeddings FROM students WHERE id = $1`, id)

	student, err := scanStudent(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("student %q: %w", id, types.ErrStudentNotFound)
		}

		return nil, fmt.Errorf("postgres: query student: %w", err)
	}

	return student, nil
}

// Students returns all enrolled students including their embeddings.
func (s *Store) Students(ctx context.Context) ([]types.Student, error) {
	rows, err := s.conn.Pool().Query(ctx,
		`SELECT id, name, surname, embeddings FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: query students: %w", err)
	}
	defer rows.Close()

	var students []types.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan student: %w", err)
		}
		students = append(students, *student)
	}

	return students, rows.Err()
}

// AddStudent persists a newly enrolled student.
func (s *Store) AddStudent(ctx context.Context, student *types.Student) error {
	embeddings, err := json.Marshal(student.Embeddings)
	if err != nil {
		return fmt.Errorf("postgres: encode embeddings: %w", err)
	}

	_, err = s.conn.Pool().Exec(ctx,
		`INSERT INTO students (id, name, surname, embeddings) VALUES ($1, $2, $3, $4)`,
		student.ID, student.Name, student.Surname, embeddings)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("student %q: %w", student.ID, types.ErrStudentExists)
		}

		return fmt.Errorf("postgres: insert student: %w", err)
	}

	return nil
}

// RecordAttendance appends an attendance record.
func (s *Store) RecordAttendance(ctx context.Context, studentID, period string, ts time.Time) error {
	_, err := s.conn.Pool().Exec(ctx,
		`INSERT INTO attendance (student_id, period, recorded_at) VALUES ($1, $2, $3)`,
		studentID, period, ts)
	if err != nil {
		return fmt.Errorf("postgres: insert attendance: %w", err)
	}

	return nil
}

// RecordParticipation appends a participation record with a point value.
func (s *Store) RecordParticipation(ctx context.Context, studentID, period string, ts time.Time, points int) error {
	_, err := s.conn.Pool().Exec(ctx,
		`INSERT INTO participation (student_id, period, recorded_at, points) VALUES ($1, $2, $3, $4)`,
		studentID, period, ts, points)
	if err != nil {
		return fmt.Errorf("postgres: insert participation: %w", err)
	}

	return nil
}

// AttendedOn reports whether an attendance record exists for the student
// and period within day's calendar day.
func (s *Store) AttendedOn(ctx context.Context, studentID, period string, day time.Time) (bool, error) {
	start, end := dayWindow(day)

	var exists bool
	err := s.conn.Pool().QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM attendance
			WHERE student_id = $1 AND period = $2
			  AND recorded_at >= $3 AND recorded_at < $4
		)`, studentID, period, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres: query attendance: %w", err)
	}

	return exists, nil
}

// LastParticipation returns the timestamp of the most recent participation
// record for the student and period.
func (s *Store) LastParticipation(ctx context.Context, studentID, period string) (time.Time, bool, error) {
	var ts time.Time
	err := s.conn.Pool().QueryRow(ctx,
		`SELECT recorded_at FROM participation
		 WHERE student_id = $1 AND period = $2
		 ORDER BY recorded_at DESC LIMIT 1`, studentID, period).Scan(&ts)
	if err != nil {
		if IsNoRows(err) {
			return time.Time{}, false, nil
		}

		return time.Time{}, false, fmt.Errorf("postgres: query participation: %w", err)
	}

	return ts, true, nil
}

// scanStudent reads one student row including the JSONB embeddings column.
func scanStudent(row interface{ Scan(...any) error }) (*types.Student, error) {
	var student types.Student
	var embeddings []byte

	if err := row.Scan(&student.ID, &student.Name, &student.Surname, &embeddings); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(embeddings, &student.Embeddings); err != nil {
		return nil, fmt.Errorf("decode embeddings: %w", err)
	}

	return &student, nil
}

// dayWindow returns the [midnight, next midnight) bounds of day's calendar
// day in day's location.
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	return start, start.AddDate(0, 0, 1)
}
