package types

import "time"

// Student is an enrolled student with captured face embedding samples.
//
// The identifier is externally assigned and unique. Embeddings holds one
// fixed-length vector per captured sample; a student with five samples
// contributes five gallery entries during matching, all carrying the same
// label. Students are immutable after enrollment except for appending new
// samples.
type Student struct {
	// ID uniquely identifies the student (externally assigned).
	ID string `json:"id"`

	// Name is the student's display name.
	Name string `json:"name"`

	// Surname is the student's family name.
	Surname string `json:"surname"`

	// Embeddings holds one embedding vector per captured face sample.
	Embeddings [][]float64 `json:"embeddings"`
}

// AttendanceEvent is an append-only attendance record.
//
// Uniqueness per (student, period, calendar day) is enforced at write time by
// the dedup engine, not by storage constraints.
type AttendanceEvent struct {
	StudentID string    `json:"studentId"`
	Period    string    `json:"period"`
	Timestamp time.Time `json:"timestamp"`
}

// ParticipationEvent is an append-only participation record.
//
// Temporal spacing per (student, period) is enforced at write time by the
// debounce engine.
type ParticipationEvent struct {
	StudentID string    `json:"studentId"`
	Period    string    `json:"period"`
	Timestamp time.Time `json:"timestamp"`
	Points    int       `json:"points"`
}
