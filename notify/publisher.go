// Package notify publishes monitoring events to NATS.
//
// Payloads are MessagePack-encoded and carry a unique event ID, so
// downstream consumers (dashboards, alerting) can deduplicate after
// reconnects. Publishing is fire-and-forget over core NATS: a dropped
// event never blocks or fails the monitoring workers.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/chungastico/vigia/internal/logging"
	"github.com/chungastico/vigia/types"
)

// Subjects for published events.
const (
	SubjectAttendance    = "vigia.attendance"
	SubjectParticipation = "vigia.participation"
	SubjectSession       = "vigia.session"
)

// AttendanceMessage is the wire payload for an attendance event.
type AttendanceMessage struct {
	EventID   string    `msgpack:"event_id"`
	StudentID string    `msgpack:"student_id"`
	Period    string    `msgpack:"period"`
	Timestamp time.Time `msgpack:"timestamp"`
}

// ParticipationMessage is the wire payload for a participation event.
type ParticipationMessage struct {
	EventID   string    `msgpack:"event_id"`
	StudentID string    `msgpack:"student_id"`
	Period    string    `msgpack:"period"`
	Timestamp time.Time `msgpack:"timestamp"`
	Points    int       `msgpack:"points"`
}

// SessionMessage is the wire payload for a session transition.
type SessionMessage struct {
	EventID   string    `msgpack:"event_id"`
	From      string    `msgpack:"from"`
	To        string    `msgpack:"to"`
	Timestamp time.Time `msgpack:"timestamp"`
}

// Publisher publishes monitoring events to NATS subjects.
type Publisher struct {
	conn   *nats.Conn
	logger types.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets a logger.
func WithLogger(logger types.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a Publisher over an existing NATS connection.
//
// The connection is borrowed, not owned: the caller closes it.
//
// Parameters:
//   - conn: Established NATS connection
//   - opts: Optional configuration (logger)
//
// Returns:
//   - *Publisher: Initialized publisher
//   - error: ErrConnRequired when conn is nil
func New(conn *nats.Conn, opts ...Option) (*Publisher, error) {
	if conn == nil {
		return nil, types.ErrConnRequired
	}

	p := &Publisher{conn: conn, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// PublishAttendance publishes a recorded attendance event.
func (p *Publisher) PublishAttendance(ev types.AttendanceEvent) error {
	msg := AttendanceMessage{
		EventID:   uuid.NewString(),
		StudentID: ev.StudentID,
		Period:    ev.Period,
		Timestamp: ev.Timestamp,
	}

	return p.publish(SubjectAttendance, msg)
}

// PublishParticipation publishes a recorded participation event.
func (p *Publisher) PublishParticipation(ev types.ParticipationEvent) error {
	msg := ParticipationMessage{
		EventID:   uuid.NewString(),
		StudentID: ev.StudentID,
		Period:    ev.Period,
		Timestamp: ev.Timestamp,
		Points:    ev.Points,
	}

	return p.publish(SubjectParticipation, msg)
}

// PublishSessionChange publishes a session state transition.
func (p *Publisher) PublishSessionChange(from, to types.SessionState) error {
	msg := SessionMessage{
		EventID:   uuid.NewString(),
		From:      from.String(),
		To:        to.String(),
		Timestamp: time.Now(),
	}

	return p.publish(SubjectSession, msg)
}

func (p *Publisher) publish(subject string, msg any) error {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	return nil
}

// Hooks returns Monitor hooks that publish every recorded event.
//
// Publish failures are logged and swallowed: notification is best-effort
// and never fails a recording.
//
// Returns:
//   - *types.Hooks: Hooks wired to this publisher
func (p *Publisher) Hooks() *types.Hooks {
	return &types.Hooks{
		OnSessionChanged: func(_ context.Context, from, to types.SessionState) error {
			if err := p.PublishSessionChange(from, to); err != nil {
				p.logger.Warn("session change publish failed", "error", err)
			}

			return nil
		},
		OnAttendanceRecorded: func(_ context.Context, ev types.AttendanceEvent) error {
			if err := p.PublishAttendance(ev); err != nil {
				p.logger.Warn("attendance publish failed", "error", err)
			}

			return nil
		},
		OnParticipationRecorded: func(_ context.Context, ev types.ParticipationEvent) error {
			if err := p.PublishParticipation(ev); err != nil {
				p.logger.Warn("participation publish failed", "error", err)
			}

			return nil
		},
	}
}
