package vigia

import (
	"context"
	"fmt"
	"time"

	"github.com/chungastico/vigia/match"
	"github.com/chungastico/vigia/schedule"
	"github.com/chungastico/vigia/types"
)

// StartAttendance begins a face-recognition attendance session.
//
// The match gallery is built synchronously from the store before the
// session starts, so students enrolled mid-session are not visible until
// the next start. The camera is opened before the session is considered
// started; an open failure leaves the monitor idle.
//
// Parameters:
//   - ctx: Context for the startup work (store read, camera open)
//
// Returns:
//   - error: ErrAttendanceActive when already running, ErrPoseActive
//     (wrapped) when a pose session holds the camera,
//     ErrNoEnrolledStudents when the store holds no embeddings, or a
//     store/camera error
func (m *Monitor) StartAttendance(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.State() {
	case SessionAttendance:
		return ErrAttendanceActive
	case SessionPose:
		return fmt.Errorf("stop the pose session first: %w", ErrPoseActive)
	}

	students, err := m.store.Students(ctx)
	if err != nil {
		return fmt.Errorf("load enrolled students: %w", err)
	}

	gallery := match.Build(students, m.cfg.MatchTolerance)
	if gallery.Size() == 0 {
		return ErrNoEnrolledStudents
	}
	m.metrics.RecordGalleryRebuild(gallery.Size())
	m.logger.Info("match gallery built",
		"students", len(students),
		"entries", gallery.Size(),
		"fingerprint", gallery.Fingerprint(),
	)

	src, err := m.camera.Open(ctx)
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	sessCtx, cancel := context.WithCancel(context.Background())
	s := &session{kind: SessionAttendance, cancel: cancel}
	m.session = s
	m.transitionState(SessionIdle, SessionAttendance)

	m.wg.Add(1)
	go m.runAttendance(sessCtx, s, src, gallery)

	return nil
}

// StopAttendance stops the running attendance session.
//
// The monitor is idle when this returns; the worker releases the camera in
// the background. Starting another session immediately after is valid.
//
// Returns:
//   - error: ErrAttendanceNotActive when no attendance session is running
func (m *Monitor) StopAttendance() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.State() != SessionAttendance {
		return ErrAttendanceNotActive
	}

	s := m.session
	s.cancel()
	m.session = nil
	m.transitionState(SessionAttendance, SessionIdle)

	return nil
}

// runAttendance is the attendance session worker goroutine.
func (m *Monitor) runAttendance(ctx context.Context, s *session, src types.VideoSource, gallery *match.Gallery) {
	defer m.wg.Done()

	m.captureLoop(ctx, src, SessionAttendance, m.cfg.AttendanceInterval, func(ctx context.Context, frame *types.Frame) error {
		return m.processAttendanceFrame(ctx, frame, gallery)
	})

	if err := src.Close(); err != nil {
		m.logError("failed to close video source", "session", SessionAttendance.String(), "error", err)
	}

	m.finishSession(s)
}

// processAttendanceFrame runs one recognition pass over a frame.
//
// Each located face is encoded and matched independently; one frame with
// several students yields several attendance records. Records are written
// only inside a class period and suppressed by the per-day dedup engine.
func (m *Monitor) processAttendanceFrame(ctx context.Context, frame *types.Frame, gallery *match.Gallery) error {
	regions, err := m.encoder.Locate(ctx, frame)
	if err != nil {
		return fmt.Errorf("locate faces: %w", err)
	}
	if len(regions) == 0 {
		return nil
	}

	embeddings, err := m.encoder.Encode(ctx, frame, regions)
	if err != nil {
		return fmt.Errorf("encode faces: %w", err)
	}

	now := time.Now()
	period, reason := m.schedule.Current(now)

	for _, embedding := range embeddings {
		result, known := gallery.Match(embedding)
		m.metrics.RecordMatch(known)
		if !known {
			continue
		}

		if reason != schedule.ReasonInPeriod {
			m.logger.Debug("match outside class period",
				"student_id", result.Label,
				"reason", reason.String(),
			)

			continue
		}

		record, err := m.attendance.ShouldRecord(ctx, result.Label, period, now)
		if err != nil {
			return fmt.Errorf("check attendance dedup: %w", err)
		}
		if !record {
			continue
		}

		if err := m.store.RecordAttendance(ctx, result.Label, period, now); err != nil {
			return fmt.Errorf("record attendance: %w", err)
		}
		m.attendance.MarkRecorded(result.Label, period, now)
		m.metrics.RecordAttendance(period)
		m.logger.Info("attendance recorded",
			"student_id", result.Label,
			"period", period,
			"distance", result.Distance,
		)

		if m.hooks.OnAttendanceRecorded != nil {
			ev := types.AttendanceEvent{StudentID: result.Label, Period: period, Timestamp: now}
			go func() {
				if err := m.hooks.OnAttendanceRecorded(context.Background(), ev); err != nil {
					m.logError("attendance hook error", "student_id", ev.StudentID, "error", err)
				}
			}()
		}
	}

	return nil
}
