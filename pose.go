package vigia

import (
	"context"
	"fmt"
	"time"

	"github.com/chungastico/vigia/gesture"
	"github.com/chungastico/vigia/schedule"
	"github.com/chungastico/vigia/types"
)

// StartPose begins a pose-estimation participation session.
//
// Requires a pose estimator (see WithPoseEstimator). The camera is opened
// before the session is considered started; an open failure leaves the
// monitor idle.
//
// Parameters:
//   - ctx: Context for the startup work (camera open)
//
// Returns:
//   - error: ErrPoseActive when already running, ErrAttendanceActive
//     (wrapped) when an attendance session holds the camera,
//     ErrPoseUnavailable without an estimator, or a camera error
func (m *Monitor) StartPose(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.State() {
	case SessionPose:
		return ErrPoseActive
	case SessionAttendance:
		return fmt.Errorf("stop the attendance session first: %w", ErrAttendanceActive)
	}

	if m.estimator == nil {
		return ErrPoseUnavailable
	}

	src, err := m.camera.Open(ctx)
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	sessCtx, cancel := context.WithCancel(context.Background())
	s := &session{kind: SessionPose, cancel: cancel}
	m.session = s
	m.transitionState(SessionIdle, SessionPose)

	m.wg.Add(1)
	go m.runPose(sessCtx, s, src)

	return nil
}

// StopPose stops the running pose session.
//
// Returns:
//   - error: ErrPoseNotActive when no pose session is running
func (m *Monitor) StopPose() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.State() != SessionPose {
		return ErrPoseNotActive
	}

	s := m.session
	s.cancel()
	m.session = nil
	m.transitionState(SessionPose, SessionIdle)

	return nil
}

// runPose is the pose session worker goroutine.
func (m *Monitor) runPose(ctx context.Context, s *session, src types.VideoSource) {
	defer m.wg.Done()

	m.captureLoop(ctx, src, SessionPose, m.cfg.PoseInterval, m.processPoseFrame)

	if err := src.Close(); err != nil {
		m.logError("failed to close video source", "session", SessionPose.String(), "error", err)
	}

	m.finishSession(s)
}

// processPoseFrame runs one pose inference pass over a frame.
//
// Persons below the confidence floor are dropped whole. A raised hand is
// attributed through the desk registry: the hip midpoint (scaled from
// normalized keypoints to frame pixels) selects the zone, the zone selects
// the student. Unassigned zones and positions outside every zone attribute
// nothing. Records are written only inside a class period and debounced by
// the cooldown engine.
func (m *Monitor) processPoseFrame(ctx context.Context, frame *types.Frame) error {
	poses, err := m.estimator.Estimate(ctx, frame)
	if err != nil {
		return fmt.Errorf("estimate poses: %w", err)
	}
	if len(poses) == 0 {
		return nil
	}

	now := time.Now()
	period, reason := m.schedule.Current(now)

	for _, pose := range poses {
		if pose.Confidence < m.cfg.MinPersonConfidence {
			continue
		}
		if !gesture.HandRaised(pose, m.cfg.MinKeypointConfidence) {
			continue
		}

		nx, ny, ok := gesture.HipMidpoint(pose, m.cfg.MinKeypointConfidence)
		if !ok {
			continue
		}
		x := nx * float64(frame.Width)
		y := ny * float64(frame.Height)

		zone, ok := m.desks.ZoneAt(x, y)
		if !ok {
			continue
		}
		// Lookup reports ok with an empty occupant for a configured but
		// vacant desk; both cases attribute nothing.
		studentID, ok := m.desks.Lookup(zone)
		if !ok || studentID == "" {
			m.logger.Debug("raised hand in unassigned zone", "zone", zone)

			continue
		}

		if reason != schedule.ReasonInPeriod {
			m.logger.Debug("participation outside class period",
				"student_id", studentID,
				"reason", reason.String(),
			)

			continue
		}

		record, err := m.participation.ShouldRecord(ctx, studentID, period, now)
		if err != nil {
			return fmt.Errorf("check participation cooldown: %w", err)
		}
		if !record {
			continue
		}

		if err := m.store.RecordParticipation(ctx, studentID, period, now, m.cfg.ParticipationPoints); err != nil {
			return fmt.Errorf("record participation: %w", err)
		}
		m.participation.MarkRecorded(studentID, period, now)
		m.metrics.RecordParticipation(period)
		m.logger.Info("participation recorded",
			"student_id", studentID,
			"period", period,
			"zone", zone,
			"points", m.cfg.ParticipationPoints,
		)

		if m.hooks.OnParticipationRecorded != nil {
			ev := types.ParticipationEvent{
				StudentID: studentID,
				Period:    period,
				Timestamp: now,
				Points:    m.cfg.ParticipationPoints,
			}
			go func() {
				if err := m.hooks.OnParticipationRecorded(context.Background(), ev); err != nil {
					m.logError("participation hook error", "student_id", ev.StudentID, "error", err)
				}
			}()
		}
	}

	return nil
}
