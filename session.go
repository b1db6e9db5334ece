package vigia

import (
	"context"
	"fmt"
	"time"

	"github.com/chungastico/vigia/types"
)

// session is one running monitoring worker. The Monitor holds at most one.
//
// Stop flips the public state to idle and detaches the session immediately;
// the worker goroutine releases the video source afterwards. finishSession
// only clears Monitor state when the session is still attached, so a worker
// self-stop races safely with an explicit stop. Shutdown waits for worker
// exit through the Monitor's WaitGroup.
type session struct {
	kind   SessionState
	cancel context.CancelFunc
}

// finishSession clears the session on worker exit if still attached.
func (m *Monitor) finishSession(s *session) {
	m.mu.Lock()
	if m.session == s {
		m.session = nil
		m.transitionState(s.kind, SessionIdle)
	}
	m.mu.Unlock()
}

// captureLoop pulls frames continuously and hands one to process at each
// cadence interval. Frames between inference passes are pulled and dropped,
// keeping the source drained at its native rate.
//
// A failed read is transient: capture is retried after CaptureRetryDelay.
// MaxCaptureFailures consecutive failures mark the source unrecoverable and
// end the loop, which self-stops the session. Processing errors never end
// the loop; they are logged and reported through OnError.
func (m *Monitor) captureLoop(ctx context.Context, src types.VideoSource, kind SessionState, interval time.Duration, process func(context.Context, *types.Frame) error) {
	var lastProcess time.Time

	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}

		frame, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			failures++
			m.metrics.RecordCaptureFailure(kind)
			m.logger.Warn("frame capture failed",
				"session", kind.String(),
				"consecutive_failures", failures,
				"error", err,
			)
			m.notifyError(fmt.Errorf("capture frame: %w", err))

			if failures >= m.cfg.MaxCaptureFailures {
				m.logError("video source unrecoverable, stopping session",
					"session", kind.String(),
					"consecutive_failures", failures,
				)

				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(m.cfg.CaptureRetryDelay):
			}

			continue
		}

		failures = 0
		m.metrics.RecordFrame(kind)

		now := time.Now()
		if now.Sub(lastProcess) < interval {
			continue
		}

		lastProcess = now

		if err := process(ctx, frame); err != nil {
			if ctx.Err() != nil {
				return
			}

			m.logger.Warn("frame processing failed",
				"session", kind.String(),
				"error", err,
			)
			m.notifyError(err)
		}
	}
}
