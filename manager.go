package vigia

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chungastico/vigia/dedup"
	"github.com/chungastico/vigia/desks"
	"github.com/chungastico/vigia/internal/hooks"
	"github.com/chungastico/vigia/internal/logging"
	"github.com/chungastico/vigia/internal/metrics"
	"github.com/chungastico/vigia/schedule"
)

// Monitor supervises classroom camera monitoring sessions.
//
// Monitor is the main entry point of the Vigia library. It handles:
//   - Attendance sessions: face recognition against the enrolled gallery,
//     with at-most-once recording per student, period, and day
//   - Pose sessions: raised-hand detection mapped to desk zones, with
//     cooldown-debounced participation recording
//   - The class schedule gate: records are only written inside configured
//     class periods on class days
//   - Desk zone assignments mapping frame regions to students
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Session transitions are serialized; at most one session (attendance
//     or pose) is active at any instant
//
// Lifecycle:
//   - Create with NewMonitor()
//   - Call StartAttendance() or StartPose() to begin a session
//   - Use hooks to react to recorded events
//   - Call Shutdown() for graceful teardown
type Monitor struct {
	cfg     Config
	store   Store
	camera  VideoOpener
	encoder FaceEncoder

	// Optional dependencies
	estimator PoseEstimator
	hooks     *Hooks
	metrics   MetricsCollector
	logger    Logger

	// Internal components
	schedule      *schedule.Schedule
	desks         *desks.Registry
	attendance    *dedup.Attendance
	participation *dedup.Participation

	// State management
	state atomic.Int32 // SessionState

	// Lifecycle management
	mu      sync.Mutex
	session *session
	wg      sync.WaitGroup
}

// Status is a point-in-time snapshot of the Monitor for status endpoints.
type Status struct {
	// State is the current session state.
	State SessionState `json:"state"`

	// AttendanceActive reports whether an attendance session is running.
	AttendanceActive bool `json:"attendanceActive"`

	// PoseActive reports whether a pose session is running.
	PoseActive bool `json:"poseActive"`

	// CurrentPeriod is the active class period name, "" when none.
	CurrentPeriod string `json:"currentPeriod"`

	// PeriodReason explains the period lookup outcome ("in period",
	// "no active period", "not a class day").
	PeriodReason string `json:"periodReason"`
}

// NewMonitor creates a new Monitor instance with the provided configuration.
//
// Returns a concrete *Monitor struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration with parsed durations
//   - store: Persistence store for students and monitoring records
//   - camera: Video opener used by each session
//   - encoder: Face locator and embedding encoder
//   - opts: Optional configuration (pose estimator, hooks, metrics, logger)
//
// Returns:
//   - *Monitor: Initialized monitor instance
//   - error: Validation error if configuration or dependencies are invalid
//
// Example:
//
//	cfg := vigia.DefaultConfig()
//	mon, err := vigia.NewMonitor(&cfg, store, camera, encoder,
//	    vigia.WithPoseEstimator(estimator))
func NewMonitor(cfg *Config, store Store, camera VideoOpener, encoder FaceEncoder, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if camera == nil {
		return nil, ErrCameraRequired
	}
	if encoder == nil {
		return nil, ErrFaceEncoderRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Apply options
	options := &monitorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	hooksInstance := options.hooks
	if hooksInstance == nil {
		nopHooks := hooks.NewNop()
		hooksInstance = &nopHooks
	}

	// Validation already checked these parse
	days, err := cfg.classDays()
	if err != nil {
		return nil, err
	}
	periods, err := cfg.periods()
	if err != nil {
		return nil, err
	}
	zones, err := cfg.zones()
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		cfg:           *cfg,
		store:         store,
		camera:        camera,
		encoder:       encoder,
		estimator:     options.estimator,
		hooks:         hooksInstance,
		metrics:       metricsCollector,
		logger:        loggerInstance,
		schedule:      schedule.New(periods, days),
		desks:         desks.NewRegistry(zones),
		attendance:    dedup.NewAttendance(store),
		participation: dedup.NewParticipation(store, cfg.ParticipationCooldown),
	}

	m.state.Store(int32(SessionIdle))

	return m, nil
}

// State returns the current session state.
//
// Returns:
//   - SessionState: Current session state
func (m *Monitor) State() SessionState {
	return SessionState(m.state.Load())
}

// Desks returns the desk assignment registry.
//
// Assignments may change at any time, including while a pose session is
// running; each inference tick reads the current mapping.
//
// Returns:
//   - *desks.Registry: Live zone-to-student registry
func (m *Monitor) Desks() *desks.Registry {
	return m.desks
}

// CurrentPeriod returns the class period active right now.
//
// Returns:
//   - string: Period name, "" when no period is active
//   - schedule.Reason: Why the lookup matched or did not
func (m *Monitor) CurrentPeriod() (string, schedule.Reason) {
	return m.schedule.Current(time.Now())
}

// Status returns a snapshot of the monitor state for status endpoints.
//
// Returns:
//   - Status: Session flags and the current class period
func (m *Monitor) Status() Status {
	state := m.State()
	period, reason := m.CurrentPeriod()

	return Status{
		State:            state,
		AttendanceActive: state == SessionAttendance,
		PoseActive:       state == SessionPose,
		CurrentPeriod:    period,
		PeriodReason:     reason.String(),
	}
}

// Shutdown stops any active session and waits for workers to finish.
//
// Safe to call multiple times and with no session active.
//
// Parameters:
//   - ctx: Context for shutdown timeout
//
// Returns:
//   - error: ctx.Err() when workers do not finish before the deadline
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if s := m.session; s != nil {
		s.cancel()
		m.session = nil
		m.transitionState(m.State(), SessionIdle)
	}
	m.mu.Unlock()

	// Wait for workers with the caller's deadline
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown: %w", ctx.Err())
	}
}

// transitionState transitions to a new session state and triggers hooks.
func (m *Monitor) transitionState(from, to SessionState) {
	if from == to {
		return
	}

	m.state.Store(int32(to))

	m.logger.Info("session transition",
		"from", from.String(),
		"to", to.String(),
	)

	// Trigger state change hook
	if m.hooks.OnSessionChanged != nil {
		// Run hook in background to avoid blocking session control
		go func() {
			if err := m.hooks.OnSessionChanged(context.Background(), from, to); err != nil {
				m.logError("session change hook error", "from", from, "to", to, "error", err)
			}
		}()
	}

	// Record metrics (always non-nil, defaults to nopMetrics)
	m.metrics.RecordSessionTransition(from, to)
}

// notifyError reports a recoverable worker error through the error hook.
func (m *Monitor) notifyError(err error) {
	if m.hooks.OnError == nil {
		return
	}

	go func() {
		if hookErr := m.hooks.OnError(context.Background(), err); hookErr != nil {
			m.logError("error hook failed", "error", hookErr)
		}
	}()
}

// logError logs an error message.
func (m *Monitor) logError(msg string, keysAndValues ...any) {
	// Logger is always non-nil (defaults to nopLogger)
	m.logger.Error(msg, keysAndValues...)
}
