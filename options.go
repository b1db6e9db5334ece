package vigia

// Option configures a Monitor with optional dependencies.
type Option func(*monitorOptions)

// monitorOptions holds optional Monitor configuration.
type monitorOptions struct {
	estimator PoseEstimator
	hooks     *Hooks
	metrics   MetricsCollector
	logger    Logger
}

// WithPoseEstimator sets the pose estimator used by pose sessions.
//
// Without an estimator, StartPose returns ErrPoseUnavailable; attendance
// sessions are unaffected.
//
// Parameters:
//   - estimator: PoseEstimator implementation
//
// Returns:
//   - Option: Functional option for NewMonitor
func WithPoseEstimator(estimator PoseEstimator) Option {
	return func(o *monitorOptions) {
		o.estimator = estimator
	}
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewMonitor
//
// Example:
//
//	hooks := &vigia.Hooks{
//	    OnAttendanceRecorded: func(ctx context.Context, ev vigia.AttendanceEvent) error {
//	        return publish(ev)
//	    },
//	}
//	mon := vigia.NewMonitor(&cfg, store, camera, encoder, vigia.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *monitorOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewMonitor
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *monitorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with slog adapters)
//
// Returns:
//   - Option: Functional option for NewMonitor
func WithLogger(logger Logger) Option {
	return func(o *monitorOptions) {
		o.logger = logger
	}
}
