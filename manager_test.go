package vigia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	vigiatest "github.com/chungastico/vigia/testing"
)

func TestNewMonitor_NilSafety(t *testing.T) {
	cfg := TestConfig()
	store := vigiatest.NewMemStore()
	camera := &vigiatest.FakeCamera{}
	encoder := &vigiatest.StaticEncoder{}

	t.Run("without optional dependencies", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, store, camera, encoder)

		require.NoError(t, err)
		require.NotNil(t, mon)

		// Verify optional fields get safe defaults (not nil)
		require.NotNil(t, mon.hooks)   // defaults to NopHooks
		require.NotNil(t, mon.metrics) // defaults to NopMetrics
		require.NotNil(t, mon.logger)  // defaults to NopLogger
		require.Nil(t, mon.estimator)  // estimator stays nil without WithPoseEstimator

		// Verify internal methods don't panic even without custom implementations
		require.NotPanics(t, func() {
			mon.logError("test error", "key", "value")
			mon.transitionState(SessionIdle, SessionAttendance)
			mon.transitionState(SessionAttendance, SessionIdle)
		})
	})

	t.Run("accepts optional hooks", func(t *testing.T) {
		hooks := &Hooks{}
		mon, err := NewMonitor(&cfg, store, camera, encoder, WithHooks(hooks))

		require.NoError(t, err)
		require.NotNil(t, mon)
	})

	t.Run("accepts pose estimator", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, store, camera, encoder,
			WithPoseEstimator(&vigiatest.StaticEstimator{}))

		require.NoError(t, err)
		require.NotNil(t, mon.estimator)
	})
}

func TestNewMonitor_RequiredParameters(t *testing.T) {
	cfg := TestConfig()
	store := vigiatest.NewMemStore()
	camera := &vigiatest.FakeCamera{}
	encoder := &vigiatest.StaticEncoder{}

	t.Run("nil config", func(t *testing.T) {
		mon, err := NewMonitor(nil, store, camera, encoder)

		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, mon)
	})

	t.Run("nil store", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, nil, camera, encoder)

		require.Error(t, err)
		require.ErrorIs(t, err, ErrStoreRequired)
		require.Nil(t, mon)
	})

	t.Run("nil camera", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, store, nil, encoder)

		require.Error(t, err)
		require.ErrorIs(t, err, ErrCameraRequired)
		require.Nil(t, mon)
	})

	t.Run("nil encoder", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, store, camera, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, ErrFaceEncoderRequired)
		require.Nil(t, mon)
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := TestConfig()
		bad.MatchTolerance = -1

		mon, err := NewMonitor(&bad, store, camera, encoder)

		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, mon)
	})
}

func TestMonitor_InitialState(t *testing.T) {
	cfg := TestConfig()
	mon, err := NewMonitor(&cfg, vigiatest.NewMemStore(), &vigiatest.FakeCamera{}, &vigiatest.StaticEncoder{})
	require.NoError(t, err)

	require.Equal(t, SessionIdle, mon.State())

	status := mon.Status()
	require.Equal(t, SessionIdle, status.State)
	require.False(t, status.AttendanceActive)
	require.False(t, status.PoseActive)

	// Shutdown with no session is a no-op
	require.NoError(t, mon.Shutdown(context.Background()))
}

func TestMonitor_StatusPeriod(t *testing.T) {
	// TestConfig keeps one period open around the clock
	cfg := TestConfig()
	mon, err := NewMonitor(&cfg, vigiatest.NewMemStore(), &vigiatest.FakeCamera{}, &vigiatest.StaticEncoder{})
	require.NoError(t, err)

	status := mon.Status()
	require.Equal(t, "Clase 1", status.CurrentPeriod)
	require.Equal(t, "in period", status.PeriodReason)
}
