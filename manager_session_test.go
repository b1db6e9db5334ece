package vigia

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vigiatest "github.com/chungastico/vigia/testing"
	"github.com/chungastico/vigia/types"
)

// sampleEmbedding is the enrolled face vector used by session tests.
var sampleEmbedding = []float64{0.1, 0.9, 0.2, 0.4}

func sessionStore(t *testing.T) *vigiatest.MemStore {
	t.Helper()

	store := vigiatest.NewMemStore()
	err := store.AddStudent(context.Background(), &types.Student{
		ID:         "s1",
		Name:       "Ana",
		Surname:    "Lopez",
		Embeddings: [][]float64{sampleEmbedding},
	})
	require.NoError(t, err)

	return store
}

// raisedHandPose places a person with a raised left hand whose hip midpoint
// lands at the given normalized coordinates.
func raisedHandPose(nx, ny float64) types.Pose {
	var pose types.Pose
	pose.Confidence = 0.9
	pose.Keypoints[types.KeypointLeftShoulder] = types.Keypoint{Y: 0.5, X: nx, Confidence: 0.9}
	pose.Keypoints[types.KeypointLeftWrist] = types.Keypoint{Y: 0.2, X: nx, Confidence: 0.9}
	pose.Keypoints[types.KeypointLeftHip] = types.Keypoint{Y: ny, X: nx, Confidence: 0.9}
	pose.Keypoints[types.KeypointRightHip] = types.Keypoint{Y: ny, X: nx, Confidence: 0.9}

	return pose
}

func TestMonitor_AttendanceSession(t *testing.T) {
	cfg := TestConfig()
	store := sessionStore(t)
	camera := &vigiatest.FakeCamera{}
	encoder := &vigiatest.StaticEncoder{Embeddings: [][]float64{sampleEmbedding}}

	mon, err := NewMonitor(&cfg, store, camera, encoder,
		WithLogger(vigiatest.NewTestLogger(t)))
	require.NoError(t, err)

	require.NoError(t, mon.StartAttendance(context.Background()))
	require.Equal(t, SessionAttendance, mon.State())
	require.True(t, mon.Status().AttendanceActive)

	// The matched student is recorded exactly once despite the worker
	// matching on every recognition pass
	require.Eventually(t, func() bool {
		return len(store.AttendanceEvents()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	events := store.AttendanceEvents()
	require.Len(t, events, 1)
	require.Equal(t, "s1", events[0].StudentID)
	require.Equal(t, "Clase 1", events[0].Period)

	require.NoError(t, mon.StopAttendance())
	require.Equal(t, SessionIdle, mon.State())

	// The worker releases the camera in the background
	require.Eventually(t, func() bool {
		sources := camera.Sources()

		return len(sources) == 1 && sources[0].Closed()
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, mon.Shutdown(context.Background()))
}

func TestMonitor_AttendanceUnknownFace(t *testing.T) {
	cfg := TestConfig()
	store := sessionStore(t)
	camera := &vigiatest.FakeCamera{}
	// Scripted face far from the enrolled embedding
	encoder := &vigiatest.StaticEncoder{Embeddings: [][]float64{{5, 5, 5, 5}}}

	mon, err := NewMonitor(&cfg, store, camera, encoder)
	require.NoError(t, err)

	require.NoError(t, mon.StartAttendance(context.Background()))

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, store.AttendanceEvents())

	require.NoError(t, mon.StopAttendance())
	require.NoError(t, mon.Shutdown(context.Background()))
}

func TestMonitor_StartAttendance_Failures(t *testing.T) {
	cfg := TestConfig()

	t.Run("no enrolled students", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, vigiatest.NewMemStore(), &vigiatest.FakeCamera{}, &vigiatest.StaticEncoder{})
		require.NoError(t, err)

		err = mon.StartAttendance(context.Background())
		require.ErrorIs(t, err, ErrNoEnrolledStudents)
		require.Equal(t, SessionIdle, mon.State())
	})

	t.Run("camera open failure", func(t *testing.T) {
		camera := &vigiatest.FakeCamera{OpenErr: errors.New("device busy")}
		mon, err := NewMonitor(&cfg, sessionStore(t), camera, &vigiatest.StaticEncoder{})
		require.NoError(t, err)

		err = mon.StartAttendance(context.Background())
		require.Error(t, err)
		require.Equal(t, SessionIdle, mon.State())
	})

	t.Run("already active", func(t *testing.T) {
		store := sessionStore(t)
		encoder := &vigiatest.StaticEncoder{Embeddings: [][]float64{sampleEmbedding}}
		mon, err := NewMonitor(&cfg, store, &vigiatest.FakeCamera{}, encoder)
		require.NoError(t, err)

		require.NoError(t, mon.StartAttendance(context.Background()))
		require.ErrorIs(t, mon.StartAttendance(context.Background()), ErrAttendanceActive)

		require.NoError(t, mon.StopAttendance())
		require.NoError(t, mon.Shutdown(context.Background()))
	})
}

func TestMonitor_PoseSession(t *testing.T) {
	cfg := TestConfig()
	store := sessionStore(t)
	camera := &vigiatest.FakeCamera{}

	// Hip midpoint at pixel (150, 200) on a 640x480 frame, inside Pupitre 1
	estimator := &vigiatest.StaticEstimator{
		Poses: []types.Pose{raisedHandPose(150.0/640.0, 200.0/480.0)},
	}

	mon, err := NewMonitor(&cfg, store, camera, &vigiatest.StaticEncoder{},
		WithPoseEstimator(estimator),
		WithLogger(vigiatest.NewTestLogger(t)))
	require.NoError(t, err)

	require.NoError(t, mon.Desks().Assign("Pupitre 1", "s1"))

	require.NoError(t, mon.StartPose(context.Background()))
	require.Equal(t, SessionPose, mon.State())
	require.True(t, mon.Status().PoseActive)

	require.Eventually(t, func() bool {
		return len(store.ParticipationEvents()) == 1
	}, time.Second, 5*time.Millisecond)

	// The cooldown suppresses further records for the same student
	time.Sleep(30 * time.Millisecond)
	events := store.ParticipationEvents()
	require.Len(t, events, 1)
	require.Equal(t, "s1", events[0].StudentID)
	require.Equal(t, "Clase 1", events[0].Period)
	require.Equal(t, cfg.ParticipationPoints, events[0].Points)

	require.NoError(t, mon.StopPose())
	require.Equal(t, SessionIdle, mon.State())
	require.NoError(t, mon.Shutdown(context.Background()))
}

func TestMonitor_PoseUnassignedZone(t *testing.T) {
	cfg := TestConfig()
	store := sessionStore(t)

	estimator := &vigiatest.StaticEstimator{
		Poses: []types.Pose{raisedHandPose(150.0/640.0, 200.0/480.0)},
	}

	mon, err := NewMonitor(&cfg, store, &vigiatest.FakeCamera{}, &vigiatest.StaticEncoder{},
		WithPoseEstimator(estimator),
		WithLogger(vigiatest.NewTestLogger(t)))
	require.NoError(t, err)

	// "Pupitre 1" is configured but vacant: the raised hand over it must
	// attribute to nobody, never to an empty student ID.
	id, ok := mon.Desks().Lookup("Pupitre 1")
	require.True(t, ok)
	require.Empty(t, id)

	require.NoError(t, mon.StartPose(context.Background()))

	time.Sleep(50 * time.Millisecond)
	require.Empty(t, store.ParticipationEvents())

	require.NoError(t, mon.StopPose())
	require.NoError(t, mon.Shutdown(context.Background()))
}

func TestMonitor_StartPose_Failures(t *testing.T) {
	cfg := TestConfig()

	t.Run("no estimator", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, sessionStore(t), &vigiatest.FakeCamera{}, &vigiatest.StaticEncoder{})
		require.NoError(t, err)

		require.ErrorIs(t, mon.StartPose(context.Background()), ErrPoseUnavailable)
		require.Equal(t, SessionIdle, mon.State())
	})

	t.Run("already active", func(t *testing.T) {
		mon, err := NewMonitor(&cfg, sessionStore(t), &vigiatest.FakeCamera{}, &vigiatest.StaticEncoder{},
			WithPoseEstimator(&vigiatest.StaticEstimator{}))
		require.NoError(t, err)

		require.NoError(t, mon.StartPose(context.Background()))
		require.ErrorIs(t, mon.StartPose(context.Background()), ErrPoseActive)

		require.NoError(t, mon.StopPose())
		require.NoError(t, mon.Shutdown(context.Background()))
	})
}

func TestMonitor_SessionExclusion(t *testing.T) {
	cfg := TestConfig()
	store := sessionStore(t)
	encoder := &vigiatest.StaticEncoder{Embeddings: [][]float64{sampleEmbedding}}

	mon, err := NewMonitor(&cfg, store, &vigiatest.FakeCamera{}, encoder,
		WithPoseEstimator(&vigiatest.StaticEstimator{}))
	require.NoError(t, err)

	// Attendance blocks pose
	require.NoError(t, mon.StartAttendance(context.Background()))
	require.ErrorIs(t, mon.StartPose(context.Background()), ErrAttendanceActive)

	// Stopping the wrong session kind is rejected
	require.ErrorIs(t, mon.StopPose(), ErrPoseNotActive)

	// Stop-then-start the other kind succeeds without waiting for the
	// worker to finish releasing the camera
	require.NoError(t, mon.StopAttendance())
	require.NoError(t, mon.StartPose(context.Background()))
	require.ErrorIs(t, mon.StartAttendance(context.Background()), ErrPoseActive)

	require.NoError(t, mon.StopPose())
	require.ErrorIs(t, mon.StopAttendance(), ErrAttendanceNotActive)

	require.NoError(t, mon.Shutdown(context.Background()))
}

func TestMonitor_CaptureFailureSelfStop(t *testing.T) {
	cfg := TestConfig() // MaxCaptureFailures is 3
	store := sessionStore(t)
	camera := &vigiatest.FakeCamera{
		ReadErr:   errors.New("read timeout"),
		FailAfter: 1,
	}
	encoder := &vigiatest.StaticEncoder{Embeddings: [][]float64{sampleEmbedding}}

	mon, err := NewMonitor(&cfg, store, camera, encoder)
	require.NoError(t, err)

	require.NoError(t, mon.StartAttendance(context.Background()))

	// The worker exhausts its failure budget and returns to idle on its own
	require.Eventually(t, func() bool {
		return mon.State() == SessionIdle
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		sources := camera.Sources()

		return len(sources) == 1 && sources[0].Closed()
	}, time.Second, 5*time.Millisecond)

	// A fresh start opens a new source
	camera.ReadErr = nil
	require.NoError(t, mon.StartAttendance(context.Background()))
	require.NoError(t, mon.StopAttendance())
	require.NoError(t, mon.Shutdown(context.Background()))
}

func TestMonitor_Shutdown(t *testing.T) {
	cfg := TestConfig()
	store := sessionStore(t)
	camera := &vigiatest.FakeCamera{}
	encoder := &vigiatest.StaticEncoder{Embeddings: [][]float64{sampleEmbedding}}

	mon, err := NewMonitor(&cfg, store, camera, encoder,
		WithLogger(vigiatest.NewTestLogger(t)))
	require.NoError(t, err)

	require.NoError(t, mon.StartAttendance(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, mon.Shutdown(ctx))
	require.Equal(t, SessionIdle, mon.State())

	sources := camera.Sources()
	require.Len(t, sources, 1)
	require.True(t, sources[0].Closed())
}

func TestMonitor_SessionChangeHook(t *testing.T) {
	cfg := TestConfig()
	store := sessionStore(t)
	encoder := &vigiatest.StaticEncoder{Embeddings: [][]float64{sampleEmbedding}}

	transitions := make(chan [2]SessionState, 8)
	hooks := &Hooks{
		OnSessionChanged: func(_ context.Context, from, to SessionState) error {
			transitions <- [2]SessionState{from, to}

			return nil
		},
	}

	mon, err := NewMonitor(&cfg, store, &vigiatest.FakeCamera{}, encoder, WithHooks(hooks))
	require.NoError(t, err)

	require.NoError(t, mon.StartAttendance(context.Background()))
	require.NoError(t, mon.StopAttendance())
	require.NoError(t, mon.Shutdown(context.Background()))

	// Hooks run asynchronously; collect both transitions
	var got [][2]SessionState
	for len(got) < 2 {
		select {
		case tr := <-transitions:
			got = append(got, tr)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for transitions, got %v", got)
		}
	}

	require.Contains(t, got, [2]SessionState{SessionIdle, SessionAttendance})
	require.Contains(t, got, [2]SessionState{SessionAttendance, SessionIdle})
}
