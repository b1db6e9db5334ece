// Package vigia provides a Go library for classroom camera monitoring:
// face-recognition attendance and pose-based participation tracking,
// gated by a class period schedule.
//
// Vigia supervises a single shared camera. At most one monitoring session
// runs at a time: an attendance session matches detected faces against the
// enrolled student gallery and records each student at most once per class
// period per day, while a pose session detects raised hands, attributes
// them to students through desk zone assignments, and records
// cooldown-debounced participation points.
//
// # Quick Start
//
// Basic usage with the default classroom configuration:
//
//	import "github.com/chungastico/vigia"
//
//	cfg := vigia.DefaultConfig()
//	mon, err := vigia.NewMonitor(&cfg, store, camera, encoder,
//	    vigia.WithPoseEstimator(estimator))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := mon.StartAttendance(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer mon.Shutdown(context.Background())
//
// # Key Features
//
//   - Exclusive Sessions: attendance and pose sessions never run
//     concurrently; starting one while the other is active is rejected
//   - Schedule Gate: records are only written during configured class
//     periods on class days
//   - Attendance Dedup: at most one attendance record per student, period,
//     and calendar day
//   - Participation Debounce: a per-student, per-period cooldown prevents
//     a held-up hand from farming points
//   - Desk Zones: frame-space rectangles map detected persons to students
//
// # Architecture
//
// The session state machine is small and flat:
//
//	Idle → Attendance → Idle
//	Idle → Pose → Idle
//
// Stopping a session returns the monitor to idle immediately; the worker
// goroutine releases the camera in the background. A worker that exhausts
// its capture failure budget self-stops through the same path.
//
// Model inference (face embedding, pose estimation) sits behind the
// FaceEncoder and PoseEstimator interfaces; the library ships no model
// runtime. The testing subpackage provides fakes for all collaborators.
//
// See the examples/ directory for complete working examples.
package vigia
