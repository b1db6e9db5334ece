// Package types provides core type definitions and interfaces for the Vigia library.
//
// This package contains shared types that are used across multiple packages in
// the Vigia library. By keeping these types in a separate package, we avoid
// import cycles between the main vigia package and its internal implementations.
//
// Key types:
//   - SessionState: Monitoring session lifecycle state
//   - Student, AttendanceEvent, ParticipationEvent: Persisted domain records
//   - Pose, Keypoint: Fixed 17-point body keypoint layout
//   - VideoSource, FaceEncoder, PoseEstimator, Store: Injected collaborators
//   - Logger, MetricsCollector, Hooks: Observability surfaces
package types
