package types

// MetricsCollector records Monitor operational metrics.
//
// Implementations must be safe for concurrent use; all methods are called
// from monitoring workers on the frame path and must be cheap.
type MetricsCollector interface {
	// RecordSessionTransition records a session state change.
	RecordSessionTransition(from, to SessionState)

	// RecordFrame records a frame pulled from the video source.
	RecordFrame(session SessionState)

	// RecordCaptureFailure records a failed frame read.
	RecordCaptureFailure(session SessionState)

	// RecordMatch records a face match outcome (known vs unknown).
	RecordMatch(known bool)

	// RecordAttendance records a persisted attendance event.
	RecordAttendance(period string)

	// RecordParticipation records a persisted participation event.
	RecordParticipation(period string)

	// RecordGalleryRebuild records the entry count of a freshly built
	// match gallery.
	RecordGalleryRebuild(entries int)
}
