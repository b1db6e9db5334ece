// Package metrics provides MetricsCollector implementations for the Vigia
// library.
package metrics

import "github.com/chungastico/vigia/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	collector := metrics.NewNop()
//	mon := vigia.NewMonitor(&cfg, store, camera, encoder, vigia.WithMetrics(collector))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordSessionTransition discards the session transition metric.
func (n *NopMetrics) RecordSessionTransition(_ /* from */, _ /* to */ types.SessionState) {
	// No-op
}

// RecordFrame discards the frame metric.
func (n *NopMetrics) RecordFrame(_ /* session */ types.SessionState) {
	// No-op
}

// RecordCaptureFailure discards the capture failure metric.
func (n *NopMetrics) RecordCaptureFailure(_ /* session */ types.SessionState) {
	// No-op
}

// RecordMatch discards the face match metric.
func (n *NopMetrics) RecordMatch(_ /* known */ bool) {
	// No-op
}

// RecordAttendance discards the attendance metric.
func (n *NopMetrics) RecordAttendance(_ /* period */ string) {
	// No-op
}

// RecordParticipation discards the participation metric.
func (n *NopMetrics) RecordParticipation(_ /* period */ string) {
	// No-op
}

// RecordGalleryRebuild discards the gallery rebuild metric.
func (n *NopMetrics) RecordGalleryRebuild(_ /* entries */ int) {
	// No-op
}
