package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chungastico/vigia/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors register lazily on first use so constructing one never panics
// on duplicate registration before the caller decides on a registerer.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	sessionTransitions *prometheus.CounterVec
	frames             *prometheus.CounterVec
	captureFailures    *prometheus.CounterVec
	matches            *prometheus.CounterVec
	attendance         *prometheus.CounterVec
	participation      *prometheus.CounterVec
	galleryEntries     prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "vigia" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "vigia"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.sessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "session_transitions_total",
			Help:      "Total session state transitions by from and to state.",
		}, []string{"from", "to"})

		p.frames = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "frames_total",
			Help:      "Total frames pulled from the video source by session kind.",
		}, []string{"session"})

		p.captureFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "capture_failures_total",
			Help:      "Total failed frame reads by session kind.",
		}, []string{"session"})

		p.matches = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "face_matches_total",
			Help:      "Total face match outcomes by result (known or unknown).",
		}, []string{"result"})

		p.attendance = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "attendance_records_total",
			Help:      "Total persisted attendance records by class period.",
		}, []string{"period"})

		p.participation = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "participation_records_total",
			Help:      "Total persisted participation records by class period.",
		}, []string{"period"})

		p.galleryEntries = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "gallery_entries",
			Help:      "Embedding entry count of the most recently built match gallery.",
		})

		p.reg.MustRegister(
			p.sessionTransitions,
			p.frames,
			p.captureFailures,
			p.matches,
			p.attendance,
			p.participation,
			p.galleryEntries,
		)
	})
}

// RecordSessionTransition records a session state change.
func (p *PrometheusCollector) RecordSessionTransition(from, to types.SessionState) {
	p.ensureRegistered()
	p.sessionTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordFrame records a frame pulled from the video source.
func (p *PrometheusCollector) RecordFrame(session types.SessionState) {
	p.ensureRegistered()
	p.frames.WithLabelValues(session.String()).Inc()
}

// RecordCaptureFailure records a failed frame read.
func (p *PrometheusCollector) RecordCaptureFailure(session types.SessionState) {
	p.ensureRegistered()
	p.captureFailures.WithLabelValues(session.String()).Inc()
}

// RecordMatch records a face match outcome.
func (p *PrometheusCollector) RecordMatch(known bool) {
	p.ensureRegistered()
	result := "unknown"
	if known {
		result = "known"
	}
	p.matches.WithLabelValues(result).Inc()
}

// RecordAttendance records a persisted attendance event.
func (p *PrometheusCollector) RecordAttendance(period string) {
	p.ensureRegistered()
	p.attendance.WithLabelValues(period).Inc()
}

// RecordParticipation records a persisted participation event.
func (p *PrometheusCollector) RecordParticipation(period string) {
	p.ensureRegistered()
	p.participation.WithLabelValues(period).Inc()
}

// RecordGalleryRebuild records the entry count of a freshly built gallery.
func (p *PrometheusCollector) RecordGalleryRebuild(entries int) {
	p.ensureRegistered()
	p.galleryEntries.Set(float64(entries))
}
