package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Check-in metrics
	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_checkins_total",
			Help: "Total number of check-in attempts by outcome",
		},
		[]string{"outcome"}, // committed, too_far, duplicate_device, duplicate_student, ...
	)

	// Session metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "attendance_active_sessions",
			Help: "Current number of live attendance sessions",
		},
	)

	SessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_sessions_created_total",
			Help: "Total number of attendance sessions created",
		},
	)

	SessionsSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_sessions_swept_total",
			Help: "Total number of sessions removed by the expiry sweep",
		},
	)

	// Export metrics
	ExportErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_export_errors_total",
			Help: "Total number of failed CSV export attempts",
		},
	)
)

// TrackCheckIn records the outcome of one check-in attempt.
func TrackCheckIn(outcome string) {
	CheckInsTotal.WithLabelValues(outcome).Inc()
}

// UpdateActiveSessions sets the current number of live sessions.
func UpdateActiveSessions(count float64) {
	ActiveSessions.Set(count)
}

// TrackSessionCreated increments the session creation counter.
func TrackSessionCreated() {
	SessionsCreatedTotal.Inc()
}

// TrackSessionsSwept adds swept sessions to the sweep counter.
func TrackSessionsSwept(count int) {
	SessionsSweptTotal.Add(float64(count))
}

// TrackExportError increments the export failure counter.
func TrackExportError() {
	ExportErrorsTotal.Inc()
}
