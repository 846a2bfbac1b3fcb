package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking flows.
type BookingMetrics struct {
	submissions *prometheus.CounterVec
	clears      *prometheus.CounterVec
	exports     *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "magicalhair",
			Subsystem: "citas",
			Name:      "submissions_total",
			Help:      "Appointment submissions by outcome",
		}, []string{"outcome"}),
		clears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "magicalhair",
			Subsystem: "citas",
			Name:      "clears_total",
			Help:      "Clear requests by outcome",
		}, []string{"outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "magicalhair",
			Subsystem: "citas",
			Name:      "exports_total",
			Help:      "Export requests by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.clears, m.exports)
	return m
}

// ObserveSubmission records "accepted", "error" or the rejected field name.
func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveClear(confirmed bool) {
	if m == nil {
		return
	}
	outcome := "declined"
	if confirmed {
		outcome = "confirmed"
	}
	m.clears.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveExport(outcome string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(outcome).Inc()
}
