package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the workflow counters. A nil *Metrics is valid and records
// nothing, so services built in tests need no registry.
type Metrics struct {
	registry *prometheus.Registry

	transitions   *prometheus.CounterVec
	verifications *prometheus.CounterVec
	created       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venuebooking",
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions by action and outcome.",
		}, []string{"action", "outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venuebooking",
			Name:      "document_verifications_total",
			Help:      "Document verifications, labelled by whether the booking returned to pending.",
		}, []string{"auto_transition"}),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venuebooking",
			Name:      "bookings_created_total",
			Help:      "Bookings created by handling department.",
		}, []string{"handled_by"}),
	}
	reg.MustRegister(m.transitions, m.verifications, m.created)
	return m
}

// Transition counts an action attempt; outcome is "ok" or an error kind.
func (m *Metrics) Transition(action, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) Verification(autoTransition bool) {
	if m == nil {
		return
	}
	label := "false"
	if autoTransition {
		label = "true"
	}
	m.verifications.WithLabelValues(label).Inc()
}

func (m *Metrics) Created(handledBy string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(handledBy).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
