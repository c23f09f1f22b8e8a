package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's prometheus instruments. Constructed once in
// main against the default registerer; tests pass a fresh registry.
type Metrics struct {
	RegistrationsTotal       prometheus.Counter
	ImmutableFieldDropsTotal prometheus.Counter
	FieldResolutionsTotal    prometheus.Counter
	ProfilesSeededTotal      prometheus.Counter
	HTTPRequestDuration      *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nscc_registrations_total",
			Help: "Total number of successful event registrations",
		}),
		ImmutableFieldDropsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nscc_immutable_field_drops_total",
			Help: "Total number of submitted values dropped because the field is immutable",
		}),
		FieldResolutionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nscc_field_resolutions_total",
			Help: "Total number of required-field resolutions served",
		}),
		ProfilesSeededTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "nscc_profiles_seeded_total",
			Help: "Total number of profiles created lazily from identity claims",
		}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nscc_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncrementRegistrations() {
	m.RegistrationsTotal.Inc()
}

func (m *Metrics) IncrementImmutableFieldDrops() {
	m.ImmutableFieldDropsTotal.Inc()
}

func (m *Metrics) IncrementFieldResolutions() {
	m.FieldResolutionsTotal.Inc()
}

func (m *Metrics) IncrementProfilesSeeded() {
	m.ProfilesSeededTotal.Inc()
}
