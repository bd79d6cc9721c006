package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the application.
type Metrics struct {
	RequestsCreated      prometheus.Counter
	AcceptancesRecorded  prometheus.Counter
	DonationsCompleted   prometheus.Counter
	NotificationsEmitted prometheus.Counter
}

// New registers the counters on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the counters on the given registerer. Tests pass a fresh
// registry to avoid duplicate registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "donor_network_blood_requests_created_total",
			Help: "Total number of blood requests created",
		}),
		AcceptancesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "donor_network_acceptances_recorded_total",
			Help: "Total number of acceptances recorded",
		}),
		DonationsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "donor_network_donations_completed_total",
			Help: "Total number of completed donations",
		}),
		NotificationsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "donor_network_notifications_emitted_total",
			Help: "Total number of notifications emitted",
		}),
	}
}
