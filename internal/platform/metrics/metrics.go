package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the matching engine. Methods are
// nil-safe so packages can run without metrics wired (tests, library use).
type Metrics struct {
	RequestsCreated      prometheus.Counter
	AcceptOutcomes       *prometheus.CounterVec
	DonationsConfirmed   prometheus.Counter
	NoShowsReported      prometheus.Counter
	NotificationsEmitted *prometheus.CounterVec
	ActionLatency        *prometheus.HistogramVec
}

// New creates a Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		RequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifelink_requests_created_total",
			Help: "Total blood requests created",
		}),

		AcceptOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelink_accept_outcomes_total",
			Help: "Accept attempts by outcome",
		}, []string{"outcome"}), // outcome: "accepted", "at_capacity", "duplicate", "ineligible", "fulfilled"

		DonationsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifelink_donations_confirmed_total",
			Help: "Total donations confirmed by requesters",
		}),

		NoShowsReported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifelink_no_shows_reported_total",
			Help: "Total donor no-shows reported",
		}),

		NotificationsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelink_notifications_emitted_total",
			Help: "Notifications emitted by category",
		}, []string{"category"}),

		ActionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lifelink_action_duration_seconds",
			Help:    "Duration of coordinator actions",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"action"}),
	}
}

// IncrementRequestsCreated records a created request.
func (m *Metrics) IncrementRequestsCreated() {
	if m != nil {
		m.RequestsCreated.Inc()
	}
}

// IncrementAcceptOutcome records an accept attempt result.
func (m *Metrics) IncrementAcceptOutcome(outcome string) {
	if m != nil {
		m.AcceptOutcomes.WithLabelValues(outcome).Inc()
	}
}

// IncrementDonationsConfirmed records a confirmed donation.
func (m *Metrics) IncrementDonationsConfirmed() {
	if m != nil {
		m.DonationsConfirmed.Inc()
	}
}

// IncrementNoShows records a reported no-show.
func (m *Metrics) IncrementNoShows() {
	if m != nil {
		m.NoShowsReported.Inc()
	}
}

// IncrementNotifications records an emitted notification.
func (m *Metrics) IncrementNotifications(category string) {
	if m != nil {
		m.NotificationsEmitted.WithLabelValues(category).Inc()
	}
}

// ObserveActionLatency records how long a coordinator action took.
func (m *Metrics) ObserveActionLatency(action string, d time.Duration) {
	if m != nil {
		m.ActionLatency.WithLabelValues(action).Observe(d.Seconds())
	}
}
