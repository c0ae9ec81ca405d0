// Package metrics holds the Prometheus instruments for the engine. All
// helpers are nil-receiver safe so services can run without metrics wired.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ItemToggles         *prometheus.CounterVec
	ObjectivesCompleted prometheus.Counter
	MembershipChanges   *prometheus.CounterVec
	FollowChanges       *prometheus.CounterVec
	FeedEntriesWritten  *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ItemToggles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wanderlist_item_toggles_total",
			Help: "Item visit toggles by direction (visit, unvisit).",
		}, []string{"direction"}),
		ObjectivesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wanderlist_objectives_completed_total",
			Help: "Objectives that reached full completion.",
		}),
		MembershipChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wanderlist_membership_changes_total",
			Help: "Objective add/remove operations.",
		}, []string{"action"}),
		FollowChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wanderlist_follow_changes_total",
			Help: "Follow/unfollow operations.",
		}, []string{"action"}),
		FeedEntriesWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wanderlist_feed_entries_total",
			Help: "Activity feed entries written or deleted by kind.",
		}, []string{"kind", "op"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wanderlist_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) IncItemToggle(direction string) {
	if m == nil {
		return
	}
	m.ItemToggles.WithLabelValues(direction).Inc()
}

func (m *Metrics) IncObjectiveCompleted() {
	if m == nil {
		return
	}
	m.ObjectivesCompleted.Inc()
}

func (m *Metrics) IncMembership(action string) {
	if m == nil {
		return
	}
	m.MembershipChanges.WithLabelValues(action).Inc()
}

func (m *Metrics) IncFollow(action string) {
	if m == nil {
		return
	}
	m.FollowChanges.WithLabelValues(action).Inc()
}

func (m *Metrics) IncFeedEntry(kind, op string) {
	if m == nil {
		return
	}
	m.FeedEntriesWritten.WithLabelValues(kind, op).Inc()
}

func (m *Metrics) ObserveRequest(method, path string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(seconds)
}
