package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the traversal collectors.
type Metrics struct {
	deadEnds    *prometheus.CounterVec
	railsDenied *prometheus.CounterVec
	skips       *prometheus.CounterVec
	progress    prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		deadEnds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wayline",
			Name:      "dead_ends_total",
			Help:      "Traversals that found no passable out-edge, by waypoint. Any increase means a misauthored plan.",
		}, []string{"waypoint"}),
		railsDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wayline",
			Name:      "rails_denied_total",
			Help:      "Requests for waypoints not reachable with the journey's current data, by origin.",
		}, []string{"origin"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wayline",
			Name:      "skips_total",
			Help:      "Waypoints intentionally bypassed by users, by waypoint.",
		}, []string{"waypoint"}),
		progress: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wayline",
			Name:      "journey_waypoints_completed",
			Help:      "Waypoints holding data per journey, observed at each save.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(m.deadEnds, m.railsDenied, m.skips, m.progress)
	return m
}

// DeadEnd records a traversal dead end at a waypoint.
func (m *Metrics) DeadEnd(waypoint string) {
	m.deadEnds.WithLabelValues(waypoint).Inc()
}

// RailsDenied records a reachability denial under an origin.
func (m *Metrics) RailsDenied(origin string) {
	m.railsDenied.WithLabelValues(origin).Inc()
}

// Skip records a user skipping a waypoint.
func (m *Metrics) Skip(waypoint string) {
	m.skips.WithLabelValues(waypoint).Inc()
}

// Progress records how many waypoints hold data for a journey at save time.
func (m *Metrics) Progress(n int) {
	m.progress.Observe(float64(n))
}
