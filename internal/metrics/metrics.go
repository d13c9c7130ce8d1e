package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripranker_rank_requests_total",
			Help: "Ranking calls by domain and outcome",
		},
		[]string{"domain", "outcome"},
	)

	RankedCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripranker_ranked_candidates_total",
			Help: "Candidates ranked, by domain and bucket",
		},
		[]string{"domain", "bucket"},
	)

	RankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripranker_rank_duration_seconds",
			Help:    "Time spent inside the ranking engine",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"domain"},
	)

	ProfileLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripranker_profile_lookups_total",
			Help: "Preference profile resolutions by source",
		},
		[]string{"source"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tripranker_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)
)

// ObserveRank records one successful ranking call.
func ObserveRank(domain string, inPreference, outOfPreference int, seconds float64) {
	RankRequests.WithLabelValues(domain, "ok").Inc()
	RankedCandidates.WithLabelValues(domain, "in_preference").Add(float64(inPreference))
	RankedCandidates.WithLabelValues(domain, "out_of_preference").Add(float64(outOfPreference))
	RankDuration.WithLabelValues(domain).Observe(seconds)
}
