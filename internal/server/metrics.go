package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors, exposed on /metrics.
var (
	metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flappy_http_requests_total",
		Help: "HTTP requests processed, by path and status code.",
	}, []string{"path", "status"})

	metricRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flappy_http_rate_limited_total",
		Help: "Requests rejected by a rate limiter.",
	})

	metricScoresSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flappy_scores_submitted_total",
		Help: "Accepted score submissions.",
	})

	metricCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flappy_leaderboard_cache_hits_total",
		Help: "Leaderboard reads served from the snapshot cache.",
	})

	metricCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flappy_leaderboard_cache_misses_total",
		Help: "Leaderboard reads that recomputed the snapshot.",
	})

	metricActiveUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flappy_active_users",
		Help: "Current simulated active-user gauge value.",
	})
)
