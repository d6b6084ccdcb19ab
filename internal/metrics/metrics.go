// Package metrics exposes Prometheus counters for the game economy and
// the facade's HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Economy metrics
var (
	ListingsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_listings_purchased_total",
			Help: "Shop listings purchased, by archetype",
		},
		[]string{"archetype"},
	)

	ShopRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_refreshes_total",
			Help: "Shop pool refreshes, by pool",
		},
		[]string{"pool"},
	)

	MissionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "missions_completed_total",
			Help: "Missions purchased and completed",
		},
		[]string{"mission"},
	)

	BoostersActivated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boosters_activated_total",
			Help: "Boosters purchased and activated",
		},
		[]string{"booster"},
	)

	ChronosEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronos_earned_total",
			Help: "Chronos credited by passive income",
		},
	)

	ChronosSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronos_spent_total",
			Help: "Chronos spent on purchases",
		},
	)

	PlanetsPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planets_placed_total",
			Help: "Planets placed into orbit slots, by archetype",
		},
		[]string{"archetype"},
	)
)
