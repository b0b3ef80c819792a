package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RatingsSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ratings_submitted_total",
		Help: "Total number of ratings folded into an entity average",
	}, []string{"entity"})

	RatingsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ratings_rejected_total",
		Help: "Total number of ratings rejected by validation",
	}, []string{"entity"})

	RatingEntitiesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_entities_created_total",
		Help: "Total number of entities bootstrapped by a first rating",
	}, []string{"entity"})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of rejected order placements",
	}, []string{"reason"})

	CustomersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_registered_total",
		Help: "Total number of registered customers",
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_cache_hits_total",
		Help: "Total number of entity cache hits",
	}, []string{"entity"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_cache_misses_total",
		Help: "Total number of entity cache misses",
	}, []string{"entity"})

	RatingFoldLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rating_fold_latency_seconds",
		Help:    "Latency of transactional rating updates",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
