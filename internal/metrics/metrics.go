package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ForecastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecaster_forecasts_total",
			Help: "Total number of forecasts produced",
		},
		[]string{"trend", "confidence"},
	)

	ForecastErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecaster_forecast_errors_total",
			Help: "Total number of failed forecast refreshes",
		},
		[]string{"stage"},
	)

	SourceAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecaster_source_attempts_total",
			Help: "Data source attempts by source and result",
		},
		[]string{"source", "result"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecaster_cache_lookups_total",
			Help: "Quote cache lookups by result",
		},
		[]string{"result"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forecaster_refresh_duration_seconds",
			Help:    "Duration of a full watchlist refresh",
			Buckets: prometheus.DefBuckets,
		},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecaster_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
)
