// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ops_agent"

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// register adds c to reg, reusing an identical collector registered earlier
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func orNewRegistry(reg prometheus.Registerer) prometheus.Registerer {
	if reg == nil {
		return prometheus.NewRegistry()
	}
	return reg
}

// Deployment collects deployment agent outcomes
type Deployment struct {
	Results  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewDeployment creates and registers the deployment collectors
func NewDeployment(reg prometheus.Registerer) *Deployment {
	reg = orNewRegistry(reg)
	return &Deployment{
		Results: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deployment",
			Name:      "results_total",
			Help:      "Number of finished deployments by outcome",
		}, []string{"platform", "environment", "status"})),
		Duration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "deployment",
			Name:      "duration_seconds",
			Help:      "Wall clock duration of deployments",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 900},
		}, []string{"platform"})),
		InFlight: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "deployment",
			Name:      "in_flight",
			Help:      "Deployments currently pending or building",
		})),
	}
}

// Database collects database agent measurements
type Database struct {
	QueryDuration *prometheus.HistogramVec
	SlowQueries   *prometheus.CounterVec
	HealthStatus  *prometheus.GaugeVec
	Backups       *prometheus.CounterVec
}

// NewDatabase creates and registers the database collectors
func NewDatabase(reg prometheus.Registerer) *Database {
	reg = orNewRegistry(reg)
	return &Database{
		QueryDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Latency of queries issued through the database agent",
			Buckets:   histogramBuckets,
		}, []string{"environment"})),
		SlowQueries: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "slow_queries_total",
			Help:      "Queries that took longer than one second",
		}, []string{"environment"})),
		HealthStatus: register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "health_status",
			Help:      "Last health classification: 0 healthy, 1 degraded, 2 unhealthy",
		}, []string{"environment"})),
		Backups: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "backups_total",
			Help:      "Finished backups by outcome",
		}, []string{"environment", "status"})),
	}
}

// HTTP collects request level measurements
type HTTP struct {
	RequestTotal    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimitHits   *prometheus.CounterVec
}

// NewHTTP creates and registers the HTTP collectors
func NewHTTP(reg prometheus.Registerer) *HTTP {
	reg = orNewRegistry(reg)
	return &HTTP{
		RequestTotal: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"})),
		RequestDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"})),
		RateLimitHits: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limit_hits_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"})),
	}
}
