package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewDeployment_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewDeployment(reg)
	second := NewDeployment(reg)

	first.Results.WithLabelValues("manual", "staging", "success").Inc()
	second.Results.WithLabelValues("manual", "staging", "success").Inc()

	assert.Same(t, first.Results, second.Results)
	assert.Equal(t, 2.0, testutil.ToFloat64(first.Results.WithLabelValues("manual", "staging", "success")))
}

func TestNewDatabase_NilRegisterer(t *testing.T) {
	m := NewDatabase(nil)
	m.SlowQueries.WithLabelValues("staging").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlowQueries.WithLabelValues("staging")))
}

func TestNewHTTP_RegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTP(reg)
	m.RequestTotal.WithLabelValues("GET", "/health", "200").Inc()
	m.RequestDuration.WithLabelValues("GET", "/health", "200").Observe(0.01)
	m.RateLimitHits.WithLabelValues("/api/v1/deployment/deploy").Inc()

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}
