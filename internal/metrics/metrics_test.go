package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	tests := []struct {
		name   string
		source string
		err    error
		status string
	}{
		{"success", "weather", nil, "success"},
		{"error", "marine", errors.New("timeout"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.ObserveUpstream(tt.source, 120*time.Millisecond, tt.err)
			count := testutil.ToFloat64(m.upstreamRequestsTotal.WithLabelValues(tt.source, tt.status))
			assert.Equal(t, 1.0, count)
		})
	}
}

func TestRecordFallback(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordFallback("tide")
	m.RecordFallback("tide")
	m.RecordFallback("marine")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fallbacksTotal.WithLabelValues("tide")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacksTotal.WithLabelValues("marine")))
}

func TestObserveHTTP(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveHTTP("GET", "/api/moon", "200", 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/moon", "200")))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
