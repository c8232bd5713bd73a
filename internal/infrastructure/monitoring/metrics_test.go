package monitoring

import (
	"bytes"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/apiecho/internal/config"
)

func TestTrackInProgress(t *testing.T) {
	m := NewMetrics(&config.MetricsConfig{})

	done := m.TrackInProgress()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InProgress))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InProgress))
}

func TestObserveRequest(t *testing.T) {
	m := NewMetrics(&config.MetricsConfig{})

	m.ObserveRequest(http.MethodPost, "/api", http.StatusBadRequest, 20*time.Millisecond, 8)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("POST", "/api", "400")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("POST", "/api", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestLatency))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestSize))

	var out bytes.Buffer
	require.NoError(t, m.Render(&out))
	assert.Contains(t, out.String(), "http_request_size_bytes_sum 8")
	assert.Contains(t, out.String(), "http_request_size_bytes_count 1")
	assert.Contains(t, out.String(), `http_request_latency_seconds_count{endpoint="/api",method="POST"} 1`)
}

func TestCountRequestOnlyTouchesCounter(t *testing.T) {
	m := NewMetrics(&config.MetricsConfig{})

	m.CountRequest(http.MethodGet, "/api", http.StatusOK)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("GET", "/api", "200")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.RequestLatency))

	var out bytes.Buffer
	require.NoError(t, m.Render(&out))
	assert.Contains(t, out.String(), "http_request_size_bytes_count 0")
}

func TestRenderSnapshot(t *testing.T) {
	m := NewMetrics(&config.MetricsConfig{})
	m.CountRequest(http.MethodGet, "/api", http.StatusOK)

	var out bytes.Buffer
	require.NoError(t, m.Render(&out))

	text := out.String()
	assert.Contains(t, text, "# HELP http_requests_total Total HTTP Requests")
	assert.Contains(t, text, "# TYPE http_requests_total counter")
	assert.Contains(t, text, `http_requests_total{endpoint="/api",method="GET",status_code="200"} 1`)
	assert.Contains(t, text, "# TYPE http_requests_in_progress gauge")
	assert.Contains(t, text, "http_requests_in_progress 0")
	assert.NotContains(t, text, "go_goroutines")

	// Rendering is read-only.
	out.Reset()
	require.NoError(t, m.Render(&out))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("GET", "/api", "200")))
}

func TestRuntimeCollectors(t *testing.T) {
	m := NewMetrics(&config.MetricsConfig{RuntimeCollectors: true})

	var out bytes.Buffer
	require.NoError(t, m.Render(&out))
	assert.Contains(t, out.String(), "go_goroutines")
}

func TestConcurrentUpdates(t *testing.T) {
	m := NewMetrics(&config.MetricsConfig{})

	const workers = 50
	const perWorker = 40
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				done := m.TrackInProgress()
				m.ObserveRequest(http.MethodPut, "/api", http.StatusOK, time.Millisecond, 1)
				done()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(workers*perWorker), testutil.ToFloat64(m.RequestCount.WithLabelValues("PUT", "/api", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InProgress))
}
