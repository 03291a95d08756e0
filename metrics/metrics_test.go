// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	prometheusModels "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	provider := NewPrometheusProvider()
	ts := httptest.NewServer(NewServer("0", false, provider.Handler()).Handler())
	defer ts.Close()

	t.Run("Should serve the index and the registry", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Contains(t, string(body), "/metrics")

		resp, err = http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		body, err = io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Contains(t, string(body), "canonical_issues_")
	})

	t.Run("Should store metrics for requests duration", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.httpRequestsDuration.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		require.Equal(t, 0.0, m.Histogram.GetSampleSum())
		provider.ObserveHTTPRequestDuration("handler", "method", "200", 1)
		data, err = provider.httpRequestsDuration.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 1, m.Histogram.GetSampleSum(), 0.001)
	})

	t.Run("Should store metrics for webhook requests", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.webhookEvents.GetMetricWithLabelValues("test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseWebhookRequest("test")
		data, err = provider.webhookEvents.GetMetricWithLabelValues("test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should store metrics for github requests duration", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.githubRequests.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		require.Equal(t, 0.0, m.Histogram.GetSampleSum())
		provider.ObserveGithubRequestDuration("handler", "method", "200", 1)
		data, err = provider.githubRequests.GetMetricWith(prometheus.Labels{"handler": "handler", "method": "method", "status_code": "200"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 1, m.Histogram.GetSampleSum(), 0.001)
	})

	t.Run("Should store metrics for github requests cache hits", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.githubCacheHits.GetMetricWithLabelValues("GET", "test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseGithubCacheHits("GET", "test")
		data, err = provider.githubCacheHits.GetMetricWithLabelValues("GET", "test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should store metrics for github requests cache misses", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.githubCacheMisses.GetMetricWithLabelValues("GET", "test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseGithubCacheMisses("GET", "test")
		data, err = provider.githubCacheMisses.GetMetricWithLabelValues("GET", "test")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should store metrics for cron tasks duration", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.cronTasksDuration.GetMetricWith(prometheus.Labels{"name": "test-task"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(0), m.Histogram.GetSampleCount())
		require.Equal(t, 0.0, m.Histogram.GetSampleSum())
		provider.ObserveCronTaskDuration("test-task", 1)
		data, err = provider.cronTasksDuration.GetMetricWith(prometheus.Labels{"name": "test-task"})
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Histogram).Write(m))
		require.Equal(t, uint64(1), m.Histogram.GetSampleCount())
		require.InDelta(t, 1, m.Histogram.GetSampleSum(), 0.001)
	})

	t.Run("Should store metrics for cron tasks errors", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		data, err := provider.cronTasksErrors.GetMetricWithLabelValues("test-task")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(0), m.Counter.GetValue())
		provider.IncreaseCronTaskErrors("test-task")
		data, err = provider.cronTasksErrors.GetMetricWithLabelValues("test-task")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())
	})

	t.Run("Should store metrics for repository cache hits and misses", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		provider.IncreaseRepositoryCacheHits("mattermost/focalboard")
		provider.IncreaseRepositoryCacheMisses("mattermost/focalboard")
		provider.IncreaseRepositoryCacheMisses("mattermost/focalboard")

		data, err := provider.repositoryCacheHits.GetMetricWithLabelValues("mattermost/focalboard")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(1), m.Counter.GetValue())

		data, err = provider.repositoryCacheMisses.GetMetricWithLabelValues("mattermost/focalboard")
		require.NoError(t, err)
		require.NoError(t, data.(prometheus.Counter).Write(m))
		require.Equal(t, float64(2), m.Counter.GetValue())
	})

	t.Run("Should store allocation metrics", func(t *testing.T) {
		m := &prometheusModels.Metric{}
		provider.ObserveSyncedIssues(12)
		require.NoError(t, provider.syncedIssues.Write(m))
		require.Equal(t, float64(12), m.Gauge.GetValue())

		provider.AddCanonicalIDsAssigned(3)
		provider.AddCanonicalIDsAssigned(0)
		require.NoError(t, provider.canonicalIDsAssigned.Write(m))
		require.Equal(t, float64(3), m.Counter.GetValue())
	})
}

func TestTransport(t *testing.T) {
	provider := NewPrometheusProvider()
	cached := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cached {
			w.Header().Set("X-From-Cache", "1")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := &http.Client{Transport: NewTransport(http.DefaultTransport, provider)}

	resp, err := client.Get(ts.URL + "/repos/mattermost/focalboard/issues/42")
	require.NoError(t, err)
	resp.Body.Close()

	cached = true
	resp, err = client.Get(ts.URL + "/repos/mattermost/focalboard/issues/43")
	require.NoError(t, err)
	resp.Body.Close()

	m := &prometheusModels.Metric{}
	data, err := provider.githubCacheMisses.GetMetricWithLabelValues("GET", "/repos/mattermost/focalboard/issues/:id")
	require.NoError(t, err)
	require.NoError(t, data.(prometheus.Counter).Write(m))
	require.Equal(t, float64(1), m.Counter.GetValue())

	data, err = provider.githubCacheHits.GetMetricWithLabelValues("GET", "/repos/mattermost/focalboard/issues/:id")
	require.NoError(t, err)
	require.NoError(t, data.(prometheus.Counter).Write(m))
	require.Equal(t, float64(1), m.Counter.GetValue())

	t.Run("Should pass transport errors through", func(t *testing.T) {
		_, err := client.Get("http://127.0.0.1:0/unreachable")
		require.Error(t, err)
	})
}
