/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

func TestPrometheusMetrics_RecordRun(t *testing.T) {
	m := NewPrometheusMetrics(nil, logger.NewTestLogger())

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.RecordRun(&models.RunSummary{
		Started:  start,
		Finished: start.Add(90 * time.Second),
		Records:  10,
		Changed:  3,
		Failed:   1,
		Skipped:  2,
	})

	assert.InDelta(t, 1, testutil.ToFloat64(m.runsTotal.WithLabelValues("completed")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.hostsByOutcome.WithLabelValues("changed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.hostsByOutcome.WithLabelValues("failed")), 0)
	assert.InDelta(t, 10, testutil.ToFloat64(m.hostsByOutcome.WithLabelValues("total")), 0)
	assert.InDelta(t, float64(start.Add(90*time.Second).Unix()), testutil.ToFloat64(m.lastRun), 0)

	m.RecordRunFailure(errTestError, time.Second)
	assert.InDelta(t, 1, testutil.ToFloat64(m.runsTotal.WithLabelValues("aborted")), 0)
}

func TestPrometheusMetrics_HostResult(t *testing.T) {
	m := NewPrometheusMetrics(nil, logger.NewTestLogger())

	r := &models.ReconciliationResult{Host: "sw-01"}
	r.Add(models.FacetHost, models.FacetInSync, "host exists", nil)
	r.Add(models.FacetTags, models.FacetApplied, "tags differ", nil)
	r.Add(models.FacetProxy, models.FacetFailed, "proxy lookup failed", errTestError)

	m.RecordHostResult(r)
	m.RecordHostResult(r)

	assert.InDelta(t, 2, testutil.ToFloat64(m.facetsTotal.WithLabelValues("tags", "applied")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.facetsTotal.WithLabelValues("proxy", "failed")), 0)
	assert.Equal(t, 3, testutil.CollectAndCount(m.facetsTotal))
}

func TestPrometheusMetrics_Push(t *testing.T) {
	var gotMethod, gotPath string

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	m := NewPrometheusMetrics(&MetricsConfig{PushgatewayURL: gateway.URL}, logger.NewTestLogger())
	m.RecordAPICall("zabbix", "/api_jsonrpc.php")

	require.NoError(t, m.Push(context.Background()))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/metrics/job/"+defaultJobName, gotPath)

	require.NoError(t, NewPrometheusMetrics(nil, logger.NewTestLogger()).Push(context.Background()), "no gateway, no push")
}

func TestMetricsHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/dcim/devices/" {
			w.WriteHeader(http.StatusOK)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	m := NewPrometheusMetrics(nil, logger.NewTestLogger())
	client := NewMetricsHTTPClient(server.Client(), "netbox", m)

	for _, path := range []string{"/api/dcim/devices/", "/api/dcim/devices/", "/api/missing/"} {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+path, http.NoBody)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.apiCalls.WithLabelValues("netbox", "/api/dcim/devices/")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.apiFailures.WithLabelValues("netbox", "/api/missing/", "404")), 0)
}

func TestMetricsHTTPClient_TransportError(t *testing.T) {
	m := NewPrometheusMetrics(nil, logger.NewTestLogger())
	client := NewMetricsHTTPClient(failingClient{}, "zabbix", m)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://zabbix.test/api_jsonrpc.php", http.NoBody)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.ErrorIs(t, err, errTestError)
	assert.InDelta(t, 1, testutil.ToFloat64(m.apiFailures.WithLabelValues("zabbix", "/api_jsonrpc.php", "0")), 0)
}

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errTestError
}

func TestNoOpMetrics(t *testing.T) {
	var m Metrics = &NoOpMetrics{}

	m.RecordRun(&models.RunSummary{})
	m.RecordHostResult(&models.ReconciliationResult{})
	m.RecordCircuitBreakerStateChange("x", StateClosed, StateOpen)
	assert.NoError(t, m.Push(context.Background()))
}
