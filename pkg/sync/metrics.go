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
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

const (
	metricsNamespace = "nbzx"
	defaultJobName   = "netbox_zabbix_sync"
)

// Metrics defines the interface for collecting reconciler metrics
type Metrics interface {
	// Run metrics
	RecordRun(summary *models.RunSummary)
	RecordRunFailure(err error, duration time.Duration)
	RecordHostResult(result *models.ReconciliationResult)

	// API metrics
	RecordAPICall(system, endpoint string)
	RecordAPISuccess(system, endpoint string, duration time.Duration)
	RecordAPIFailure(system, endpoint string, statusCode int, duration time.Duration)

	// Circuit breaker metrics
	RecordCircuitBreakerStateChange(name string, oldState, newState CircuitBreakerState)

	// Push exports the collected metrics when a gateway is configured.
	Push(ctx context.Context) error
}

// NoOpMetrics provides a no-op implementation of the Metrics interface
type NoOpMetrics struct{}

func (*NoOpMetrics) RecordRun(*models.RunSummary)                        {}
func (*NoOpMetrics) RecordRunFailure(error, time.Duration)               {}
func (*NoOpMetrics) RecordHostResult(*models.ReconciliationResult)       {}
func (*NoOpMetrics) RecordAPICall(string, string)                        {}
func (*NoOpMetrics) RecordAPISuccess(string, string, time.Duration)      {}
func (*NoOpMetrics) RecordAPIFailure(string, string, int, time.Duration) {}
func (*NoOpMetrics) Push(context.Context) error                          { return nil }
func (*NoOpMetrics) RecordCircuitBreakerStateChange(string, CircuitBreakerState, CircuitBreakerState) {
}

// PrometheusMetrics collects metrics on a private registry. When a
// Pushgateway URL is set, Push sends them after every run.
type PrometheusMetrics struct {
	registry *prometheus.Registry
	pusher   *push.Pusher
	logger   logger.Logger

	runsTotal      *prometheus.CounterVec
	runDuration    prometheus.Histogram
	lastRun        prometheus.Gauge
	hostsByOutcome *prometheus.GaugeVec
	facetsTotal    *prometheus.CounterVec
	apiCalls       *prometheus.CounterVec
	apiFailures    *prometheus.CounterVec
	apiDuration    *prometheus.HistogramVec
	breakerState   *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the collectors. cfg may be nil.
func NewPrometheusMetrics(cfg *MetricsConfig, log logger.Logger) *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		logger:   log,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Reconciliation runs by result",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of reconciliation runs",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Finish time of the last completed run",
		}),
		hostsByOutcome: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "hosts",
			Help:      "Hosts of the last run by outcome",
		}, []string{"outcome"}),
		facetsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "facet_outcomes_total",
			Help:      "Facet reconciliation outcomes",
		}, []string{"facet", "status"}),
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "api_requests_total",
			Help:      "API requests by system and endpoint",
		}, []string{"system", "endpoint"}),
		apiFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "api_failures_total",
			Help:      "Failed API requests by status code, 0 for transport errors",
		}, []string{"system", "endpoint", "code"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"system"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 open, 2 half-open",
		}, []string{"name"}),
	}

	m.registry.MustRegister(
		m.runsTotal,
		m.runDuration,
		m.lastRun,
		m.hostsByOutcome,
		m.facetsTotal,
		m.apiCalls,
		m.apiFailures,
		m.apiDuration,
		m.breakerState,
	)

	if cfg != nil && cfg.PushgatewayURL != "" {
		job := cfg.Job
		if job == "" {
			job = defaultJobName
		}

		m.pusher = push.New(cfg.PushgatewayURL, job).Gatherer(m.registry)
	}

	return m
}

// Registry exposes the collectors, mainly for tests.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PrometheusMetrics) RecordRun(s *models.RunSummary) {
	m.runsTotal.WithLabelValues("completed").Inc()
	m.runDuration.Observe(s.Finished.Sub(s.Started).Seconds())
	m.lastRun.Set(float64(s.Finished.Unix()))

	m.hostsByOutcome.WithLabelValues("changed").Set(float64(s.Changed))
	m.hostsByOutcome.WithLabelValues("failed").Set(float64(s.Failed))
	m.hostsByOutcome.WithLabelValues("skipped").Set(float64(s.Skipped))
	m.hostsByOutcome.WithLabelValues("total").Set(float64(s.Records))
}

func (m *PrometheusMetrics) RecordRunFailure(err error, duration time.Duration) {
	m.runsTotal.WithLabelValues("aborted").Inc()
	m.runDuration.Observe(duration.Seconds())

	m.logger.Debug().Err(err).Dur("duration", duration).Msg("Recorded aborted run")
}

func (m *PrometheusMetrics) RecordHostResult(r *models.ReconciliationResult) {
	for _, o := range r.Outcomes {
		m.facetsTotal.WithLabelValues(string(o.Facet), string(o.Status)).Inc()
	}
}

func (m *PrometheusMetrics) RecordAPICall(system, endpoint string) {
	m.apiCalls.WithLabelValues(system, endpoint).Inc()
}

func (m *PrometheusMetrics) RecordAPISuccess(system, _ string, duration time.Duration) {
	m.apiDuration.WithLabelValues(system).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordAPIFailure(system, endpoint string, statusCode int, duration time.Duration) {
	m.apiFailures.WithLabelValues(system, endpoint, strconv.Itoa(statusCode)).Inc()
	m.apiDuration.WithLabelValues(system).Observe(duration.Seconds())

	m.logger.Warn().
		Str("system", system).
		Str("endpoint", endpoint).
		Int("status_code", statusCode).
		Dur("duration", duration).
		Msg("API call failed")
}

func (m *PrometheusMetrics) RecordCircuitBreakerStateChange(name string, oldState, newState CircuitBreakerState) {
	m.breakerState.WithLabelValues(name).Set(float64(newState))

	m.logger.Info().
		Str("circuit_breaker", name).
		Str("old_state", oldState.String()).
		Str("new_state", newState.String()).
		Msg("Circuit breaker state changed")
}

func (m *PrometheusMetrics) Push(ctx context.Context) error {
	if m.pusher == nil {
		return nil
	}

	return m.pusher.PushContext(ctx)
}

// MetricsHTTPClient wraps an HTTP client to collect API metrics
type MetricsHTTPClient struct {
	client  HTTPClient
	metrics Metrics
	system  string
}

// NewMetricsHTTPClient creates a new HTTP client wrapper that collects metrics
func NewMetricsHTTPClient(client HTTPClient, system string, metrics Metrics) *MetricsHTTPClient {
	return &MetricsHTTPClient{
		client:  client,
		metrics: metrics,
		system:  system,
	}
}

// Do executes an HTTP request and records metrics
func (m *MetricsHTTPClient) Do(req *http.Request) (*http.Response, error) {
	endpoint := req.URL.Path
	if endpoint == "" {
		endpoint = "/"
	}

	start := time.Now()
	m.metrics.RecordAPICall(m.system, endpoint)

	resp, err := m.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		m.metrics.RecordAPIFailure(m.system, endpoint, 0, duration)
		return resp, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		m.metrics.RecordAPIFailure(m.system, endpoint, resp.StatusCode, duration)
	} else {
		m.metrics.RecordAPISuccess(m.system, endpoint, duration)
	}

	return resp, err
}
