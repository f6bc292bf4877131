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

// Package sync runs reconciliation: it reads hosts from NetBox, computes
// their desired state and applies it to Zabbix, one run at a time.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/carverauto/netbox-zabbix-sync/pkg/desired"
	"github.com/carverauto/netbox-zabbix-sync/pkg/engine"
	"github.com/carverauto/netbox-zabbix-sync/pkg/hostgroup"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

const (
	pingInitialBackoff = 500 * time.Millisecond
	pingMaxBackoff     = 5 * time.Second
	pingMaxElapsed     = 30 * time.Second
	pingMaxTries       = 5
	tracerName         = "github.com/carverauto/netbox-zabbix-sync/pkg/sync"
)

var errInvalidInterval = errors.New("interval must be positive")

// Service reconciles the configured NetBox records into Zabbix.
type Service struct {
	cfg       *Config
	source    Source
	monitor   Monitor
	metrics   Metrics
	publisher Publisher
	clock     Clock
	tracer    trace.Tracer
	logger    logger.Logger
	pingTries uint
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics records run and host outcomes.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher announces every finished run.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(c Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// NewService wires a reconciler. cfg must have been validated.
func NewService(cfg *Config, source Source, monitor Monitor, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		cfg:       cfg,
		source:    source,
		monitor:   monitor,
		metrics:   &NoOpMetrics{},
		clock:     realClock{},
		tracer:    logger.GetTracer(tracerName),
		logger:    log,
		pingTries: pingMaxTries,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RunOnce performs one complete run. It returns an error only when the run
// could not start or was cancelled; per-host failures are in the summary.
func (s *Service) RunOnce(ctx context.Context) (*models.RunSummary, error) {
	summary := &models.RunSummary{
		RunID:   uuid.NewString(),
		Started: s.clock.Now(),
		DryRun:  s.cfg.DryRun,
	}

	runLog := logger.Wrap(s.logger.With().Str("run_id", summary.RunID).Logger())

	lock, err := AcquireRunLock(s.cfg.LockPath, time.Duration(s.cfg.LockTimeout))
	if err != nil {
		return nil, s.abort(runLog, summary, err)
	}

	defer func() {
		if err := lock.Release(); err != nil {
			runLog.Warn().Err(err).Msg("Failed to release run lock")
		}
	}()

	if err := s.connect(ctx, runLog); err != nil {
		return nil, s.abort(runLog, summary, err)
	}

	defer func() {
		if err := s.monitor.Close(context.WithoutCancel(ctx)); err != nil {
			runLog.Warn().Err(err).Msg("Failed to close Zabbix session")
		}
	}()

	resolver, err := s.resolver(ctx)
	if err != nil {
		return nil, s.abort(runLog, summary, err)
	}

	if err := s.validateFormats(ctx, resolver.Registry()); err != nil {
		return nil, s.abort(runLog, summary, err)
	}

	records, err := s.listRecords(ctx)
	if err != nil {
		return nil, s.abort(runLog, summary, err)
	}

	builder := desired.NewBuilder(s.cfg.DesiredOptions(s.monitor.SupportsProxyGroups()), resolver, runLog)
	eng := engine.New(s.monitor, s.cfg.EngineOptions(), runLog)

	runLog.Info().
		Int("records", len(records)).
		Bool("dry_run", s.cfg.DryRun).
		Int("concurrency", s.cfg.Concurrency).
		Msg("Starting reconciliation")

	summary.Results = s.reconcile(ctx, builder, eng, records, runLog)
	summary.Finished = s.clock.Now()
	summary.Tally()

	s.finish(ctx, lock, summary, runLog)

	return summary, ctx.Err()
}

// abort records a run that never reached the reconciliation stage.
func (s *Service) abort(log logger.Logger, summary *models.RunSummary, err error) error {
	s.metrics.RecordRunFailure(err, s.clock.Now().Sub(summary.Started))

	log.Error().Err(err).Bool("fatal", models.IsFatal(err)).Msg("Run aborted before any write")

	return err
}

// connect pings both systems. Nothing is written until both answer.
func (s *Service) connect(ctx context.Context, log logger.Logger) error {
	nbVersion, err := s.ping(ctx, "netbox", s.source.Ping, log)
	if err != nil {
		return err
	}

	zbxVersion, err := s.ping(ctx, "zabbix", s.monitor.Ping, log)
	if err != nil {
		return err
	}

	log.Info().
		Str("netbox_version", nbVersion).
		Str("zabbix_version", zbxVersion).
		Bool("proxy_groups", s.monitor.SupportsProxyGroups()).
		Msg("Connected to NetBox and Zabbix")

	return nil
}

func (s *Service) ping(ctx context.Context, system string, fn func(context.Context) (string, error), log logger.Logger) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = pingInitialBackoff
	bo.MaxInterval = pingMaxBackoff

	operation := func() (string, error) {
		version, err := fn(ctx)
		if err != nil && (!errors.Is(err, models.ErrConnectivity) || errors.Is(err, models.ErrAuthentication)) {
			return "", backoff.Permanent(err)
		}

		return version, err
	}

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("system", system).Dur("retry_in", wait).Msg("Ping failed, retrying")
	}

	version, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(s.pingTries),
		backoff.WithMaxElapsedTime(pingMaxElapsed),
		backoff.WithNotify(notify))
	if err != nil {
		if errors.Is(err, models.ErrConnectivity) {
			return "", err
		}

		return "", &models.ConnectivityError{System: system, Err: err}
	}

	return version, nil
}

// resolver loads the hierarchies needed for traversal and builds the
// hostgroup path resolver of this run.
func (s *Service) resolver(ctx context.Context) (*hostgroup.PathResolver, error) {
	var (
		trees hostgroup.Trees
		err   error
	)

	if s.cfg.TraverseRegions {
		if trees.Regions, err = s.source.Regions(ctx); err != nil {
			return nil, fmt.Errorf("failed to load regions: %w", err)
		}
	}

	if s.cfg.TraverseSiteGroups {
		if trees.SiteGroups, err = s.source.SiteGroups(ctx); err != nil {
			return nil, fmt.Errorf("failed to load site groups: %w", err)
		}
	}

	reg := hostgroup.NewRegistry(trees, s.cfg.TraverseRegions, s.cfg.TraverseSiteGroups)

	return hostgroup.NewPathResolver(reg, s.logger), nil
}

// validateFormats rejects tokens that are neither built-in attributes nor
// custom fields defined in NetBox.
func (s *Service) validateFormats(ctx context.Context, reg *hostgroup.Registry) error {
	device, vm := s.cfg.HostgroupFormats()

	checks := []struct {
		kind    models.RecordKind
		formats []hostgroup.Format
	}{
		{kind: models.KindDevice, formats: device},
	}

	if s.cfg.SyncVMs {
		checks = append(checks, struct {
			kind    models.RecordKind
			formats []hostgroup.Format
		}{kind: models.KindVirtualMachine, formats: vm})
	}

	for _, c := range checks {
		fields, err := s.source.CustomFieldNames(ctx, c.kind)
		if err != nil {
			return fmt.Errorf("failed to list %s custom fields: %w", c.kind, err)
		}

		if err := hostgroup.ValidateFormats(reg, c.kind, c.formats, fields); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) listRecords(ctx context.Context) ([]*models.SourceRecord, error) {
	records, err := s.source.ListRecords(ctx, models.KindDevice, s.cfg.DeviceFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	if !s.cfg.SyncVMs {
		return records, nil
	}

	vms, err := s.source.ListRecords(ctx, models.KindVirtualMachine, s.cfg.VMFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list virtual machines: %w", err)
	}

	return append(records, vms...), nil
}

// reconcile processes the records with bounded parallelism. Results keep
// the order of records; records not started before cancellation are left
// out.
func (s *Service) reconcile(
	ctx context.Context, b *desired.Builder, e *engine.Engine, records []*models.SourceRecord, log logger.Logger) []*models.ReconciliationResult {
	results := make([]*models.ReconciliationResult, len(records))

	var g errgroup.Group

	g.SetLimit(s.cfg.Concurrency)

	for i, rec := range records {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			results[i] = s.reconcileRecord(ctx, b, e, rec, log)
			return nil
		})
	}

	_ = g.Wait()

	out := results[:0]

	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}

	return out
}

func (s *Service) reconcileRecord(
	ctx context.Context, b *desired.Builder, e *engine.Engine, rec *models.SourceRecord, log logger.Logger) *models.ReconciliationResult {
	ctx, span := s.tracer.Start(ctx, "reconcile.host", trace.WithAttributes(
		attribute.Int("netbox.id", rec.ID),
		attribute.String("netbox.kind", string(rec.Kind)),
		attribute.String("netbox.name", rec.Name),
	))
	defer span.End()

	var result *models.ReconciliationResult

	spec, err := b.Build(rec)
	if err != nil {
		result = buildFailure(rec, err, log)
	} else {
		span.SetAttributes(attribute.String("zabbix.host", spec.Name))
		result = e.Reconcile(ctx, spec)
	}

	if result.Failed() {
		span.SetStatus(codes.Error, "reconciliation failed")
	}

	s.metrics.RecordHostResult(result)

	return result
}

// buildFailure turns a build error into the record outcome.
func buildFailure(rec *models.SourceRecord, err error, log logger.Logger) *models.ReconciliationResult {
	result := &models.ReconciliationResult{RecordID: rec.ID, Host: rec.Name}

	ev := log.Error()
	status := models.FacetFailed

	switch {
	case errors.Is(err, models.ErrHostgroupUnresolved):
		ev = log.Warn()
		status = models.FacetSkipped
	case errors.Is(err, models.ErrRecordSkipped):
		ev = log.Info()
		status = models.FacetSkipped
	case errors.Is(err, models.ErrRecordIncomplete):
		ev = log.Warn()
		status = models.FacetSkipped
	}

	result.Add(models.FacetRecord, status, err.Error(), err)

	ev.Err(err).
		Str("host", rec.Name).
		Int("record_id", rec.ID).
		Str("facet", string(models.FacetRecord)).
		Str("status", string(status)).
		Msg("Record not reconciled")

	return result
}

// finish exports the summary. Export failures are logged only.
func (s *Service) finish(ctx context.Context, lock *RunLock, summary *models.RunSummary, log logger.Logger) {
	s.metrics.RecordRun(summary)

	log.Info().
		Int("records", summary.Records).
		Int("changed", summary.Changed).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Dur("duration", summary.Finished.Sub(summary.Started)).
		Msg("Reconciliation finished")

	ctx = context.WithoutCancel(ctx)

	if err := s.metrics.Push(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to push metrics")
	}

	if err := lock.SaveSummary(summary); err != nil {
		log.Warn().Err(err).Msg("Failed to save run history")
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, summary); err != nil {
			log.Warn().Err(err).Msg("Failed to publish run summary")
		}
	}
}

// Start runs immediately and then on every interval until ctx is done.
// Failed runs are logged and retried on the next tick, except for
// configuration errors, which are returned.
func (s *Service) Start(ctx context.Context) error {
	interval := time.Duration(s.cfg.Interval)
	if interval <= 0 {
		return models.NewConfigurationError("interval", errInvalidInterval)
	}

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil {
			if errors.Is(err, models.ErrConfiguration) {
				return err
			}

			if ctx.Err() == nil {
				s.logger.Error().Err(err).Dur("next_run_in", interval).Msg("Run failed")
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}

// HostgroupPreview shows what the hostgroup formats produce for one record.
type HostgroupPreview struct {
	Host    string
	Kind    models.RecordKind
	Options []hostgroup.Option
	Paths   []string
	Errors  []string
}

// PreviewHostgroups resolves the configured formats for the records of kind
// without touching Zabbix.
func (s *Service) PreviewHostgroups(ctx context.Context, kind models.RecordKind) ([]HostgroupPreview, error) {
	if _, err := s.ping(ctx, "netbox", s.source.Ping, s.logger); err != nil {
		return nil, err
	}

	resolver, err := s.resolver(ctx)
	if err != nil {
		return nil, err
	}

	filters := s.cfg.DeviceFilter
	formats, vmFormats := s.cfg.HostgroupFormats()

	if kind == models.KindVirtualMachine {
		filters, formats = s.cfg.VMFilter, vmFormats
	}

	records, err := s.source.ListRecords(ctx, kind, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}

	previews := make([]HostgroupPreview, 0, len(records))

	for _, rec := range records {
		paths, errs := resolver.Resolve(rec, formats)

		p := HostgroupPreview{Host: rec.Name, Kind: kind, Options: resolver.Options(rec)}

		for _, path := range paths {
			p.Paths = append(p.Paths, path.String())
		}

		for _, err := range errs {
			p.Errors = append(p.Errors, err.Error())
		}

		previews = append(previews, p)
	}

	return previews, nil
}
