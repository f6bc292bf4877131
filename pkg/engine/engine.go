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

// Package engine diffs desired host state against Zabbix and applies the
// differences one facet at a time.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// Options controls how the engine writes.
type Options struct {
	DryRun           bool
	CreateHostgroups bool
	MacroMode        models.MacroSyncMode
}

// Engine reconciles one host at a time. It is safe for concurrent use; the
// caches are shared by every host of a run.
type Engine struct {
	monitor     Monitor
	opts        Options
	groups      *GroupCache
	templates   *idCache
	proxies     *idCache
	proxyGroups *idCache
	logger      logger.Logger
}

// New returns an engine writing through monitor.
func New(monitor Monitor, opts Options, log logger.Logger) *Engine {
	return &Engine{
		monitor:     monitor,
		opts:        opts,
		groups:      NewGroupCache(),
		templates:   newIDCache(),
		proxies:     newIDCache(),
		proxyGroups: newIDCache(),
		logger:      log,
	}
}

// hostRun carries the state of one host reconciliation.
type hostRun struct {
	e      *Engine
	spec   *models.DesiredHostSpec
	result *models.ReconciliationResult
	log    zerolog.Logger
}

func (h *hostRun) record(facet models.Facet, status models.OutcomeStatus, reason string, err error) {
	h.result.Add(facet, status, reason, err)

	var ev = h.log.Info()

	switch status {
	case models.FacetFailed:
		ev = h.log.Error().Err(err)
	case models.FacetSkipped:
		ev = h.log.Warn()
		if err != nil {
			ev = ev.Err(err)
		}
	case models.FacetInSync:
		ev = h.log.Debug()
	case models.FacetApplied, models.FacetPlanned:
	}

	ev.Str("facet", string(facet)).
		Str("status", string(status)).
		Str("reason", reason).
		Msg("Facet reconciled")
}

func (h *hostRun) fail(facet models.Facet, reason string, err error) {
	h.record(facet, models.FacetFailed, reason, &models.FacetApplyError{Host: h.spec.Name, Facet: facet, Err: err})
}

// write applies fn unless running dry, recording the outcome.
func (h *hostRun) write(facet models.Facet, reason string, fn func() error) {
	if h.e.opts.DryRun {
		h.record(facet, models.FacetPlanned, reason, nil)
		return
	}

	if err := fn(); err != nil {
		h.fail(facet, reason, err)
		return
	}

	h.record(facet, models.FacetApplied, reason, nil)
}

// Reconcile brings the host described by spec in line with it. Errors never
// escape: every outcome is recorded on the returned result.
func (e *Engine) Reconcile(ctx context.Context, spec *models.DesiredHostSpec) *models.ReconciliationResult {
	h := &hostRun{
		e:      e,
		spec:   spec,
		result: &models.ReconciliationResult{RecordID: spec.RecordID, Host: spec.Name},
		log:    e.logger.With().Str("host", spec.Name).Int("record_id", spec.RecordID).Logger(),
	}

	if spec.State != models.StateRemoved && len(spec.HostgroupPaths) == 0 && len(spec.HostgroupErrors) > 0 {
		h.record(models.FacetHostgroups, models.FacetSkipped, "no hostgroup resolved, host left untouched",
			errors.Join(spec.HostgroupErrors...))

		return h.result
	}

	current, err := e.monitor.GetHost(ctx, spec.Name)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		h.fail(models.FacetHost, "host lookup failed", err)
		return h.result
	}

	if errors.Is(err, models.ErrNotFound) {
		current = nil
	}

	if spec.State == models.StateRemoved {
		h.remove(ctx, current)
		return h.result
	}

	deps := h.resolveDependencies(ctx, current)

	if current == nil {
		h.create(ctx, deps)
		return h.result
	}

	h.record(models.FacetHost, models.FacetInSync, "host exists", nil)

	h.syncName(ctx, current)
	h.syncStatus(ctx, current)
	h.syncHostgroups(ctx, current, deps)
	h.syncTemplates(ctx, current, deps)
	h.syncInterface(ctx, current)
	h.syncProxy(ctx, current, deps)
	h.syncTags(ctx, current)
	h.syncUsermacros(ctx, current)
	h.syncInventory(ctx, current)

	return h.result
}

func (h *hostRun) remove(ctx context.Context, current *models.MonitoringHost) {
	if current == nil {
		h.record(models.FacetHost, models.FacetInSync, "removal status and host absent", nil)
		return
	}

	h.write(models.FacetHost, "delete host for removal status", func() error {
		return h.e.monitor.DeleteHost(ctx, current.ID)
	})
}

// dependencies are the Zabbix ids the facets link to.
type dependencies struct {
	groupIDs   []string
	groupErr   error
	groupPlans []string

	templateIDs []string
	templateErr error

	proxy    *models.ProxyAssignment
	proxyErr error
}

func (h *hostRun) resolveDependencies(ctx context.Context, current *models.MonitoringHost) *dependencies {
	d := &dependencies{}

	for _, err := range h.spec.HostgroupErrors {
		h.result.Warn(err.Error())
		h.log.Warn().Err(err).Msg("Hostgroup format did not resolve")
	}

	d.groupIDs, d.groupPlans, d.groupErr = h.resolveGroups(ctx)
	d.templateIDs, d.templateErr = h.resolveTemplates(ctx)

	// Reading the proxy only matters when it may be written.
	if h.spec.Proxy.Kind != models.ProxyNone || (h.spec.Proxy.Clear && current != nil) {
		d.proxy, d.proxyErr = h.resolveProxy(ctx)
	}

	return d
}

func (h *hostRun) resolveGroups(ctx context.Context) (ids, planned []string, err error) {
	if len(h.spec.HostgroupPaths) == 0 {
		if len(h.spec.HostgroupErrors) > 0 {
			return nil, nil, errors.Join(h.spec.HostgroupErrors...)
		}

		return nil, nil, fmt.Errorf("no hostgroup resolved: %w", models.ErrHostgroupUnresolved)
	}

	create := h.e.opts.CreateHostgroups && !h.e.opts.DryRun

	var errs []error

	for _, path := range h.spec.HostgroupPaths {
		names := []string{path.String()}
		if h.e.opts.CreateHostgroups {
			names = path.Ancestors()
		}

		var id string

		for _, name := range names {
			gid, created, gerr := h.e.groups.Ensure(ctx, h.e.monitor, name, create)

			switch {
			case gerr == nil:
				id = gid

				if created {
					h.log.Info().Str("hostgroup", name).Msg("Created hostgroup")
				}
			case errors.Is(gerr, models.ErrNotFound) && h.e.opts.DryRun && h.e.opts.CreateHostgroups:
				planned = append(planned, name)
				id = ""
			case errors.Is(gerr, models.ErrNotFound):
				errs = append(errs, fmt.Errorf("hostgroup %s does not exist and creation is disabled: %w", name, gerr))
				id = ""
			default:
				errs = append(errs, fmt.Errorf("hostgroup %s: %w", name, gerr))
				id = ""
			}
		}

		if id != "" {
			ids = append(ids, id)
		}
	}

	return ids, planned, errors.Join(errs...)
}

func (h *hostRun) resolveTemplates(ctx context.Context) ([]string, error) {
	var missing []string

	ids := make([]string, 0, len(h.spec.Templates))

	for _, name := range h.spec.Templates {
		if id, ok := h.e.templates.get(name); ok {
			ids = append(ids, id)
			continue
		}

		missing = append(missing, name)
	}

	if len(missing) == 0 {
		return ids, nil
	}

	found, err := h.e.monitor.GetTemplates(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("template lookup: %w", err)
	}

	var absent []string

	for _, name := range missing {
		id, ok := found[name]
		if !ok {
			absent = append(absent, name)
			continue
		}

		h.e.templates.put(name, id)
		ids = append(ids, id)
	}

	if len(absent) > 0 {
		return nil, fmt.Errorf("templates %s: %w", strings.Join(absent, ", "), models.ErrNotFound)
	}

	return ids, nil
}

func (h *hostRun) resolveProxy(ctx context.Context) (*models.ProxyAssignment, error) {
	p := h.spec.Proxy

	switch p.Kind {
	case models.ProxyGroup:
		id, err := h.e.proxyGroups.lookup(ctx, p.Name, h.e.monitor.GetProxyGroup)
		if err != nil {
			return nil, fmt.Errorf("proxy group %s: %w", p.Name, err)
		}

		return &models.ProxyAssignment{Kind: models.ProxyGroup, ID: id}, nil
	case models.ProxyDirect:
		id, err := h.e.proxies.lookup(ctx, p.Name, h.e.monitor.GetProxy)
		if err != nil {
			return nil, fmt.Errorf("proxy %s: %w", p.Name, err)
		}

		return &models.ProxyAssignment{Kind: models.ProxyDirect, ID: id}, nil
	case models.ProxyNone:
	}

	if p.Clear {
		return &models.ProxyAssignment{Kind: models.ProxyNone}, nil
	}

	return nil, nil
}

// create adds the host in one call. Missing groups or templates block
// creation; a proxy that cannot be resolved only fails the proxy facet.
func (h *hostRun) create(ctx context.Context, d *dependencies) {
	switch {
	case d.groupErr != nil:
		h.fail(models.FacetHost, "cannot create host without its hostgroups", d.groupErr)
		return
	case d.templateErr != nil:
		h.fail(models.FacetHost, "cannot create host without its templates", d.templateErr)
		return
	case len(d.groupIDs) == 0 && len(d.groupPlans) == 0:
		h.fail(models.FacetHost, "cannot create host without hostgroups", models.ErrHostgroupUnresolved)
		return
	}

	payload := &models.HostCreate{
		Host:          h.spec.Name,
		Name:          h.spec.VisibleName,
		Status:        h.spec.State.ZabbixStatus(),
		GroupIDs:      d.groupIDs,
		TemplateIDs:   d.templateIDs,
		Interface:     h.spec.Interface,
		Tags:          h.spec.Tags,
		Macros:        h.spec.Usermacros,
		InventoryMode: h.spec.InventoryMode,
		Inventory:     h.spec.Inventory,
	}

	if d.proxyErr != nil {
		h.fail(models.FacetProxy, "proxy not resolved, creating host without it", d.proxyErr)
	} else if d.proxy != nil && d.proxy.Kind != models.ProxyNone {
		payload.Proxy = d.proxy
	}

	reason := "create host"
	if len(d.groupPlans) > 0 {
		reason = fmt.Sprintf("create host and hostgroups %s", strings.Join(d.groupPlans, ", "))
	}

	h.write(models.FacetHost, reason, func() error {
		_, err := h.e.monitor.CreateHost(ctx, payload)
		return err
	})
}

func (h *hostRun) update(ctx context.Context, current *models.MonitoringHost, facet models.Facet, reason string, u *models.HostUpdate) {
	u.HostID = current.ID
	h.write(facet, reason, func() error {
		return h.e.monitor.UpdateHost(ctx, u)
	})
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)

	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	a, b = sortedCopy(a), sortedCopy(b)

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
