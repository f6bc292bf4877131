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

// Package desired computes the target monitoring state of a CMDB record.
package desired

import (
	"errors"
	"strings"

	"github.com/carverauto/netbox-zabbix-sync/pkg/hostgroup"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// Options holds everything the builder needs from configuration.
type Options struct {
	HostgroupFormats   []hostgroup.Format
	VMHostgroupFormats []hostgroup.Format
	Status             StatusPolicy
	Templates          TemplateOptions
	Interface          InterfaceDefaults
	Proxy              ProxyOptions
	Clustering         bool
	Tags               TagOptions
	Macros             MacroOptions
	Inventory          InventoryOptions
}

// Builder turns source records into DesiredHostSpecs. It holds no mutable
// state and is safe for concurrent use.
type Builder struct {
	opts     Options
	resolver *hostgroup.PathResolver
	logger   logger.Logger
}

// NewBuilder returns a Builder.
func NewBuilder(opts Options, resolver *hostgroup.PathResolver, log logger.Logger) *Builder {
	return &Builder{opts: opts, resolver: resolver, logger: log}
}

// Build computes the desired state of rec. Removed records only carry what
// is needed to find the host. Hostgroup failures are reported on the spec,
// not as an error, so other facets can still be reconciled.
func (b *Builder) Build(rec *models.SourceRecord) (*models.DesiredHostSpec, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return nil, incomplete(rec, "a name")
	}

	name := rec.Name

	if b.opts.Clustering && rec.IsDevice() {
		var err error

		if name, err = clusterName(rec); err != nil {
			return nil, err
		}
	}

	technical, visible := HostNames(rec.ID, name)

	spec := &models.DesiredHostSpec{
		RecordID:    rec.ID,
		Kind:        rec.Kind,
		Name:        technical,
		VisibleName: visible,
		State:       b.opts.Status.Map(rec.Status),
	}

	if spec.State == models.StateRemoved {
		return spec, nil
	}

	formats := b.opts.HostgroupFormats
	if !rec.IsDevice() {
		formats = b.opts.VMHostgroupFormats
	}

	spec.HostgroupPaths, spec.HostgroupErrors = b.resolver.Resolve(rec, formats)
	if len(spec.HostgroupPaths) == 0 {
		return nil, &models.RecordSkippedError{
			RecordID: rec.ID,
			Name:     rec.Name,
			Reason:   "no hostgroup format resolved",
			Err:      errors.Join(spec.HostgroupErrors...),
		}
	}

	templates, err := SelectTemplates(rec, b.opts.Templates)
	if err != nil {
		return nil, err
	}

	spec.Templates = templates

	if spec.Interface, err = BuildInterface(rec, b.opts.Interface); err != nil {
		return nil, err
	}

	proxy, group := proxySettings(rec, b.opts.Proxy)
	if group != "" && proxy == "" && !b.opts.Proxy.GroupsSupported {
		b.logger.Warn().
			Str("host", technical).
			Str("proxy_group", group).
			Msg("Proxy group configured but not supported by this Zabbix version, ignoring")
	}

	spec.Proxy = ResolveProxyLinkage(proxy, group, b.opts.Proxy.GroupsSupported, b.opts.Proxy.FullSync)

	if b.opts.Tags.Enabled {
		spec.Tags = ComposeTags(rec, b.opts.Tags, b.logger)
	}

	if b.opts.Macros.Mode != models.MacroSyncOff {
		spec.Usermacros = ComposeMacros(rec, b.opts.Macros, b.logger)
	}

	spec.InventoryMode = b.opts.Inventory.Mode
	if b.opts.Inventory.Enabled && b.opts.Inventory.Mode != models.InventoryDisabled {
		spec.Inventory = ComposeInventory(rec, b.opts.Inventory, b.logger)
	}

	return spec, nil
}
