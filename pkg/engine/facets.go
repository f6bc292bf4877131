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

package engine

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/carverauto/netbox-zabbix-sync/pkg/desired"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

func (h *hostRun) syncName(ctx context.Context, current *models.MonitoringHost) {
	if current.Name == h.spec.VisibleName {
		h.record(models.FacetName, models.FacetInSync, "", nil)
		return
	}

	name := h.spec.VisibleName
	h.update(ctx, current, models.FacetName,
		fmt.Sprintf("visible name %q -> %q", current.Name, name),
		&models.HostUpdate{Name: &name})
}

func (h *hostRun) syncStatus(ctx context.Context, current *models.MonitoringHost) {
	status := h.spec.State.ZabbixStatus()
	if current.Status == status {
		h.record(models.FacetStatus, models.FacetInSync, "", nil)
		return
	}

	h.update(ctx, current, models.FacetStatus,
		fmt.Sprintf("status -> %s", h.spec.State),
		&models.HostUpdate{Status: &status})
}

func (h *hostRun) syncHostgroups(ctx context.Context, current *models.MonitoringHost, d *dependencies) {
	if d.groupErr != nil {
		h.fail(models.FacetHostgroups, "hostgroups not resolved, links left unchanged", d.groupErr)
		return
	}

	currentIDs := make([]string, 0, len(current.Groups))
	for _, g := range current.Groups {
		currentIDs = append(currentIDs, g.ID)
	}

	if len(d.groupPlans) > 0 {
		h.record(models.FacetHostgroups, models.FacetPlanned,
			"create and link hostgroups "+strings.Join(d.groupPlans, ", "), nil)

		return
	}

	if sameSet(currentIDs, d.groupIDs) {
		h.record(models.FacetHostgroups, models.FacetInSync, "", nil)
		return
	}

	h.update(ctx, current, models.FacetHostgroups,
		"hostgroups -> "+strings.Join(h.spec.HostgroupNames(), ", "),
		&models.HostUpdate{GroupIDs: d.groupIDs})
}

func (h *hostRun) syncTemplates(ctx context.Context, current *models.MonitoringHost, d *dependencies) {
	if d.templateErr != nil {
		h.fail(models.FacetTemplates, "templates not resolved, links left unchanged", d.templateErr)
		return
	}

	desiredSet := make(map[string]bool, len(d.templateIDs))
	for _, id := range d.templateIDs {
		desiredSet[id] = true
	}

	var (
		currentIDs []string
		unlink     []string
	)

	for _, t := range current.Templates {
		currentIDs = append(currentIDs, t.ID)

		if !desiredSet[t.ID] {
			unlink = append(unlink, t.ID)
		}
	}

	if sameSet(currentIDs, d.templateIDs) {
		h.record(models.FacetTemplates, models.FacetInSync, "", nil)
		return
	}

	h.update(ctx, current, models.FacetTemplates,
		"templates -> "+strings.Join(h.spec.Templates, ", "),
		&models.HostUpdate{TemplateIDs: d.templateIDs, ClearTemplateIDs: unlink})
}

func (h *hostRun) syncInterface(ctx context.Context, current *models.MonitoringHost) {
	want := h.spec.Interface
	if want == nil {
		h.record(models.FacetInterface, models.FacetSkipped, "no desired interface", nil)
		return
	}

	switch len(current.Interfaces) {
	case 0:
		h.write(models.FacetInterface, "create "+want.Type.String()+" interface", func() error {
			return h.e.monitor.CreateInterface(ctx, current.ID, want)
		})

		return
	case 1:
	default:
		h.record(models.FacetInterface, models.FacetSkipped,
			fmt.Sprintf("host has %d interfaces, only single interface hosts are managed", len(current.Interfaces)), nil)

		return
	}

	have := current.Interfaces[0]

	if have.Type != want.Type {
		err := &models.InterfaceTypeChangeUnsupportedError{Host: h.spec.Name, Current: have.Type, Desired: want.Type}
		h.record(models.FacetInterface, models.FacetSkipped, "interface type differs", err)

		return
	}

	fields := InterfaceDiff(&have.InterfaceSpec, want)
	if len(fields) == 0 {
		h.record(models.FacetInterface, models.FacetInSync, "", nil)
		return
	}

	update := &models.InterfaceUpdate{
		InterfaceID: have.ID,
		HostID:      current.ID,
		Fields:      fields,
		Desired:     *want,
	}

	h.write(models.FacetInterface, "update "+strings.Join(fields, ", "), func() error {
		return h.e.monitor.UpdateInterface(ctx, update)
	})
}

// InterfaceDiff lists the fields of want that differ from have. The type is
// not compared.
func InterfaceDiff(have, want *models.InterfaceSpec) []string {
	var fields []string

	add := func(changed bool, name string) {
		if changed {
			fields = append(fields, name)
		}
	}

	add(have.IP != want.IP, "ip")
	add(have.DNS != want.DNS, "dns")
	add(have.UseIP != want.UseIP, "useip")
	add(have.Port != want.Port, "port")

	if want.SNMP == nil {
		return fields
	}

	hs := have.SNMP
	if hs == nil {
		hs = &models.SNMPDetails{}
	}

	ws := want.SNMP

	add(hs.Version != ws.Version, "version")
	add(hs.Bulk != ws.Bulk, "bulk")

	if ws.Version == 3 {
		add(hs.SecurityName != ws.SecurityName, "securityname")
		add(hs.SecurityLevel != ws.SecurityLevel, "securitylevel")
		add(hs.AuthProtocol != ws.AuthProtocol, "authprotocol")
		add(hs.AuthPassphrase != ws.AuthPassphrase, "authpassphrase")
		add(hs.PrivProtocol != ws.PrivProtocol, "privprotocol")
		add(hs.PrivPassphrase != ws.PrivPassphrase, "privpassphrase")
		add(hs.ContextName != ws.ContextName, "contextname")
	} else {
		add(hs.Community != ws.Community, "community")
	}

	return fields
}

func (h *hostRun) syncProxy(ctx context.Context, current *models.MonitoringHost, d *dependencies) {
	if d.proxyErr != nil {
		h.fail(models.FacetProxy, "proxy not resolved, linkage left unchanged", d.proxyErr)
		return
	}

	if d.proxy == nil {
		h.record(models.FacetProxy, models.FacetInSync, "no proxy configured, current linkage kept", nil)
		return
	}

	have := current.Proxy
	if have.Kind == d.proxy.Kind && (have.Kind == models.ProxyNone || have.ID == d.proxy.ID) {
		h.record(models.FacetProxy, models.FacetInSync, "", nil)
		return
	}

	reason := "clear proxy linkage"
	if d.proxy.Kind != models.ProxyNone {
		reason = fmt.Sprintf("link %s %s", d.proxy.Kind, h.spec.Proxy.Name)
	}

	h.update(ctx, current, models.FacetProxy, reason, &models.HostUpdate{Proxy: d.proxy})
}

func (h *hostRun) syncTags(ctx context.Context, current *models.MonitoringHost) {
	if h.spec.Tags == nil {
		return
	}

	if slices.Equal(desired.NormalizeTags(current.Tags), h.spec.Tags) {
		h.record(models.FacetTags, models.FacetInSync, "", nil)
		return
	}

	h.update(ctx, current, models.FacetTags,
		fmt.Sprintf("%d tags", len(h.spec.Tags)),
		&models.HostUpdate{Tags: h.spec.Tags, SetTags: true})
}

func (h *hostRun) syncUsermacros(ctx context.Context, current *models.MonitoringHost) {
	if h.spec.Usermacros == nil {
		return
	}

	writes, changed := MacroWrites(current.Macros, h.spec.Usermacros, h.e.opts.MacroMode)
	if len(changed) == 0 {
		h.record(models.FacetUsermacros, models.FacetInSync, "", nil)
		return
	}

	h.update(ctx, current, models.FacetUsermacros,
		"usermacros "+strings.Join(changed, ", "),
		&models.HostUpdate{Macros: writes, SetMacros: true})
}

// MacroWrites computes the complete macro set for a host.update call and the
// names that change. Sensitive values are only sent when ShouldResend says so;
// otherwise the stored value is kept. Macros not desired are dropped.
func MacroWrites(have []models.HostMacro, want []models.Macro, mode models.MacroSyncMode) ([]models.MacroWrite, []string) {
	byName := make(map[string]models.HostMacro, len(have))
	for _, m := range have {
		byName[m.Name] = m
	}

	writes := make([]models.MacroWrite, 0, len(want))

	var changed []string

	wanted := make(map[string]bool, len(want))

	for _, m := range want {
		wanted[m.Name] = true
		cur, exists := byName[m.Name]

		w := models.MacroWrite{ID: cur.ID, Macro: m}

		if m.Kind.IsSensitive() {
			present := exists && cur.Kind == m.Kind && !(m.Kind == models.MacroVault && cur.Value == "")

			if desired.ShouldResend(present, mode) {
				changed = append(changed, m.Name)
			} else {
				w.KeepValue = true
				if cur.Description != m.Description {
					changed = append(changed, m.Name)
				}
			}
		} else if !exists || cur.Kind != m.Kind || cur.Value != m.Value || cur.Description != m.Description {
			changed = append(changed, m.Name)
		}

		writes = append(writes, w)
	}

	for _, m := range have {
		if !wanted[m.Name] {
			changed = append(changed, "-"+m.Name)
		}
	}

	return writes, changed
}

func (h *hostRun) syncInventory(ctx context.Context, current *models.MonitoringHost) {
	if h.spec.Inventory == nil {
		return
	}

	var changed []string

	if current.InventoryMode != h.spec.InventoryMode {
		changed = append(changed, "inventory_mode")
	}

	for field, value := range h.spec.Inventory {
		if current.Inventory[field] != value {
			changed = append(changed, field)
		}
	}

	if len(changed) == 0 {
		h.record(models.FacetInventory, models.FacetInSync, "", nil)
		return
	}

	sort.Strings(changed)

	mode := h.spec.InventoryMode
	h.update(ctx, current, models.FacetInventory,
		"inventory "+strings.Join(changed, ", "),
		&models.HostUpdate{InventoryMode: &mode, Inventory: h.spec.Inventory})
}
