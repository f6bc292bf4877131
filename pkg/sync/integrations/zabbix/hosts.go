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

package zabbix

import (
	"context"
	"fmt"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// GetHost returns the host with the technical name, or an error matching
// models.ErrNotFound.
func (c *Client) GetHost(ctx context.Context, name string) (*models.MonitoringHost, error) {
	v7, err := c.atLeast(proxyGroupsSince)
	if err != nil {
		return nil, err
	}

	groupsSelect, err := c.atLeast(hostGroupsSince)
	if err != nil {
		return nil, err
	}

	output := []string{"hostid", "host", "name", "status", "inventory_mode"}
	if v7 {
		output = append(output, "proxyid", "proxy_groupid", "monitored_by")
	} else {
		output = append(output, "proxy_hostid")
	}

	params := map[string]any{
		"output":                output,
		"filter":                map[string]any{"host": []string{name}},
		"selectInterfaces":      []string{"interfaceid", "type", "ip", "dns", "useip", "port", "details"},
		"selectParentTemplates": []string{"templateid", "host", "name"},
		"selectTags":            []string{"tag", "value"},
		"selectMacros":          []string{"hostmacroid", "macro", "value", "type", "description"},
		"selectInventory":       "extend",
	}

	if groupsSelect {
		params["selectHostGroups"] = []string{"groupid", "name"}
	} else {
		params["selectGroups"] = []string{"groupid", "name"}
	}

	var hosts []hostRecord
	if err := c.call(ctx, "host.get", params, &hosts); err != nil {
		return nil, err
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("host %q: %w", name, models.ErrNotFound)
	}

	return decodeHost(&hosts[0], v7)
}

// CreateHost creates the host with everything in one call and returns its id.
func (c *Client) CreateHost(ctx context.Context, h *models.HostCreate) (string, error) {
	params := map[string]any{
		"host":           h.Host,
		"name":           h.Name,
		"status":         h.Status,
		"groups":         groupRefs(h.GroupIDs),
		"templates":      templateRefs(h.TemplateIDs),
		"inventory_mode": int(h.InventoryMode),
	}

	if h.Interface != nil {
		params["interfaces"] = []map[string]any{encodeInterface(h.Interface)}
	}

	if h.Proxy != nil {
		if err := c.proxyFields(params, h.Proxy); err != nil {
			return "", err
		}
	}

	if h.Tags != nil {
		params["tags"] = encodeTags(h.Tags)
	}

	if h.Macros != nil {
		macros := make([]map[string]any, 0, len(h.Macros))
		for _, m := range h.Macros {
			macros = append(macros, encodeMacro(m))
		}

		params["macros"] = macros
	}

	if h.Inventory != nil && h.InventoryMode != models.InventoryDisabled {
		params["inventory"] = h.Inventory
	}

	var created createdIDs
	if err := c.call(ctx, "host.create", params, &created); err != nil {
		return "", err
	}

	if len(created.HostIDs) == 0 {
		return "", fmt.Errorf("host.create %s: %w", h.Host, errEmptyCreateResult)
	}

	c.logger.Debug().Str("host", h.Host).Str("hostid", created.HostIDs[0]).Msg("Created Zabbix host")

	return created.HostIDs[0], nil
}

// UpdateHost sends the fields set in u in one host.update call.
func (c *Client) UpdateHost(ctx context.Context, u *models.HostUpdate) error {
	params := map[string]any{"hostid": u.HostID}

	if u.Name != nil {
		params["name"] = *u.Name
	}

	if u.Status != nil {
		params["status"] = *u.Status
	}

	if u.GroupIDs != nil {
		params["groups"] = groupRefs(u.GroupIDs)
	}

	if u.TemplateIDs != nil {
		params["templates"] = templateRefs(u.TemplateIDs)
	}

	if len(u.ClearTemplateIDs) > 0 {
		params["templates_clear"] = templateRefs(u.ClearTemplateIDs)
	}

	if u.Proxy != nil {
		if err := c.proxyFields(params, u.Proxy); err != nil {
			return err
		}
	}

	if u.SetTags {
		params["tags"] = encodeTags(u.Tags)
	}

	if u.SetMacros {
		params["macros"] = encodeMacroWrites(u.Macros)
	}

	if u.InventoryMode != nil {
		params["inventory_mode"] = int(*u.InventoryMode)
	}

	if u.Inventory != nil {
		params["inventory"] = u.Inventory
	}

	return c.call(ctx, "host.update", params, nil)
}

// DeleteHost deletes the host by id.
func (c *Client) DeleteHost(ctx context.Context, hostID string) error {
	return c.call(ctx, "host.delete", []string{hostID}, nil)
}

// CreateInterface adds spec as the main interface of its type.
func (c *Client) CreateInterface(ctx context.Context, hostID string, spec *models.InterfaceSpec) error {
	params := encodeInterface(spec)
	params["hostid"] = hostID

	return c.call(ctx, "hostinterface.create", params, nil)
}

// UpdateInterface writes the changed interface fields.
func (c *Client) UpdateInterface(ctx context.Context, u *models.InterfaceUpdate) error {
	return c.call(ctx, "hostinterface.update", encodeInterfaceUpdate(u), nil)
}

func (c *Client) proxyFields(dst map[string]any, p *models.ProxyAssignment) error {
	v7, err := c.atLeast(proxyGroupsSince)
	if err != nil {
		return err
	}

	return encodeProxy(dst, p, v7)
}
