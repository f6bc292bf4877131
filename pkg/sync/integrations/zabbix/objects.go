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

// GetHostGroup returns the id of the host group with the full name.
func (c *Client) GetHostGroup(ctx context.Context, name string) (string, error) {
	var groups []groupRecord

	params := map[string]any{
		"output": []string{"groupid", "name"},
		"filter": map[string]any{"name": []string{name}},
	}

	if err := c.call(ctx, "hostgroup.get", params, &groups); err != nil {
		return "", err
	}

	if len(groups) == 0 {
		return "", fmt.Errorf("host group %q: %w", name, models.ErrNotFound)
	}

	return groups[0].GroupID, nil
}

// CreateHostGroup creates one host group. A group that already exists is
// reported as models.ErrAlreadyExists.
func (c *Client) CreateHostGroup(ctx context.Context, name string) (string, error) {
	var created createdIDs

	if err := c.call(ctx, "hostgroup.create", map[string]any{"name": name}, &created); err != nil {
		if isDuplicate(err) {
			return "", fmt.Errorf("host group %q: %w", name, models.ErrAlreadyExists)
		}

		return "", err
	}

	if len(created.GroupIDs) == 0 {
		return "", fmt.Errorf("hostgroup.create %s: %w", name, errEmptyCreateResult)
	}

	c.logger.Info().Str("hostgroup", name).Msg("Created Zabbix host group")

	return created.GroupIDs[0], nil
}

// GetTemplates maps the visible names found among names to template ids.
// Missing names are absent from the result.
func (c *Client) GetTemplates(ctx context.Context, names []string) (map[string]string, error) {
	var templates []templateRecord

	params := map[string]any{
		"output": []string{"templateid", "host", "name"},
		"filter": map[string]any{"name": names},
	}

	if err := c.call(ctx, "template.get", params, &templates); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(templates))
	for _, t := range templates {
		out[t.Name] = t.TemplateID
	}

	return out, nil
}

// GetProxy returns the id of the proxy with the name. The name is stored in
// "host" before 7.0 and in "name" after.
func (c *Client) GetProxy(ctx context.Context, name string) (string, error) {
	v7, err := c.atLeast(proxyGroupsSince)
	if err != nil {
		return "", err
	}

	field := "host"
	if v7 {
		field = "name"
	}

	var proxies []proxyRecord

	params := map[string]any{
		"output": []string{"proxyid", field},
		"filter": map[string]any{field: []string{name}},
	}

	if err := c.call(ctx, "proxy.get", params, &proxies); err != nil {
		return "", err
	}

	if len(proxies) == 0 {
		return "", fmt.Errorf("proxy %q: %w", name, models.ErrNotFound)
	}

	return proxies[0].ProxyID, nil
}

// GetProxyGroup returns the id of the proxy group with the name.
func (c *Client) GetProxyGroup(ctx context.Context, name string) (string, error) {
	if !c.SupportsProxyGroups() {
		return "", models.ErrProxyGroupsUnsupported
	}

	var groups []proxyGroupRecord

	params := map[string]any{
		"output": []string{"proxy_groupid", "name"},
		"filter": map[string]any{"name": []string{name}},
	}

	if err := c.call(ctx, "proxygroup.get", params, &groups); err != nil {
		return "", err
	}

	if len(groups) == 0 {
		return "", fmt.Errorf("proxy group %q: %w", name, models.ErrNotFound)
	}

	return groups[0].ProxyGroupID, nil
}
