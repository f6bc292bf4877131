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

package desired

import "github.com/carverauto/netbox-zabbix-sync/pkg/models"

// ProxyOptions configures where proxy settings come from.
type ProxyOptions struct {
	CustomField      string
	GroupCustomField string
	// FullSync clears the linkage of hosts that specify neither.
	FullSync        bool
	GroupsSupported bool
}

// ResolveProxyLinkage applies the precedence rules: a proxy group wins when
// the monitoring system supports groups, otherwise the proxy is used. With
// neither, the current linkage is kept unless fullSync asks to clear it.
func ResolveProxyLinkage(proxy, group string, groupsSupported, fullSync bool) models.ProxyLinkage {
	switch {
	case group != "" && groupsSupported:
		return models.ProxyLinkage{Kind: models.ProxyGroup, Name: group}
	case proxy != "":
		return models.ProxyLinkage{Kind: models.ProxyDirect, Name: proxy}
	default:
		return models.ProxyLinkage{Kind: models.ProxyNone, Clear: fullSync}
	}
}

// proxySettings reads the proxy and proxy group names for rec. Context data
// wins over the configured custom fields.
func proxySettings(rec *models.SourceRecord, opts ProxyOptions) (proxy, group string) {
	if v, ok := rec.Context.String("zabbix", "proxy"); ok {
		proxy = v
	} else if opts.CustomField != "" {
		proxy, _ = rec.CustomField(opts.CustomField)
	}

	if v, ok := rec.Context.String("zabbix", "proxy_group"); ok {
		group = v
	} else if opts.GroupCustomField != "" {
		group, _ = rec.CustomField(opts.GroupCustomField)
	}

	return proxy, group
}
