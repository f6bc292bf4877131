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
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

func atoi(s string) int {
	n, _ := strconv.Atoi(s)

	return n
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

// isObject tells a JSON object from the empty array Zabbix sends instead.
func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeHost(r *hostRecord, v7 bool) (*models.MonitoringHost, error) {
	host := &models.MonitoringHost{
		ID:            r.HostID,
		Host:          r.Host,
		Name:          r.Name,
		Status:        r.Status,
		InventoryMode: models.InventoryMode(atoi(r.InventoryMode)),
		Proxy:         decodeProxy(r, v7),
	}

	if r.InventoryMode == "" {
		host.InventoryMode = models.InventoryDisabled
	}

	groups := r.HostGroups
	if len(groups) == 0 {
		groups = r.Groups
	}

	for _, g := range groups {
		host.Groups = append(host.Groups, models.NamedID{ID: g.GroupID, Name: g.Name})
	}

	for _, t := range r.ParentTemplates {
		host.Templates = append(host.Templates, models.NamedID{ID: t.TemplateID, Name: t.Name})
	}

	for _, rec := range r.Interfaces {
		iface, err := decodeInterface(rec)
		if err != nil {
			return nil, err
		}

		host.Interfaces = append(host.Interfaces, iface)
	}

	for _, t := range r.Tags {
		host.Tags = append(host.Tags, models.HostTag{Tag: t.Tag, Value: t.Value})
	}

	for _, m := range r.Macros {
		kind, _ := models.ParseMacroKind(m.Type)
		host.Macros = append(host.Macros, models.HostMacro{
			ID: m.HostMacroID,
			Macro: models.Macro{
				Name:        m.Macro,
				Kind:        kind,
				Value:       m.Value,
				Description: m.Description,
			},
		})
	}

	if isObject(r.Inventory) {
		if err := json.Unmarshal(r.Inventory, &host.Inventory); err != nil {
			return nil, err
		}
	}

	return host, nil
}

func decodeProxy(r *hostRecord, v7 bool) models.CurrentProxy {
	if !v7 {
		if r.ProxyHostID != "" && r.ProxyHostID != "0" {
			return models.CurrentProxy{Kind: models.ProxyDirect, ID: r.ProxyHostID}
		}

		return models.CurrentProxy{Kind: models.ProxyNone}
	}

	switch r.MonitoredBy {
	case "1":
		return models.CurrentProxy{Kind: models.ProxyDirect, ID: r.ProxyID}
	case "2":
		return models.CurrentProxy{Kind: models.ProxyGroup, ID: r.ProxyGroupID}
	default:
		return models.CurrentProxy{Kind: models.ProxyNone}
	}
}

func decodeInterface(r interfaceRecord) (models.HostInterface, error) {
	iface := models.HostInterface{
		ID: r.InterfaceID,
		InterfaceSpec: models.InterfaceSpec{
			Type:  models.InterfaceType(atoi(r.Type)),
			IP:    r.IP,
			DNS:   r.DNS,
			UseIP: r.UseIP == "1",
			Port:  r.Port,
		},
	}

	if iface.Type != models.InterfaceSNMP || !isObject(r.Details) {
		return iface, nil
	}

	var d snmpRecord
	if err := json.Unmarshal(r.Details, &d); err != nil {
		return iface, err
	}

	iface.SNMP = &models.SNMPDetails{
		Version:        atoi(d.Version),
		Bulk:           d.Bulk == "1",
		Community:      d.Community,
		SecurityName:   d.SecurityName,
		SecurityLevel:  atoi(d.SecurityLevel),
		AuthProtocol:   atoi(d.AuthProtocol),
		AuthPassphrase: d.AuthPassphrase,
		PrivProtocol:   atoi(d.PrivProtocol),
		PrivPassphrase: d.PrivPassphrase,
		ContextName:    d.ContextName,
	}

	return iface, nil
}

// encodeInterface renders a full interface object as the main interface of
// its type.
func encodeInterface(spec *models.InterfaceSpec) map[string]any {
	m := map[string]any{
		"type":  int(spec.Type),
		"main":  1,
		"useip": boolInt(spec.UseIP),
		"ip":    spec.IP,
		"dns":   spec.DNS,
		"port":  spec.Port,
	}

	if spec.SNMP != nil {
		m["details"] = encodeSNMP(spec.SNMP)
	}

	return m
}

func encodeSNMP(s *models.SNMPDetails) map[string]any {
	m := map[string]any{
		"version": s.Version,
		"bulk":    boolInt(s.Bulk),
	}

	if s.Version == 3 {
		m["securityname"] = s.SecurityName
		m["securitylevel"] = s.SecurityLevel
		m["authprotocol"] = s.AuthProtocol
		m["authpassphrase"] = s.AuthPassphrase
		m["privprotocol"] = s.PrivProtocol
		m["privpassphrase"] = s.PrivPassphrase
		m["contextname"] = s.ContextName
	} else {
		m["community"] = s.Community
	}

	return m
}

// snmpFields are the InterfaceUpdate field names stored in details.
var snmpFields = []string{
	"version", "bulk", "community", "securityname", "securitylevel",
	"authprotocol", "authpassphrase", "privprotocol", "privpassphrase", "contextname",
}

// encodeInterfaceUpdate sends the changed top-level fields. Zabbix replaces
// details as a whole, so any SNMP change sends the full details object.
func encodeInterfaceUpdate(u *models.InterfaceUpdate) map[string]any {
	m := map[string]any{"interfaceid": u.InterfaceID}
	want := u.Desired

	if u.Changed("ip") {
		m["ip"] = want.IP
	}

	if u.Changed("dns") {
		m["dns"] = want.DNS
	}

	if u.Changed("useip") {
		m["useip"] = boolInt(want.UseIP)
	}

	if u.Changed("port") {
		m["port"] = want.Port
	}

	if want.SNMP != nil {
		for _, f := range snmpFields {
			if u.Changed(f) {
				m["details"] = encodeSNMP(want.SNMP)
				break
			}
		}
	}

	return m
}

// encodeProxy writes the linkage fields for the server version.
func encodeProxy(dst map[string]any, p *models.ProxyAssignment, v7 bool) error {
	if !v7 {
		switch p.Kind {
		case models.ProxyDirect:
			dst["proxy_hostid"] = p.ID
		case models.ProxyGroup:
			return models.ErrProxyGroupsUnsupported
		default:
			dst["proxy_hostid"] = "0"
		}

		return nil
	}

	switch p.Kind {
	case models.ProxyDirect:
		dst["monitored_by"] = 1
		dst["proxyid"] = p.ID
	case models.ProxyGroup:
		dst["monitored_by"] = 2
		dst["proxy_groupid"] = p.ID
	default:
		dst["monitored_by"] = 0
	}

	return nil
}

func encodeTags(tags []models.HostTag) []map[string]string {
	out := make([]map[string]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, map[string]string{"tag": t.Tag, "value": t.Value})
	}

	return out
}

func encodeMacro(m models.Macro) map[string]any {
	return map[string]any{
		"macro":       m.Name,
		"value":       m.Value,
		"type":        int(m.Kind),
		"description": m.Description,
	}
}

// encodeMacroWrites omits the value of kept macros so Zabbix leaves the
// stored secret alone.
func encodeMacroWrites(writes []models.MacroWrite) []map[string]any {
	out := make([]map[string]any, 0, len(writes))

	for _, w := range writes {
		m := encodeMacro(w.Macro)
		if w.ID != "" {
			m["hostmacroid"] = w.ID
		}

		if w.KeepValue {
			delete(m, "value")
		}

		out = append(out, m)
	}

	return out
}

func groupRefs(ids []string) []map[string]string {
	out := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, map[string]string{"groupid": id})
	}

	return out
}

func templateRefs(ids []string) []map[string]string {
	out := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, map[string]string{"templateid": id})
	}

	return out
}
