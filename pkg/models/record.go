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

// Package models holds the types shared by the NetBox reader, the desired
// state builder, the Zabbix writer and the reconciler.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordKind distinguishes the two NetBox object families that map to hosts.
type RecordKind string

const (
	KindDevice         RecordKind = "device"
	KindVirtualMachine RecordKind = "virtual_machine"
)

// Ref is a reference to a related NetBox object.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// RecordStatus is the NetBox status choice of a record.
type RecordStatus struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SourceTag is a NetBox tag attached to a record.
type SourceTag struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Display string `json:"display"`
}

// VirtualChassis describes chassis membership of a device.
type VirtualChassis struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	MasterID int    `json:"master_id"`
}

// SourceRecord is one CMDB entry, read-only for the whole run.
type SourceRecord struct {
	ID     int          `json:"id"`
	Kind   RecordKind   `json:"kind"`
	Name   string       `json:"name"`
	Status RecordStatus `json:"status"`

	Site         *Ref `json:"site,omitempty"`
	Region       *Ref `json:"region,omitempty"`
	SiteGroup    *Ref `json:"site_group,omitempty"`
	Tenant       *Ref `json:"tenant,omitempty"`
	TenantGroup  *Ref `json:"tenant_group,omitempty"`
	Role         *Ref `json:"role,omitempty"`
	Platform     *Ref `json:"platform,omitempty"`
	Manufacturer *Ref `json:"manufacturer,omitempty"`
	DeviceType   *Ref `json:"device_type,omitempty"`
	Location     *Ref `json:"location,omitempty"`
	Rack         *Ref `json:"rack,omitempty"`
	Cluster      *Ref `json:"cluster,omitempty"`
	ClusterType  *Ref `json:"cluster_type,omitempty"`
	// Device is the parent device of a virtual machine.
	Device *Ref `json:"device,omitempty"`

	VirtualChassis *VirtualChassis `json:"virtual_chassis,omitempty"`
	PrimaryIP      string          `json:"primary_ip,omitempty"`

	CustomFields           map[string]any `json:"custom_fields,omitempty"`
	DeviceTypeCustomFields map[string]any `json:"device_type_custom_fields,omitempty"`
	Tags                   []SourceTag    `json:"tags,omitempty"`
	Context                ContextData    `json:"config_context,omitempty"`

	// Raw is the object as returned by the API, used for slash-path field maps.
	Raw map[string]any `json:"-"`
}

// IsDevice reports whether the record is a physical device.
func (r *SourceRecord) IsDevice() bool {
	return r.Kind == KindDevice
}

// CustomField returns the custom field value as a string. Object-typed
// fields resolve to their name.
func (r *SourceRecord) CustomField(name string) (string, bool) {
	v, ok := r.CustomFields[name]
	if !ok || v == nil {
		return "", false
	}

	s := Stringify(v)

	return s, s != ""
}

// Field walks Raw along a slash-separated path such as "site/name".
func (r *SourceRecord) Field(path string) (any, bool) {
	var cur any = r.Raw

	for _, part := range strings.Split(path, "/") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

// Stringify renders scalar values the way NetBox displays them. Objects with
// a name resolve to the name, everything else non-scalar yields "".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case map[string]any:
		if name, ok := t["name"].(string); ok {
			return name
		}

		return ""
	case fmt.Stringer:
		return t.String()
	default:
		return ""
	}
}

// IsScalar reports whether v is a value Stringify renders without loss.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, float32, int, int64:
		return true
	default:
		return false
	}
}
