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

package netbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// references holds the full objects behind the nested references of a
// record listing.
type references struct {
	sites       map[int]site
	tenants     map[int]tenant
	clusters    map[int]cluster
	deviceTypes map[int]deviceType
}

func (c *Client) loadReferences(ctx context.Context, kind models.RecordKind) (*references, error) {
	refs := &references{
		sites:       map[int]site{},
		tenants:     map[int]tenant{},
		clusters:    map[int]cluster{},
		deviceTypes: map[int]deviceType{},
	}

	if err := loadInto(ctx, c, "/api/dcim/sites/", refs.sites, func(s site) int { return s.ID }); err != nil {
		return nil, fmt.Errorf("loading sites: %w", err)
	}

	if err := loadInto(ctx, c, "/api/tenancy/tenants/", refs.tenants, func(t tenant) int { return t.ID }); err != nil {
		return nil, fmt.Errorf("loading tenants: %w", err)
	}

	if err := loadInto(ctx, c, "/api/virtualization/clusters/", refs.clusters, func(cl cluster) int { return cl.ID }); err != nil {
		return nil, fmt.Errorf("loading clusters: %w", err)
	}

	if kind == models.KindDevice {
		if err := loadInto(ctx, c, "/api/dcim/device-types/", refs.deviceTypes, func(d deviceType) int { return d.ID }); err != nil {
			return nil, fmt.Errorf("loading device types: %w", err)
		}
	}

	return refs, nil
}

func loadInto[T any](ctx context.Context, c *Client, path string, dst map[int]T, id func(T) int) error {
	raws, err := c.list(ctx, path, nil)
	if err != nil {
		return err
	}

	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}

		dst[id(v)] = v
	}

	return nil
}

func ref(n *nestedRef) *models.Ref {
	if n == nil {
		return nil
	}

	return &models.Ref{ID: n.ID, Name: n.Name, Slug: n.Slug}
}

func primaryIP(primary, v4, v6 *ipAddress) string {
	for _, ip := range []*ipAddress{primary, v4, v6} {
		if ip != nil && ip.Address != "" {
			return ip.Address
		}
	}

	return ""
}

func sourceTags(tags []tag) []models.SourceTag {
	out := make([]models.SourceTag, 0, len(tags))
	for _, t := range tags {
		out = append(out, models.SourceTag{Name: t.Name, Slug: t.Slug, Display: t.Display})
	}

	return out
}

// common fills the attributes shared by devices and virtual machines.
func (r *references) common(rec *models.SourceRecord, siteRef, tenantRef, clusterRef *nestedRef) {
	rec.Site = ref(siteRef)
	rec.Tenant = ref(tenantRef)
	rec.Cluster = ref(clusterRef)

	if siteRef != nil {
		if s, ok := r.sites[siteRef.ID]; ok {
			rec.Region = ref(s.Region)
			rec.SiteGroup = ref(s.Group)
		}
	}

	if tenantRef != nil {
		if t, ok := r.tenants[tenantRef.ID]; ok {
			rec.TenantGroup = ref(t.Group)
		}
	}

	if clusterRef != nil {
		if cl, ok := r.clusters[clusterRef.ID]; ok {
			rec.ClusterType = ref(cl.Type)
		}
	}
}

func decodeRaw(raw json.RawMessage) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *references) device(raw json.RawMessage) (*models.SourceRecord, error) {
	var d Device
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}

	m, err := decodeRaw(raw)
	if err != nil {
		return nil, err
	}

	role := d.Role
	if role == nil {
		// NetBox before 4.0 calls it device_role.
		role = d.DeviceRole
		if _, ok := m["role"]; !ok {
			m["role"] = m["device_role"]
		}
	}

	rec := &models.SourceRecord{
		ID:           d.ID,
		Kind:         models.KindDevice,
		Name:         d.Name,
		Status:       models.RecordStatus{Value: d.Status.Value, Label: d.Status.Label},
		Role:         ref(role),
		Platform:     ref(d.Platform),
		Location:     ref(d.Location),
		Rack:         ref(d.Rack),
		PrimaryIP:    primaryIP(d.PrimaryIP, d.PrimaryIP4, d.PrimaryIP6),
		CustomFields: d.CustomFields,
		Tags:         sourceTags(d.Tags),
		Context:      models.ContextData(d.ConfigContext),
		Raw:          m,
	}

	r.common(rec, d.Site, d.Tenant, d.Cluster)

	if d.DeviceType != nil {
		rec.DeviceType = &models.Ref{ID: d.DeviceType.ID, Name: d.DeviceType.Model, Slug: d.DeviceType.Slug}
		rec.Manufacturer = ref(d.DeviceType.Manufacturer)

		if dt, ok := r.deviceTypes[d.DeviceType.ID]; ok {
			rec.DeviceTypeCustomFields = dt.CustomFields
		}
	}

	if vc := d.VirtualChassis; vc != nil {
		rec.VirtualChassis = &models.VirtualChassis{ID: vc.ID, Name: vc.Name}
		if vc.Master != nil {
			rec.VirtualChassis.MasterID = vc.Master.ID
		}
	}

	return rec, nil
}

func (r *references) virtualMachine(raw json.RawMessage) (*models.SourceRecord, error) {
	var vm VirtualMachine
	if err := json.Unmarshal(raw, &vm); err != nil {
		return nil, err
	}

	m, err := decodeRaw(raw)
	if err != nil {
		return nil, err
	}

	rec := &models.SourceRecord{
		ID:           vm.ID,
		Kind:         models.KindVirtualMachine,
		Name:         vm.Name,
		Status:       models.RecordStatus{Value: vm.Status.Value, Label: vm.Status.Label},
		Role:         ref(vm.Role),
		Platform:     ref(vm.Platform),
		Device:       ref(vm.Device),
		PrimaryIP:    primaryIP(vm.PrimaryIP, vm.PrimaryIP4, vm.PrimaryIP6),
		CustomFields: vm.CustomFields,
		Tags:         sourceTags(vm.Tags),
		Context:      models.ContextData(vm.ConfigContext),
		Raw:          m,
	}

	r.common(rec, vm.Site, vm.Tenant, vm.Cluster)

	return rec, nil
}
