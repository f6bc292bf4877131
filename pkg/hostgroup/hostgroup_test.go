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

package hostgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

func testTrees() Trees {
	return Trees{
		Regions: Tree{
			"Europe":      "",
			"Netherlands": "Europe",
			"Amsterdam":   "Netherlands",
		},
		SiteGroups: Tree{
			"Datacenters": "",
			"Primary":     "Datacenters",
		},
	}
}

func pduRecord() *models.SourceRecord {
	return &models.SourceRecord{
		ID:           42,
		Kind:         models.KindDevice,
		Name:         "pdu-01",
		Site:         &models.Ref{Name: "HQ-AMS"},
		Region:       &models.Ref{Name: "Amsterdam"},
		SiteGroup:    &models.Ref{Name: "Primary"},
		Role:         &models.Ref{Name: "PDU"},
		Manufacturer: &models.Ref{Name: "APC"},
		CustomFields: map[string]any{
			"owner":      "NetOps",
			"empty_cf":   nil,
			"object_cf":  map[string]any{"id": 3, "name": "Contract-7"},
			"numeric_cf": float64(12),
		},
	}
}

func newResolver(traverseRegions, traverseSiteGroups bool) *PathResolver {
	return NewPathResolver(NewRegistry(testTrees(), traverseRegions, traverseSiteGroups), logger.NewTestLogger())
}

func TestParseFormat(t *testing.T) {
	f := ParseFormat(`site//"Network Gear"/role/ 'x' /''`)

	assert.Equal(t, []Token{
		{Value: "site"},
		{Value: "Network Gear", Literal: true},
		{Value: "role"},
		{Value: "x", Literal: true},
	}, f.Tokens)
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		traverse bool
		want     string
	}{
		{name: "site and role", format: "site/role", want: "HQ-AMS/PDU"},
		{name: "empty tenant dropped", format: "site/tenant/role", want: "HQ-AMS/PDU"},
		{name: "literal", format: "'Infra'/manufacturer", want: "Infra/APC"},
		{name: "custom field", format: "owner/role", want: "NetOps/PDU"},
		{name: "object custom field", format: "object_cf", want: "Contract-7"},
		{name: "numeric custom field", format: "numeric_cf", want: "12"},
		{name: "region without traversal", format: "region/site", want: "Amsterdam/HQ-AMS"},
		{name: "region traversal", format: "region/site", traverse: true, want: "Europe/Netherlands/Amsterdam/HQ-AMS"},
		{name: "site group traversal", format: "site_group", traverse: true, want: "Datacenters/Primary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(tt.traverse, tt.traverse)

			path, err := r.ResolveFormat(pduRecord(), ParseFormat(tt.format))
			require.NoError(t, err)
			assert.Equal(t, tt.want, path.String())
		})
	}
}

func TestResolveFormatAllEmpty(t *testing.T) {
	r := newResolver(false, false)

	_, err := r.ResolveFormat(pduRecord(), ParseFormat("tenant/location/empty_cf/missing_cf"))
	require.ErrorIs(t, err, models.ErrHostgroupUnresolved)

	var unresolved *models.HostgroupUnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "pdu-01", unresolved.Name)
}

func TestResolvePartialSuccess(t *testing.T) {
	r := newResolver(false, false)

	paths, errs := r.Resolve(pduRecord(), ParseFormats([]string{"site/role", "tenant", "site/role", "manufacturer"}))

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], models.ErrHostgroupUnresolved)
	assert.Equal(t, []models.HostgroupPath{{"HQ-AMS", "PDU"}, {"APC"}}, paths)
}

func TestResolveMissingRegionAndSiteGroup(t *testing.T) {
	rec := &models.SourceRecord{
		ID:   43,
		Kind: models.KindDevice,
		Name: "pdu-02",
		Site: &models.Ref{Name: "HQ-AMS"},
		Role: &models.Ref{Name: "PDU"},
	}

	formats := ParseFormats([]string{"region/site_group/site", "role"})

	for _, traverse := range []bool{false, true} {
		paths, errs := newResolver(traverse, traverse).Resolve(rec, formats)

		assert.Empty(t, errs, "traverse=%v", traverse)
		assert.Equal(t, []models.HostgroupPath{{"HQ-AMS"}, {"PDU"}}, paths, "traverse=%v", traverse)
	}
}

func TestResolveVirtualMachine(t *testing.T) {
	r := newResolver(false, false)

	vm := &models.SourceRecord{
		Kind:        models.KindVirtualMachine,
		Name:        "vm-01",
		Cluster:     &models.Ref{Name: "prod-k8s"},
		ClusterType: &models.Ref{Name: "VMware"},
		Role:        &models.Ref{Name: "Web"},
		Device:      &models.Ref{Name: "esx-01"},
		Rack:        &models.Ref{Name: "R1"},
	}

	path, err := r.ResolveFormat(vm, ParseFormat("cluster_type/cluster/role/device"))
	require.NoError(t, err)
	assert.Equal(t, "VMware/prod-k8s/Web/esx-01", path.String())

	// rack is not a VM attribute so it is looked up as a custom field
	_, err = r.ResolveFormat(vm, ParseFormat("rack"))
	require.ErrorIs(t, err, models.ErrHostgroupUnresolved)
}

func TestTreeChain(t *testing.T) {
	cyclic := Tree{"a": "b", "b": "a"}

	assert.Equal(t, []string{"b", "a"}, cyclic.Chain("a"))
	assert.Equal(t, []string{"orphan"}, testTrees().Regions.Chain("orphan"))
	assert.Nil(t, testTrees().Regions.Chain(""))
}

func TestValidateFormats(t *testing.T) {
	reg := NewRegistry(Trees{}, false, false)

	require.NoError(t, ValidateFormats(reg, models.KindDevice,
		ParseFormats([]string{"site/'Lit'/owner", "region/rack"}), []string{"owner"}))

	err := ValidateFormats(reg, models.KindDevice, ParseFormats([]string{"site/bogus"}), []string{"owner"})
	require.ErrorIs(t, err, models.ErrConfiguration)
	assert.Contains(t, err.Error(), "bogus")

	err = ValidateFormats(reg, models.KindVirtualMachine, ParseFormats([]string{"rack"}), nil)
	require.ErrorIs(t, err, models.ErrConfiguration)
	assert.Contains(t, err.Error(), "vm_hostgroup_format")

	err = ValidateFormats(reg, models.KindDevice, ParseFormats([]string{"//"}), nil)
	require.ErrorIs(t, err, models.ErrConfiguration)
}

func TestOptions(t *testing.T) {
	r := newResolver(true, false)

	opts := r.Options(pduRecord())

	values := make(map[string]string, len(opts))
	for _, o := range opts {
		values[o.Token] = o.Value
	}

	assert.Equal(t, "Europe/Netherlands/Amsterdam", values["region"])
	assert.Equal(t, "HQ-AMS", values["site"])
	assert.Equal(t, "", values["tenant"])
	assert.Contains(t, values, "rack")
	assert.NotContains(t, values, "device")
}
