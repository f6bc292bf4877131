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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netbox-zabbix-sync/pkg/hostgroup"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

func deviceRecord() *models.SourceRecord {
	return &models.SourceRecord{
		ID:           42,
		Kind:         models.KindDevice,
		Name:         "pdu-01",
		Status:       models.RecordStatus{Value: "active", Label: "Active"},
		Site:         &models.Ref{Name: "HQ-AMS"},
		Role:         &models.Ref{Name: "PDU"},
		Manufacturer: &models.Ref{Name: "APC"},
		PrimaryIP:    "192.0.2.10/24",
		DeviceTypeCustomFields: map[string]any{
			"zabbix_template": "APC UPS by SNMP",
		},
		CustomFields: map[string]any{},
		Raw: map[string]any{
			"id":     float64(42),
			"serial": "SN-1",
			"site":   map[string]any{"name": "HQ-AMS"},
			"rack":   nil,
		},
	}
}

func testOptions() Options {
	return Options{
		HostgroupFormats:   hostgroup.ParseFormats([]string{"site/manufacturer/role"}),
		VMHostgroupFormats: hostgroup.ParseFormats([]string{"cluster/role"}),
		Status: NewStatusPolicy(
			[]string{"Decommissioning", "Inventory"},
			[]string{"Offline", "Planned", "Staged", "Failed"},
		),
		Templates: TemplateOptions{CustomField: "zabbix_template"},
		Proxy:     ProxyOptions{CustomField: "proxy", GroupCustomField: "proxy_group"},
		Inventory: InventoryOptions{Mode: models.InventoryManual},
	}
}

func newTestBuilder(opts Options) *Builder {
	log := logger.NewTestLogger()
	resolver := hostgroup.NewPathResolver(hostgroup.NewRegistry(hostgroup.Trees{}, false, false), log)

	return NewBuilder(opts, resolver, log)
}

func TestStatusPolicy(t *testing.T) {
	tests := []struct {
		name    string
		removal []string
		disable []string
		status  models.RecordStatus
		want    models.EnabledState
	}{
		{"active", []string{"Decommissioning"}, []string{"Offline"}, models.RecordStatus{Value: "active", Label: "Active"}, models.StateActive},
		{"disabled by label", []string{"Decommissioning"}, []string{"Offline"}, models.RecordStatus{Value: "offline", Label: "Offline"}, models.StateDisabled},
		{"removed by value", []string{"decommissioning"}, nil, models.RecordStatus{Value: "decommissioning", Label: "Decommissioning"}, models.StateRemoved},
		{"removal wins over disable", []string{"Offline"}, []string{"Offline"}, models.RecordStatus{Value: "offline", Label: "Offline"}, models.StateRemoved},
		{"empty status", nil, []string{"Offline"}, models.RecordStatus{}, models.StateActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewStatusPolicy(tt.removal, tt.disable).Map(tt.status))
		})
	}
}

func TestSelectTemplates(t *testing.T) {
	t.Run("device type custom field", func(t *testing.T) {
		got, err := SelectTemplates(deviceRecord(), TemplateOptions{CustomField: "zabbix_template"})
		require.NoError(t, err)
		assert.Equal(t, []string{"APC UPS by SNMP"}, got)
	})

	t.Run("falls back to device custom field", func(t *testing.T) {
		rec := deviceRecord()
		rec.DeviceTypeCustomFields = nil
		rec.CustomFields["zabbix_template"] = []any{"B", "A", "B"}

		got, err := SelectTemplates(rec, TemplateOptions{CustomField: "zabbix_template"})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, got)
	})

	t.Run("context overrule", func(t *testing.T) {
		rec := deviceRecord()
		rec.Context = models.ContextData{"zabbix": map[string]any{"templates": []any{"Linux by Zabbix agent"}}}

		got, err := SelectTemplates(rec, TemplateOptions{CustomField: "zabbix_template", ContextOverrule: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"Linux by Zabbix agent"}, got)

		got, err = SelectTemplates(rec, TemplateOptions{CustomField: "zabbix_template"})
		require.NoError(t, err)
		assert.Equal(t, []string{"APC UPS by SNMP"}, got)
	})

	t.Run("virtual machine without context", func(t *testing.T) {
		rec := &models.SourceRecord{ID: 7, Kind: models.KindVirtualMachine, Name: "vm-01"}

		_, err := SelectTemplates(rec, TemplateOptions{CustomField: "zabbix_template"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrRecordIncomplete))
	})
}

func TestBuildInterfaceDefault(t *testing.T) {
	spec, err := BuildInterface(deviceRecord(), InterfaceDefaults{})
	require.NoError(t, err)

	assert.Equal(t, models.InterfaceSNMP, spec.Type)
	assert.Equal(t, "192.0.2.10", spec.IP)
	assert.Equal(t, "161", spec.Port)
	require.NotNil(t, spec.SNMP)
	assert.Equal(t, 2, spec.SNMP.Version)
	assert.True(t, spec.SNMP.Bulk)
	assert.Equal(t, DefaultSNMPCommunity, spec.SNMP.Community)
}

func TestBuildInterfaceFromContext(t *testing.T) {
	t.Run("agent with custom port", func(t *testing.T) {
		rec := deviceRecord()
		rec.Context = models.ContextData{"zabbix": map[string]any{
			"interface_type": float64(1),
			"interface_port": "10055",
		}}

		spec, err := BuildInterface(rec, InterfaceDefaults{})
		require.NoError(t, err)
		assert.Equal(t, models.InterfaceAgent, spec.Type)
		assert.Equal(t, "10055", spec.Port)
		assert.Nil(t, spec.SNMP)
	})

	t.Run("snmpv3 names", func(t *testing.T) {
		rec := deviceRecord()
		rec.Context = models.ContextData{"zabbix": map[string]any{
			"interface_type": float64(2),
			"snmp": map[string]any{
				"version":        float64(3),
				"bulk":           false,
				"securityname":   "monitor",
				"securitylevel":  "authPriv",
				"authprotocol":   "SHA256",
				"authpassphrase": "{$SNMP_AUTH}",
				"privprotocol":   "AES256C",
				"privpassphrase": "{$SNMP_PRIV}",
			},
		}}

		spec, err := BuildInterface(rec, InterfaceDefaults{})
		require.NoError(t, err)
		require.NotNil(t, spec.SNMP)
		assert.Equal(t, 3, spec.SNMP.Version)
		assert.False(t, spec.SNMP.Bulk)
		assert.Equal(t, 2, spec.SNMP.SecurityLevel)
		assert.Equal(t, 3, spec.SNMP.AuthProtocol)
		assert.Equal(t, 5, spec.SNMP.PrivProtocol)
		assert.Equal(t, "monitor", spec.SNMP.SecurityName)
		assert.Empty(t, spec.SNMP.Community)
	})

	t.Run("snmp aliases and codes", func(t *testing.T) {
		n, err := parseAuthProtocol("sha1")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = parsePrivProtocol("aes-128")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = parseSecurityLevel(float64(1))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = parseAuthProtocol("rot13")
		assert.Error(t, err)
	})

	t.Run("snmp without version", func(t *testing.T) {
		rec := deviceRecord()
		rec.Context = models.ContextData{"zabbix": map[string]any{
			"interface_type": float64(2),
			"snmp":           map[string]any{"community": "public"},
		}}

		_, err := BuildInterface(rec, InterfaceDefaults{})
		assert.True(t, errors.Is(err, models.ErrRecordIncomplete))
	})

	t.Run("invalid type", func(t *testing.T) {
		rec := deviceRecord()
		rec.Context = models.ContextData{"zabbix": map[string]any{"interface_type": float64(9)}}

		_, err := BuildInterface(rec, InterfaceDefaults{})
		assert.True(t, errors.Is(err, models.ErrRecordIncomplete))
	})

	t.Run("missing primary ip", func(t *testing.T) {
		rec := deviceRecord()
		rec.PrimaryIP = ""

		_, err := BuildInterface(rec, InterfaceDefaults{})
		assert.True(t, errors.Is(err, models.ErrRecordIncomplete))
	})
}

func TestResolveProxyLinkage(t *testing.T) {
	tests := []struct {
		name      string
		proxy     string
		group     string
		supported bool
		fullSync  bool
		want      models.ProxyLinkage
	}{
		{"group wins", "px1", "grp1", true, false, models.ProxyLinkage{Kind: models.ProxyGroup, Name: "grp1"}},
		{"group unsupported falls back", "px1", "grp1", false, false, models.ProxyLinkage{Kind: models.ProxyDirect, Name: "px1"}},
		{"proxy only", "px1", "", true, false, models.ProxyLinkage{Kind: models.ProxyDirect, Name: "px1"}},
		{"neither preserves", "", "", true, false, models.ProxyLinkage{Kind: models.ProxyNone}},
		{"neither clears in full sync", "", "", true, true, models.ProxyLinkage{Kind: models.ProxyNone, Clear: true}},
		{"unsupported group alone", "", "grp1", false, false, models.ProxyLinkage{Kind: models.ProxyNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveProxyLinkage(tt.proxy, tt.group, tt.supported, tt.fullSync))
		})
	}
}

func TestComposeTags(t *testing.T) {
	rec := deviceRecord()
	rec.Tags = []models.SourceTag{{Name: "Core", Slug: "core"}}
	rec.Context = models.ContextData{"zabbix": map[string]any{
		"tags": []any{map[string]any{"Site": "Override"}, "ignored"},
	}}

	tags := ComposeTags(rec, TagOptions{
		Enabled:   true,
		Lower:     true,
		Name:      "NetBox",
		Value:     "name",
		DeviceMap: FieldMap{"site/name": "Site"},
		Defaults:  map[string]string{"Env": "Prod", "Empty": ""},
	}, logger.NewTestLogger())

	assert.Equal(t, []models.HostTag{
		{Tag: "env", Value: "prod"},
		{Tag: "netbox", Value: "core"},
		{Tag: "site", Value: "override"},
	}, tags)
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]models.HostTag{
		{Tag: "b", Value: "1"},
		{Tag: "a", Value: "2"},
		{Tag: "b", Value: "1"},
		{Tag: "a", Value: "1"},
	})

	assert.Equal(t, []models.HostTag{
		{Tag: "a", Value: "1"},
		{Tag: "a", Value: "2"},
		{Tag: "b", Value: "1"},
	}, got)
}

func TestComposeMacros(t *testing.T) {
	rec := deviceRecord()
	rec.Context = models.ContextData{"zabbix": map[string]any{
		"usermacros": map[string]any{
			"{$A}": "ctx",
			"bad":  "x",
		},
	}}

	macros := ComposeMacros(rec, MacroOptions{
		Mode:      models.MacroSyncOn,
		DeviceMap: FieldMap{"id": "{$NB_ID}"},
		Defaults: map[string]any{
			"{$A}": "default",
			"{$B}": map[string]any{"value": "s3cret", "type": "secret", "description": "api key"},
		},
	}, logger.NewTestLogger())

	require.Len(t, macros, 3)
	assert.Equal(t, models.Macro{Name: "{$A}", Kind: models.MacroText, Value: "ctx"}, macros[0])
	assert.Equal(t, models.Macro{Name: "{$B}", Kind: models.MacroSecret, Value: "s3cret", Description: "api key"}, macros[1])
	assert.Equal(t, models.Macro{Name: "{$NB_ID}", Kind: models.MacroText, Value: "42"}, macros[2])
}

func TestValidMacroName(t *testing.T) {
	assert.True(t, ValidMacroName("{$SNMP_COMMUNITY}"))
	assert.True(t, ValidMacroName("{$IF.UTIL.MAX:\"eth0\"}"))
	assert.False(t, ValidMacroName("{$lower}"))
	assert.False(t, ValidMacroName("SNMP"))
}

func TestShouldResend(t *testing.T) {
	assert.True(t, ShouldResend(false, models.MacroSyncOn))
	assert.False(t, ShouldResend(true, models.MacroSyncOn))
	assert.True(t, ShouldResend(true, models.MacroSyncFull))
}

func TestComposeInventory(t *testing.T) {
	rec := deviceRecord()
	rec.Context = models.ContextData{"zabbix": map[string]any{
		"inventory": map[string]any{"location": "Row 4", "nested": map[string]any{}},
	}}

	inv := ComposeInventory(rec, InventoryOptions{
		DeviceMap: FieldMap{"serial": "serialno_a", "rack": "location_lat"},
		Defaults:  map[string]string{"location": "Unknown", "vendor": "APC"},
	}, logger.NewTestLogger())

	assert.Equal(t, map[string]string{
		"location":     "Row 4",
		"vendor":       "APC",
		"serialno_a":   "SN-1",
		"location_lat": "",
	}, inv)
}

func TestFieldMapApply(t *testing.T) {
	rec := deviceRecord()
	rec.Raw["position"] = float64(0)
	rec.Raw["tags"] = []any{"x"}

	got := FieldMap{
		"position":  "pos",
		"tags":      "tags",
		"site/name": "site",
		"missing/x": "missing",
	}.Apply(rec, logger.NewTestLogger())

	assert.Equal(t, map[string]string{"pos": "0", "site": "HQ-AMS", "missing": ""}, got)
}

func TestHostNames(t *testing.T) {
	technical, visible := HostNames(42, "pdu-01.ams")
	assert.Equal(t, "pdu-01.ams", technical)
	assert.Equal(t, "pdu-01.ams", visible)

	technical, visible = HostNames(42, "pdu/01 (rear)")
	assert.Equal(t, "NETBOX_ID42", technical)
	assert.Equal(t, "pdu/01 (rear)", visible)
}

func TestBuild(t *testing.T) {
	b := newTestBuilder(testOptions())

	spec, err := b.Build(deviceRecord())
	require.NoError(t, err)

	assert.Equal(t, "pdu-01", spec.Name)
	assert.Equal(t, models.StateActive, spec.State)
	assert.Equal(t, []string{"HQ-AMS/APC/PDU"}, spec.HostgroupNames())
	assert.Empty(t, spec.HostgroupErrors)
	assert.Equal(t, []string{"APC UPS by SNMP"}, spec.Templates)
	require.NotNil(t, spec.Interface)
	assert.Equal(t, models.ProxyLinkage{Kind: models.ProxyNone}, spec.Proxy)
	assert.Nil(t, spec.Tags)
	assert.Nil(t, spec.Usermacros)
	assert.Equal(t, models.InventoryManual, spec.InventoryMode)
}

func TestBuildRemovedNeedsOnlyName(t *testing.T) {
	rec := deviceRecord()
	rec.Status = models.RecordStatus{Value: "decommissioning", Label: "Decommissioning"}
	rec.PrimaryIP = ""
	rec.DeviceTypeCustomFields = nil

	spec, err := newTestBuilder(testOptions()).Build(rec)
	require.NoError(t, err)

	assert.Equal(t, models.StateRemoved, spec.State)
	assert.Nil(t, spec.Interface)
	assert.Empty(t, spec.Templates)
}

func TestBuildIncomplete(t *testing.T) {
	rec := deviceRecord()
	rec.Name = ""

	_, err := newTestBuilder(testOptions()).Build(rec)
	assert.True(t, errors.Is(err, models.ErrRecordIncomplete))

	rec = deviceRecord()
	rec.PrimaryIP = ""

	_, err = newTestBuilder(testOptions()).Build(rec)
	assert.True(t, errors.Is(err, models.ErrRecordIncomplete))
}

func TestBuildSkipsWhenNoHostgroupResolves(t *testing.T) {
	rec := deviceRecord()
	rec.Site, rec.Manufacturer, rec.Role = nil, nil, nil

	spec, err := newTestBuilder(testOptions()).Build(rec)
	require.Error(t, err)
	assert.Nil(t, spec)

	assert.True(t, errors.Is(err, models.ErrRecordSkipped))
	assert.True(t, errors.Is(err, models.ErrHostgroupUnresolved))
	assert.False(t, errors.Is(err, models.ErrRecordIncomplete))

	var skipped *models.RecordSkippedError
	require.True(t, errors.As(err, &skipped))
	assert.Equal(t, 42, skipped.RecordID)
}

func TestBuildKeepsResolvedHostgroups(t *testing.T) {
	opts := testOptions()
	opts.HostgroupFormats = hostgroup.ParseFormats([]string{"site/manufacturer/role", "tenant"})

	spec, err := newTestBuilder(opts).Build(deviceRecord())
	require.NoError(t, err)

	assert.Equal(t, []string{"HQ-AMS/APC/PDU"}, spec.HostgroupNames())
	require.Len(t, spec.HostgroupErrors, 1)
	assert.True(t, errors.Is(spec.HostgroupErrors[0], models.ErrHostgroupUnresolved))
}

func TestBuildClustering(t *testing.T) {
	opts := testOptions()
	opts.Clustering = true
	b := newTestBuilder(opts)

	master := deviceRecord()
	master.VirtualChassis = &models.VirtualChassis{ID: 1, Name: "stack-01", MasterID: 42}

	spec, err := b.Build(master)
	require.NoError(t, err)
	assert.Equal(t, "stack-01", spec.Name)

	member := deviceRecord()
	member.ID = 43
	member.VirtualChassis = &models.VirtualChassis{ID: 1, Name: "stack-01", MasterID: 42}

	_, err = b.Build(member)
	assert.True(t, errors.Is(err, models.ErrRecordSkipped))
}

func TestBuildProxyFromContext(t *testing.T) {
	opts := testOptions()
	opts.Proxy.GroupsSupported = true

	rec := deviceRecord()
	rec.CustomFields["proxy"] = "px-cf"
	rec.Context = models.ContextData{"zabbix": map[string]any{"proxy_group": "grp-ctx"}}

	spec, err := newTestBuilder(opts).Build(rec)
	require.NoError(t, err)
	assert.Equal(t, models.ProxyLinkage{Kind: models.ProxyGroup, Name: "grp-ctx"}, spec.Proxy)
}
