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

package sync

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/carverauto/netbox-zabbix-sync/pkg/config"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

func setCredentials(t *testing.T) {
	t.Helper()

	t.Setenv("NETBOX_HOST", "https://netbox.example.com")
	t.Setenv("NETBOX_TOKEN", "nb-token")
	t.Setenv("ZABBIX_HOST", "https://zabbix.example.com")
	t.Setenv("ZABBIX_TOKEN", "zbx-token")
	t.Setenv("ZABBIX_USER", "")
	t.Setenv("ZABBIX_PASS", "")
}

func TestConfig_ValidateDefaults(t *testing.T) {
	setCredentials(t)

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://netbox.example.com", cfg.NetBoxURL)
	assert.Equal(t, "zbx-token", cfg.ZabbixToken)
	assert.Equal(t, StringList{"site/manufacturer/role"}, cfg.HostgroupFormat)
	assert.Equal(t, StringList{"cluster_type/cluster/role"}, cfg.VMHostgroupFormat)
	assert.True(t, cfg.CreateHostgroups)
	assert.True(t, cfg.TagLower)
	assert.False(t, cfg.SyncVMs)
	assert.Equal(t, MacroSyncOff, cfg.UsermacroSync)
	assert.Equal(t, "disabled", cfg.InventoryMode)
	assert.Equal(t, defaultConcurrency, cfg.Concurrency)
	assert.Equal(t, models.Duration(defaultLockTimeout), cfg.LockTimeout)

	assert.Equal(t, models.Filters{{Key: "name", Op: models.FilterNotIn, Values: []string{"null"}}}, cfg.DeviceFilter)
	assert.Equal(t, "serialno_a", cfg.DeviceInvMap["serial"])
	assert.Equal(t, "{$TOTAL_MEMORY}", cfg.VMMacroMap["memory"])
	assert.Equal(t, "cluster", cfg.VMTagMap["cluster/name"])
}

func TestConfig_ValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		setting string
	}{
		{name: "netbox host", unset: "NETBOX_HOST", setting: "netbox"},
		{name: "netbox token", unset: "NETBOX_TOKEN", setting: "netbox"},
		{name: "zabbix host", unset: "ZABBIX_HOST", setting: "zabbix"},
		{name: "zabbix auth", unset: "ZABBIX_TOKEN", setting: "zabbix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv(tt.unset, "")

			err := DefaultConfig().Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrConfiguration))

			var cfgErr *models.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.setting, cfgErr.Setting)
		})
	}
}

func TestConfig_UserPasswordAuth(t *testing.T) {
	setCredentials(t)
	t.Setenv("ZABBIX_TOKEN", "")
	t.Setenv("ZABBIX_USER", "sync")
	t.Setenv("ZABBIX_PASS", "s3cret")

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sync", cfg.ZabbixUser)
	assert.Equal(t, "s3cret", cfg.ZabbixPassword)
}

func TestConfig_ValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		setting string
	}{
		{name: "inventory mode", modify: func(c *Config) { c.InventoryMode = "sometimes" }, setting: "inventory_mode"},
		{name: "tag value", modify: func(c *Config) { c.TagValue = "color" }, setting: "tag_value"},
		{name: "empty hostgroup format", modify: func(c *Config) { c.HostgroupFormat = nil }, setting: "hostgroup_format"},
		{name: "concurrency", modify: func(c *Config) { c.Concurrency = -1 }, setting: "concurrency"},
		{
			name: "vm format when syncing vms",
			modify: func(c *Config) {
				c.SyncVMs = true
				c.VMHostgroupFormat = nil
			},
			setting: "vm_hostgroup_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCredentials(t)

			cfg := DefaultConfig()
			tt.modify(cfg)

			var cfgErr *models.ConfigurationError
			require.True(t, errors.As(cfg.Validate(), &cfgErr))
			assert.Equal(t, tt.setting, cfgErr.Setting)
		})
	}
}

func TestConfig_ConfiguredMapReplacesDefault(t *testing.T) {
	setCredentials(t)

	cfg := DefaultConfig()
	require.NoError(t, json.Unmarshal([]byte(`{"device_tag_map": {"tenant/name": "tenant"}}`), cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, map[string]string{"tenant/name": "tenant"}, map[string]string(cfg.DeviceTagMap))
}

func TestStringList(t *testing.T) {
	var fromJSON struct {
		F StringList `json:"f"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"f": "site/role"}`), &fromJSON))
	assert.Equal(t, StringList{"site/role"}, fromJSON.F)

	require.NoError(t, json.Unmarshal([]byte(`{"f": ["site/role", "tenant"]}`), &fromJSON))
	assert.Equal(t, StringList{"site/role", "tenant"}, fromJSON.F)

	require.Error(t, json.Unmarshal([]byte(`{"f": 3}`), &fromJSON))

	var fromYAML struct {
		F StringList `yaml:"f"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("f: site/role\n"), &fromYAML))
	assert.Equal(t, StringList{"site/role"}, fromYAML.F)

	require.NoError(t, yaml.Unmarshal([]byte("f:\n  - a\n  - b\n"), &fromYAML))
	assert.Equal(t, StringList{"a", "b"}, fromYAML.F)
}

func TestMacroSync(t *testing.T) {
	tests := []struct {
		raw  string
		want models.MacroSyncMode
	}{
		{raw: `false`, want: models.MacroSyncOff},
		{raw: `true`, want: models.MacroSyncOn},
		{raw: `"full"`, want: models.MacroSyncFull},
		{raw: `"True"`, want: models.MacroSyncOn},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var m MacroSync
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			assert.Equal(t, tt.want, m.Mode())
		})
	}

	var m MacroSync
	require.Error(t, json.Unmarshal([]byte(`"sometimes"`), &m))
	require.Error(t, json.Unmarshal([]byte(`1`), &m))

	var y struct {
		M MacroSync `yaml:"m"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("m: full\n"), &y))
	assert.Equal(t, MacroSyncFull, y.M)
}

func TestConfig_LoadFromFileAndEnv(t *testing.T) {
	setCredentials(t)
	t.Setenv("NBZX_USERMACRO_SYNC", "full")
	t.Setenv("NBZX_CONCURRENCY", "8")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hostgroup_format: "site/'Network'/role"
zabbix_device_removal: ["Decommissioning"]
sync_vms: true
nb_device_filter:
  site: ["ams1", "ams2"]
  name__n: "null"
interval: 15m
lock_timeout: 2s
tag_sync: true
`), 0o600))

	cfg := DefaultConfig()
	loader := config.NewConfig(logger.NewTestLogger(), config.WithDotenv(""))
	require.NoError(t, loader.LoadAndValidate(context.Background(), path, cfg))

	assert.Equal(t, StringList{"site/'Network'/role"}, cfg.HostgroupFormat)
	assert.Equal(t, []string{"Decommissioning"}, cfg.DeviceRemoval)
	assert.True(t, cfg.SyncVMs)
	assert.True(t, cfg.TagSync)
	assert.Equal(t, MacroSyncFull, cfg.UsermacroSync)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, models.Duration(15*time.Minute), cfg.Interval)
	assert.Equal(t, models.Duration(2*time.Second), cfg.LockTimeout)
	assert.Len(t, cfg.DeviceFilter, 2)
	assert.Equal(t, "nb-token", cfg.NetBoxToken)
}

func TestConfig_Options(t *testing.T) {
	setCredentials(t)

	cfg := DefaultConfig()
	cfg.DryRun = true
	cfg.UsermacroSync = MacroSyncFull
	cfg.InventoryMode = "automatic"
	cfg.InventorySync = true
	cfg.ProxyGroupCF = "zabbix_proxy_group"
	require.NoError(t, cfg.Validate())

	opts := cfg.DesiredOptions(true)
	require.Len(t, opts.HostgroupFormats, 1)
	assert.Equal(t, "site/manufacturer/role", opts.HostgroupFormats[0].String())
	assert.Equal(t, models.StateRemoved, opts.Status.Map(models.RecordStatus{Value: "inventory", Label: "Inventory"}))
	assert.Equal(t, models.StateDisabled, opts.Status.Map(models.RecordStatus{Value: "offline", Label: "Offline"}))
	assert.Equal(t, models.InventoryAutomatic, opts.Inventory.Mode)
	assert.True(t, opts.Inventory.Enabled)
	assert.Equal(t, models.MacroSyncFull, opts.Macros.Mode)
	assert.True(t, opts.Proxy.GroupsSupported)
	assert.Equal(t, "zabbix_proxy_group", opts.Proxy.GroupCustomField)
	assert.Equal(t, "zabbix_template", opts.Templates.CustomField)

	eng := cfg.EngineOptions()
	assert.True(t, eng.DryRun)
	assert.True(t, eng.CreateHostgroups)
	assert.Equal(t, models.MacroSyncFull, eng.MacroMode)
}
