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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carverauto/netbox-zabbix-sync/pkg/desired"
	"github.com/carverauto/netbox-zabbix-sync/pkg/engine"
	"github.com/carverauto/netbox-zabbix-sync/pkg/hostgroup"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

const (
	defaultConcurrency = 4
	defaultLockTimeout = 5 * time.Second
	defaultLockPath    = "nbzx-sync.db"
	defaultTagValue    = "name"
)

var (
	errMissingNetBox       = errors.New("NETBOX_HOST and NETBOX_TOKEN must be set")
	errMissingZabbix       = errors.New("ZABBIX_HOST must be set")
	errMissingZabbixAuth   = errors.New("ZABBIX_TOKEN or ZABBIX_USER and ZABBIX_PASS must be set")
	errInvalidInventory    = errors.New("must be disabled, manual or automatic")
	errInvalidTagValue     = errors.New("must be name, slug or display")
	errInvalidMacroSync    = errors.New("must be true, false or \"full\"")
	errInvalidConcurrency  = errors.New("must be at least 1")
	errEmptyHostgroupFmt   = errors.New("at least one format is required")
	errInvalidStringOrList = errors.New("must be a string or a list of strings")
)

// StringList accepts a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*l = StringList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errInvalidStringOrList
	}

	*l = list

	return nil
}

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}

	var list []string
	if err := node.Decode(&list); err != nil {
		return errInvalidStringOrList
	}

	*l = list

	return nil
}

// MacroSync is the usermacro_sync setting: false, true or "full".
type MacroSync string

const (
	MacroSyncOff  MacroSync = "false"
	MacroSyncOn   MacroSync = "true"
	MacroSyncFull MacroSync = "full"
)

func (m *MacroSync) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return m.set(v)
}

func (m *MacroSync) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}

	return m.set(v)
}

// UnmarshalText lets NBZX_USERMACRO_SYNC set the value.
func (m *MacroSync) UnmarshalText(b []byte) error {
	return m.set(string(b))
}

func (m *MacroSync) set(v any) error {
	switch t := v.(type) {
	case bool:
		*m = MacroSyncOff
		if t {
			*m = MacroSyncOn
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "0", "no":
			*m = MacroSyncOff
		case "true", "1", "yes":
			*m = MacroSyncOn
		case "full":
			*m = MacroSyncFull
		default:
			return errInvalidMacroSync
		}
	default:
		return errInvalidMacroSync
	}

	return nil
}

// Mode converts the setting for the builder and engine.
func (m MacroSync) Mode() models.MacroSyncMode {
	switch m {
	case MacroSyncOn:
		return models.MacroSyncOn
	case MacroSyncFull:
		return models.MacroSyncFull
	default:
		return models.MacroSyncOff
	}
}

// MetricsConfig configures the Prometheus Pushgateway export of run metrics.
type MetricsConfig struct {
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url"`
	Job            string `json:"job" yaml:"job"`
}

// NATSConfig configures publishing of run summaries.
type NATSConfig struct {
	URL     string         `json:"url" yaml:"url"`
	Subject string         `json:"subject" yaml:"subject"`
	TLS     *NATSTLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// NATSTLSConfig enables mutual TLS towards the NATS server.
type NATSTLSConfig struct {
	CertFile   string `json:"cert_file" yaml:"cert_file"`
	KeyFile    string `json:"key_file" yaml:"key_file"`
	CAFile     string `json:"ca_file" yaml:"ca_file"`
	ServerName string `json:"server_name,omitempty" yaml:"server_name,omitempty"`
}

// Config holds every setting of the reconciler. Credentials never come from
// files: they are read from NETBOX_HOST, NETBOX_TOKEN, ZABBIX_HOST,
// ZABBIX_TOKEN, ZABBIX_USER and ZABBIX_PASS.
type Config struct {
	NetBoxURL      string `json:"-" yaml:"-"`
	NetBoxToken    string `json:"-" yaml:"-"`
	ZabbixURL      string `json:"-" yaml:"-"`
	ZabbixToken    string `json:"-" yaml:"-"`
	ZabbixUser     string `json:"-" yaml:"-"`
	ZabbixPassword string `json:"-" yaml:"-"`

	HostgroupFormat    StringList `json:"hostgroup_format" yaml:"hostgroup_format"`
	VMHostgroupFormat  StringList `json:"vm_hostgroup_format" yaml:"vm_hostgroup_format"`
	TraverseRegions    bool       `json:"traverse_regions" yaml:"traverse_regions"`
	TraverseSiteGroups bool       `json:"traverse_site_groups" yaml:"traverse_site_groups"`
	CreateHostgroups   bool       `json:"create_hostgroups" yaml:"create_hostgroups"`

	DeviceRemoval []string `json:"zabbix_device_removal" yaml:"zabbix_device_removal"`
	DeviceDisable []string `json:"zabbix_device_disable" yaml:"zabbix_device_disable"`

	TemplateCF                     string `json:"template_cf" yaml:"template_cf"`
	TemplatesConfigContext         bool   `json:"templates_config_context" yaml:"templates_config_context"`
	TemplatesConfigContextOverrule bool   `json:"templates_config_context_overrule" yaml:"templates_config_context_overrule"`

	SyncVMs       bool           `json:"sync_vms" yaml:"sync_vms"`
	DeviceFilter  models.Filters `json:"nb_device_filter" yaml:"nb_device_filter"`
	VMFilter      models.Filters `json:"nb_vm_filter" yaml:"nb_vm_filter"`
	Clustering    bool           `json:"clustering" yaml:"clustering"`
	SNMPCommunity string         `json:"snmp_community" yaml:"snmp_community"`
	ProxyCF       string         `json:"proxy_cf" yaml:"proxy_cf"`
	ProxyGroupCF  string         `json:"proxy_group_cf" yaml:"proxy_group_cf"`
	FullProxySync bool           `json:"full_proxy_sync" yaml:"full_proxy_sync"`

	TagSync      bool              `json:"tag_sync" yaml:"tag_sync"`
	TagLower     bool              `json:"tag_lower" yaml:"tag_lower"`
	TagName      string            `json:"tag_name" yaml:"tag_name"`
	TagValue     string            `json:"tag_value" yaml:"tag_value"`
	DeviceTagMap desired.FieldMap  `json:"device_tag_map" yaml:"device_tag_map"`
	VMTagMap     desired.FieldMap  `json:"vm_tag_map" yaml:"vm_tag_map"`
	TagDefaults  map[string]string `json:"tag_defaults" yaml:"tag_defaults"`

	UsermacroSync  MacroSync        `json:"usermacro_sync" yaml:"usermacro_sync"`
	DeviceMacroMap desired.FieldMap `json:"device_usermacro_map" yaml:"device_usermacro_map"`
	VMMacroMap     desired.FieldMap `json:"vm_usermacro_map" yaml:"vm_usermacro_map"`
	MacroDefaults  map[string]any   `json:"usermacro_defaults" yaml:"usermacro_defaults"`

	InventoryMode string            `json:"inventory_mode" yaml:"inventory_mode"`
	InventorySync bool              `json:"inventory_sync" yaml:"inventory_sync"`
	DeviceInvMap  desired.FieldMap  `json:"device_inventory_map" yaml:"device_inventory_map"`
	VMInvMap      desired.FieldMap  `json:"vm_inventory_map" yaml:"vm_inventory_map"`
	InvDefaults   map[string]string `json:"inventory_defaults" yaml:"inventory_defaults"`

	DryRun      bool            `json:"dry_run" yaml:"dry_run"`
	Concurrency int             `json:"concurrency" yaml:"concurrency"`
	Interval    models.Duration `json:"interval" yaml:"interval"`
	LockPath    string          `json:"lock_path" yaml:"lock_path"`
	LockTimeout models.Duration `json:"lock_timeout" yaml:"lock_timeout"`

	Metrics *MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	NATS    *NATSConfig    `json:"nats,omitempty" yaml:"nats,omitempty"`
	Logging *logger.Config `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// DefaultConfig returns the settings used when nothing is configured. Maps
// and filters are filled in by Validate so a configured map replaces the
// default instead of merging with it.
func DefaultConfig() *Config {
	return &Config{
		HostgroupFormat:   StringList{"site/manufacturer/role"},
		VMHostgroupFormat: StringList{"cluster_type/cluster/role"},
		CreateHostgroups:  true,
		DeviceRemoval:     []string{"Decommissioning", "Inventory"},
		DeviceDisable:     []string{"Offline", "Planned", "Staged", "Failed"},
		TemplateCF:        "zabbix_template",
		InventoryMode:     "disabled",
		TagLower:          true,
		TagName:           "NetBox",
		TagValue:          defaultTagValue,
		UsermacroSync:     MacroSyncOff,
		Concurrency:       defaultConcurrency,
		LockPath:          defaultLockPath,
		LockTimeout:       models.Duration(defaultLockTimeout),
	}
}

func defaultFilter() models.Filters {
	return models.Filters{{Key: "name", Op: models.FilterNotIn, Values: []string{"null"}}}
}

func defaultDeviceInventoryMap() desired.FieldMap {
	return desired.FieldMap{
		"asset_tag":                     "asset_tag",
		"virtual_chassis/name":          "chassis",
		"status/label":                  "deployment_status",
		"location/name":                 "location",
		"latitude":                      "location_lat",
		"longitude":                     "location_lon",
		"comments":                      "notes",
		"name":                          "name",
		"rack/name":                     "site_rack",
		"serial":                        "serialno_a",
		"device_type/model":             "type",
		"device_type/manufacturer/name": "vendor",
		"oob_ip/address":                "oob_ip",
	}
}

func defaultVMInventoryMap() desired.FieldMap {
	return desired.FieldMap{
		"status/label": "deployment_status",
		"comments":     "notes",
		"name":         "name",
	}
}

func defaultDeviceMacroMap() desired.FieldMap {
	return desired.FieldMap{
		"serial":    "{$HW_SERIAL}",
		"role/name": "{$DEV_ROLE}",
		"url":       "{$NB_URL}",
		"id":        "{$NB_ID}",
	}
}

func defaultVMMacroMap() desired.FieldMap {
	return desired.FieldMap{
		"memory":    "{$TOTAL_MEMORY}",
		"role/name": "{$DEV_ROLE}",
		"url":       "{$NB_URL}",
		"id":        "{$NB_ID}",
	}
}

func defaultDeviceTagMap() desired.FieldMap {
	return desired.FieldMap{
		"site/name":     "site",
		"rack/name":     "rack",
		"platform/name": "target",
	}
}

func defaultVMTagMap() desired.FieldMap {
	return desired.FieldMap{
		"site/name":     "site",
		"cluster/name":  "cluster",
		"platform/name": "target",
	}
}

// Validate reads the credentials from the environment, fills defaults and
// checks the settings. Every failure is a ConfigurationError.
func (c *Config) Validate() error {
	c.loadCredentials()

	if c.NetBoxURL == "" || c.NetBoxToken == "" {
		return models.NewConfigurationError("netbox", errMissingNetBox)
	}

	if c.ZabbixURL == "" {
		return models.NewConfigurationError("zabbix", errMissingZabbix)
	}

	if c.ZabbixToken == "" && (c.ZabbixUser == "" || c.ZabbixPassword == "") {
		return models.NewConfigurationError("zabbix", errMissingZabbixAuth)
	}

	if len(c.HostgroupFormat) == 0 {
		return models.NewConfigurationError("hostgroup_format", errEmptyHostgroupFmt)
	}

	if c.SyncVMs && len(c.VMHostgroupFormat) == 0 {
		return models.NewConfigurationError("vm_hostgroup_format", errEmptyHostgroupFmt)
	}

	if _, ok := models.ParseInventoryMode(c.InventoryMode); !ok {
		return models.NewConfigurationError("inventory_mode", fmt.Errorf("%q %w", c.InventoryMode, errInvalidInventory))
	}

	switch c.TagValue {
	case "":
		c.TagValue = defaultTagValue
	case "name", "slug", "display":
	default:
		return models.NewConfigurationError("tag_value", fmt.Errorf("%q %w", c.TagValue, errInvalidTagValue))
	}

	if c.UsermacroSync == "" {
		c.UsermacroSync = MacroSyncOff
	}

	if c.Concurrency == 0 {
		c.Concurrency = defaultConcurrency
	}

	if c.Concurrency < 0 {
		return models.NewConfigurationError("concurrency", errInvalidConcurrency)
	}

	if c.LockPath == "" {
		c.LockPath = defaultLockPath
	}

	if time.Duration(c.LockTimeout) <= 0 {
		c.LockTimeout = models.Duration(defaultLockTimeout)
	}

	c.fillMaps()

	return nil
}

// loadCredentials overlays the credential variables that are set.
func (c *Config) loadCredentials() {
	for env, dst := range map[string]*string{
		"NETBOX_HOST":  &c.NetBoxURL,
		"NETBOX_TOKEN": &c.NetBoxToken,
		"ZABBIX_HOST":  &c.ZabbixURL,
		"ZABBIX_TOKEN": &c.ZabbixToken,
		"ZABBIX_USER":  &c.ZabbixUser,
		"ZABBIX_PASS":  &c.ZabbixPassword,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

func (c *Config) fillMaps() {
	if c.DeviceFilter == nil {
		c.DeviceFilter = defaultFilter()
	}

	if c.VMFilter == nil {
		c.VMFilter = defaultFilter()
	}

	if c.DeviceInvMap == nil {
		c.DeviceInvMap = defaultDeviceInventoryMap()
	}

	if c.VMInvMap == nil {
		c.VMInvMap = defaultVMInventoryMap()
	}

	if c.DeviceMacroMap == nil {
		c.DeviceMacroMap = defaultDeviceMacroMap()
	}

	if c.VMMacroMap == nil {
		c.VMMacroMap = defaultVMMacroMap()
	}

	if c.DeviceTagMap == nil {
		c.DeviceTagMap = defaultDeviceTagMap()
	}

	if c.VMTagMap == nil {
		c.VMTagMap = defaultVMTagMap()
	}
}

// HostgroupFormats parses the device and VM hostgroup formats.
func (c *Config) HostgroupFormats() (device, vm []hostgroup.Format) {
	return hostgroup.ParseFormats(c.HostgroupFormat), hostgroup.ParseFormats(c.VMHostgroupFormat)
}

// DesiredOptions converts the settings for the desired-state builder.
// groupsSupported comes from the monitoring system version.
func (c *Config) DesiredOptions(groupsSupported bool) desired.Options {
	device, vm := c.HostgroupFormats()
	mode, _ := models.ParseInventoryMode(c.InventoryMode)

	return desired.Options{
		HostgroupFormats:   device,
		VMHostgroupFormats: vm,
		Status:             desired.NewStatusPolicy(c.DeviceRemoval, c.DeviceDisable),
		Templates: desired.TemplateOptions{
			CustomField:     c.TemplateCF,
			FromContext:     c.TemplatesConfigContext,
			ContextOverrule: c.TemplatesConfigContextOverrule,
		},
		Interface: desired.InterfaceDefaults{Community: c.SNMPCommunity},
		Proxy: desired.ProxyOptions{
			CustomField:      c.ProxyCF,
			GroupCustomField: c.ProxyGroupCF,
			FullSync:         c.FullProxySync,
			GroupsSupported:  groupsSupported,
		},
		Clustering: c.Clustering,
		Tags: desired.TagOptions{
			Enabled:   c.TagSync,
			Lower:     c.TagLower,
			Name:      c.TagName,
			Value:     c.TagValue,
			DeviceMap: c.DeviceTagMap,
			VMMap:     c.VMTagMap,
			Defaults:  c.TagDefaults,
		},
		Macros: desired.MacroOptions{
			Mode:      c.UsermacroSync.Mode(),
			DeviceMap: c.DeviceMacroMap,
			VMMap:     c.VMMacroMap,
			Defaults:  c.MacroDefaults,
		},
		Inventory: desired.InventoryOptions{
			Mode:      mode,
			Enabled:   c.InventorySync,
			DeviceMap: c.DeviceInvMap,
			VMMap:     c.VMInvMap,
			Defaults:  c.InvDefaults,
		},
	}
}

// EngineOptions converts the settings for the apply engine.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		DryRun:           c.DryRun,
		CreateHostgroups: c.CreateHostgroups,
		MacroMode:        c.UsermacroSync.Mode(),
	}
}
