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

package models

import (
	"strconv"
	"strings"
)

// EnabledState is the monitoring state a host should be in.
type EnabledState int

const (
	StateActive EnabledState = iota
	StateDisabled
	StateRemoved
)

func (s EnabledState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ZabbixStatus is the host.status value for the state: 0 monitored, 1 not.
func (s EnabledState) ZabbixStatus() string {
	if s == StateActive {
		return "0"
	}

	return "1"
}

// HostgroupPath is an ordered list of group name segments.
type HostgroupPath []string

// String joins the segments with "/", the nesting separator Zabbix uses.
func (p HostgroupPath) String() string {
	return strings.Join(p, "/")
}

// Ancestors returns every prefix of the path, shortest first, ending with
// the full path.
func (p HostgroupPath) Ancestors() []string {
	out := make([]string, 0, len(p))

	for i := range p {
		out = append(out, strings.Join(p[:i+1], "/"))
	}

	return out
}

// InterfaceType is the Zabbix interface type code.
type InterfaceType int

const (
	InterfaceAgent InterfaceType = 1
	InterfaceSNMP  InterfaceType = 2
	InterfaceIPMI  InterfaceType = 3
	InterfaceJMX   InterfaceType = 4
)

// DefaultPort returns the well known port for the interface type.
func (t InterfaceType) DefaultPort() string {
	switch t {
	case InterfaceAgent:
		return "10050"
	case InterfaceSNMP:
		return "161"
	case InterfaceIPMI:
		return "623"
	case InterfaceJMX:
		return "12345"
	default:
		return ""
	}
}

// Valid reports whether t is one of the four known types.
func (t InterfaceType) Valid() bool {
	return t >= InterfaceAgent && t <= InterfaceJMX
}

func (t InterfaceType) String() string {
	switch t {
	case InterfaceAgent:
		return "agent"
	case InterfaceSNMP:
		return "snmp"
	case InterfaceIPMI:
		return "ipmi"
	case InterfaceJMX:
		return "jmx"
	default:
		return "type-" + strconv.Itoa(int(t))
	}
}

// SNMPDetails holds the SNMP specific interface settings. Levels and
// protocols use the Zabbix numeric codes.
type SNMPDetails struct {
	Version        int    `json:"version"`
	Bulk           bool   `json:"bulk"`
	Community      string `json:"community,omitempty"`
	SecurityName   string `json:"securityname,omitempty"`
	SecurityLevel  int    `json:"securitylevel,omitempty"`
	AuthProtocol   int    `json:"authprotocol,omitempty"`
	AuthPassphrase string `json:"authpassphrase,omitempty"`
	PrivProtocol   int    `json:"privprotocol,omitempty"`
	PrivPassphrase string `json:"privpassphrase,omitempty"`
	ContextName    string `json:"contextname,omitempty"`
}

// InterfaceSpec is the single monitoring interface of a host.
type InterfaceSpec struct {
	Type  InterfaceType `json:"type"`
	IP    string        `json:"ip"`
	DNS   string        `json:"dns,omitempty"`
	UseIP bool          `json:"useip"`
	Port  string        `json:"port"`
	SNMP  *SNMPDetails  `json:"details,omitempty"`
}

// ProxyKind tells which kind of proxy linkage is desired.
type ProxyKind int

const (
	ProxyNone ProxyKind = iota
	ProxyDirect
	ProxyGroup
)

func (k ProxyKind) String() string {
	switch k {
	case ProxyDirect:
		return "proxy"
	case ProxyGroup:
		return "proxy_group"
	default:
		return "none"
	}
}

// ProxyLinkage is the desired proxy assignment after precedence resolution.
// ProxyNone with Clear false means "leave the current linkage alone".
type ProxyLinkage struct {
	Kind  ProxyKind `json:"kind"`
	Name  string    `json:"name,omitempty"`
	Clear bool      `json:"clear,omitempty"`
}

// HostTag is a name/value tag on a monitoring host.
type HostTag struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// MacroKind is the Zabbix user macro type.
type MacroKind int

const (
	MacroText   MacroKind = 0
	MacroSecret MacroKind = 1
	MacroVault  MacroKind = 2
)

// IsSensitive reports whether the value of the macro cannot be read back.
func (k MacroKind) IsSensitive() bool {
	return k == MacroSecret || k == MacroVault
}

// ParseMacroKind accepts "text", "secret", "vault" or the numeric codes.
func ParseMacroKind(s string) (MacroKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "text":
		return MacroText, true
	case "1", "secret":
		return MacroSecret, true
	case "2", "vault":
		return MacroVault, true
	default:
		return MacroText, false
	}
}

// Macro is a user macro on a host.
type Macro struct {
	Name        string    `json:"macro"`
	Kind        MacroKind `json:"type"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
}

// InventoryMode is the Zabbix host inventory mode.
type InventoryMode int

const (
	InventoryDisabled  InventoryMode = -1
	InventoryManual    InventoryMode = 0
	InventoryAutomatic InventoryMode = 1
)

// ParseInventoryMode accepts the configuration names of the modes.
func ParseInventoryMode(s string) (InventoryMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "disabled":
		return InventoryDisabled, true
	case "manual":
		return InventoryManual, true
	case "automatic":
		return InventoryAutomatic, true
	default:
		return InventoryDisabled, false
	}
}

// MacroSyncMode controls how user macros are written.
type MacroSyncMode int

const (
	MacroSyncOff MacroSyncMode = iota
	MacroSyncOn
	// MacroSyncFull re-sends sensitive values on every run.
	MacroSyncFull
)

// DesiredHostSpec is the fully computed target state of one host.
type DesiredHostSpec struct {
	RecordID    int          `json:"record_id"`
	Kind        RecordKind   `json:"kind"`
	Name        string       `json:"name"`
	VisibleName string       `json:"visible_name"`
	State       EnabledState `json:"state"`

	HostgroupPaths  []HostgroupPath `json:"hostgroups"`
	HostgroupErrors []error         `json:"-"`

	Templates []string       `json:"templates"`
	Interface *InterfaceSpec `json:"interface,omitempty"`
	Proxy     ProxyLinkage   `json:"proxy"`

	// Tags, Usermacros and Inventory are nil when their facet is not synced.
	Tags          []HostTag         `json:"tags,omitempty"`
	Usermacros    []Macro           `json:"usermacros,omitempty"`
	Inventory     map[string]string `json:"inventory,omitempty"`
	InventoryMode InventoryMode     `json:"inventory_mode"`
}

// HostgroupNames returns the joined names of all resolved group paths.
func (d *DesiredHostSpec) HostgroupNames() []string {
	out := make([]string, 0, len(d.HostgroupPaths))

	for _, p := range d.HostgroupPaths {
		out = append(out, p.String())
	}

	return out
}
