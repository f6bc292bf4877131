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

// HostInterface is an interface as currently stored in Zabbix.
type HostInterface struct {
	ID string `json:"interfaceid"`
	InterfaceSpec
}

// HostMacro is a user macro as currently stored in Zabbix. Value is empty
// for secret and vault macros because Zabbix never returns them.
type HostMacro struct {
	ID string `json:"hostmacroid"`
	Macro
}

// NamedID is a Zabbix object reference.
type NamedID struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CurrentProxy is the proxy linkage currently stored on a host.
type CurrentProxy struct {
	Kind ProxyKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

// MonitoringHost is the current state of a host in Zabbix.
type MonitoringHost struct {
	ID            string            `json:"hostid"`
	Host          string            `json:"host"`
	Name          string            `json:"name"`
	Status        string            `json:"status"`
	Groups        []NamedID         `json:"groups"`
	Templates     []NamedID         `json:"templates"`
	Interfaces    []HostInterface   `json:"interfaces"`
	Proxy         CurrentProxy      `json:"proxy"`
	Tags          []HostTag         `json:"tags"`
	Macros        []HostMacro       `json:"macros"`
	InventoryMode InventoryMode     `json:"inventory_mode"`
	Inventory     map[string]string `json:"inventory"`
}

// HostUpdate is a single facet write. Only the fields set are sent.
type HostUpdate struct {
	HostID      string
	Name        *string
	Status      *string
	GroupIDs    []string
	TemplateIDs []string
	// ClearTemplateIDs unlinks and clears the listed templates.
	ClearTemplateIDs []string
	Proxy            *ProxyAssignment
	Tags             []HostTag
	SetTags          bool
	Macros           []MacroWrite
	SetMacros        bool
	InventoryMode    *InventoryMode
	Inventory        map[string]string
}

// ProxyAssignment is a resolved proxy linkage with Zabbix ids. Kind
// ProxyNone clears any linkage.
type ProxyAssignment struct {
	Kind ProxyKind
	ID   string
}

// MacroWrite is one macro in a host.update call. When KeepValue is set the
// value is omitted so Zabbix keeps the stored secret.
type MacroWrite struct {
	ID        string
	Macro     Macro
	KeepValue bool
}

// HostCreate is the payload for creating a host in one call.
type HostCreate struct {
	Host          string
	Name          string
	Status        string
	GroupIDs      []string
	TemplateIDs   []string
	Interface     *InterfaceSpec
	Proxy         *ProxyAssignment
	Tags          []HostTag
	Macros        []Macro
	InventoryMode InventoryMode
	Inventory     map[string]string
}

// InterfaceUpdate changes an existing interface. Fields lists the changed
// field names ("port", "community", ...) and Desired carries their values.
type InterfaceUpdate struct {
	InterfaceID string
	HostID      string
	Fields      []string
	Desired     InterfaceSpec
}

// Changed reports whether field is part of the update.
func (u InterfaceUpdate) Changed(field string) bool {
	for _, f := range u.Fields {
		if f == field {
			return true
		}
	}

	return false
}
