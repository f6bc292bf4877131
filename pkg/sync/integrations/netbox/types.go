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
	"encoding/json"
	"net/http"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nestedRef is the brief form NetBox uses for related objects.
type nestedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type status struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ipAddress struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

type tag struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Display string `json:"display"`
}

type virtualChassis struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Master *nestedRef `json:"master"`
}

// Device represents a NetBox device as returned by the API.
type Device struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Status     status     `json:"status"`
	Site       *nestedRef `json:"site"`
	Tenant     *nestedRef `json:"tenant"`
	Role       *nestedRef `json:"role"`
	DeviceRole *nestedRef `json:"device_role"`
	Platform   *nestedRef `json:"platform"`
	DeviceType *struct {
		ID           int        `json:"id"`
		Model        string     `json:"model"`
		Slug         string     `json:"slug"`
		Manufacturer *nestedRef `json:"manufacturer"`
	} `json:"device_type"`
	Location       *nestedRef      `json:"location"`
	Rack           *nestedRef      `json:"rack"`
	Cluster        *nestedRef      `json:"cluster"`
	VirtualChassis *virtualChassis `json:"virtual_chassis"`
	PrimaryIP      *ipAddress      `json:"primary_ip"`
	PrimaryIP4     *ipAddress      `json:"primary_ip4"`
	PrimaryIP6     *ipAddress      `json:"primary_ip6"`
	CustomFields   map[string]any  `json:"custom_fields"`
	Tags           []tag           `json:"tags"`
	ConfigContext  map[string]any  `json:"config_context"`
}

// VirtualMachine represents a NetBox virtual machine as returned by the API.
type VirtualMachine struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Status        status         `json:"status"`
	Site          *nestedRef     `json:"site"`
	Tenant        *nestedRef     `json:"tenant"`
	Role          *nestedRef     `json:"role"`
	Platform      *nestedRef     `json:"platform"`
	Cluster       *nestedRef     `json:"cluster"`
	Device        *nestedRef     `json:"device"`
	PrimaryIP     *ipAddress     `json:"primary_ip"`
	PrimaryIP4    *ipAddress     `json:"primary_ip4"`
	PrimaryIP6    *ipAddress     `json:"primary_ip6"`
	CustomFields  map[string]any `json:"custom_fields"`
	Tags          []tag          `json:"tags"`
	ConfigContext map[string]any `json:"config_context"`
}

// site, tenant, cluster and device type carry the parents that the brief
// nested form leaves out.
type site struct {
	nestedRef
	Region *nestedRef `json:"region"`
	Group  *nestedRef `json:"group"`
}

type tenant struct {
	nestedRef
	Group *nestedRef `json:"group"`
}

type cluster struct {
	nestedRef
	Type *nestedRef `json:"type"`
}

type deviceType struct {
	ID           int            `json:"id"`
	CustomFields map[string]any `json:"custom_fields"`
}

// treeNode is a region or site group.
type treeNode struct {
	nestedRef
	Parent *nestedRef `json:"parent"`
}

type customField struct {
	Name string `json:"name"`
	Type status `json:"type"`
}

// Page represents one page of a NetBox list response.
type Page struct {
	Results  []json.RawMessage `json:"results"`
	Count    int               `json:"count"`
	Next     string            `json:"next"`     // Pagination URL
	Previous string            `json:"previous"` // Pagination URL
}

type statusResponse struct {
	Version string `json:"netbox-version"`
}
