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
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the connection settings of the Zabbix API.
type Config struct {
	URL      string `json:"url"`
	Token    string `json:"-"`
	User     string `json:"user,omitempty"`
	Password string `json:"-"`
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	Auth    string `json:"auth,omitempty"`
	ID      uint64 `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *APIError       `json:"error"`
	ID      uint64          `json:"id"`
}

// APIError is an error object returned by the Zabbix API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zabbix api error %d: %s %s", e.Code, e.Message, e.Data)
}

// The API returns numbers as strings; these mirror its objects.

type hostRecord struct {
	HostID        string `json:"hostid"`
	Host          string `json:"host"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	InventoryMode string `json:"inventory_mode"`

	// 6.x
	ProxyHostID string `json:"proxy_hostid"`
	// 7.x
	ProxyID      string `json:"proxyid"`
	ProxyGroupID string `json:"proxy_groupid"`
	MonitoredBy  string `json:"monitored_by"`

	Groups          []groupRecord     `json:"groups"`
	HostGroups      []groupRecord     `json:"hostgroups"`
	ParentTemplates []templateRecord  `json:"parentTemplates"`
	Interfaces      []interfaceRecord `json:"interfaces"`
	Tags            []tagRecord       `json:"tags"`
	Macros          []macroRecord     `json:"macros"`
	// Inventory is an object, or an empty array when inventory is disabled.
	Inventory json.RawMessage `json:"inventory"`
}

type groupRecord struct {
	GroupID string `json:"groupid"`
	Name    string `json:"name"`
}

type templateRecord struct {
	TemplateID string `json:"templateid"`
	Host       string `json:"host"`
	Name       string `json:"name"`
}

type interfaceRecord struct {
	InterfaceID string          `json:"interfaceid"`
	Type        string          `json:"type"`
	IP          string          `json:"ip"`
	DNS         string          `json:"dns"`
	UseIP       string          `json:"useip"`
	Port        string          `json:"port"`
	Details     json.RawMessage `json:"details"`
}

type snmpRecord struct {
	Version        string `json:"version"`
	Bulk           string `json:"bulk"`
	Community      string `json:"community"`
	SecurityName   string `json:"securityname"`
	SecurityLevel  string `json:"securitylevel"`
	AuthProtocol   string `json:"authprotocol"`
	AuthPassphrase string `json:"authpassphrase"`
	PrivProtocol   string `json:"privprotocol"`
	PrivPassphrase string `json:"privpassphrase"`
	ContextName    string `json:"contextname"`
}

type tagRecord struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

type macroRecord struct {
	HostMacroID string `json:"hostmacroid"`
	Macro       string `json:"macro"`
	Value       string `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type proxyRecord struct {
	ProxyID string `json:"proxyid"`
}

type proxyGroupRecord struct {
	ProxyGroupID string `json:"proxy_groupid"`
	Name         string `json:"name"`
}

type createdIDs struct {
	HostIDs      []string `json:"hostids"`
	GroupIDs     []string `json:"groupids"`
	InterfaceIDs []string `json:"interfaceids"`
}
