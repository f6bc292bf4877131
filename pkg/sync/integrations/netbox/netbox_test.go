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
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netbox-zabbix-sync/pkg/hostgroup"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// fakeNetbox serves single-page listings keyed by path.
func fakeNetbox(t *testing.T, pages map[string][]any, onRequest func(*http.Request)) *httptest.Server {
	t.Helper()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if onRequest != nil {
			onRequest(r)
		}

		if r.URL.Path == "/api/status/" {
			_, _ = w.Write([]byte(`{"netbox-version": "4.1.3", "python-version": "3.12"}`))
			return
		}

		results, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		writePage(w, results, "")
	}))
	t.Cleanup(server.Close)

	return server
}

func referencePages() map[string][]any {
	return map[string][]any{
		"/api/dcim/sites/": {
			map[string]any{
				"id": 1, "name": "HQ-AMS", "slug": "hq-ams",
				"region": map[string]any{"id": 3, "name": "Amsterdam", "slug": "ams"},
				"group":  map[string]any{"id": 4, "name": "Primary", "slug": "primary"},
			},
		},
		"/api/tenancy/tenants/": {
			map[string]any{
				"id": 5, "name": "NetOps", "slug": "netops",
				"group": map[string]any{"id": 6, "name": "IT", "slug": "it"},
			},
		},
		"/api/virtualization/clusters/": {
			map[string]any{
				"id": 7, "name": "cl-01", "slug": "cl-01",
				"type": map[string]any{"id": 8, "name": "VMware", "slug": "vmware"},
			},
		},
		"/api/dcim/device-types/": {
			map[string]any{"id": 9, "custom_fields": map[string]any{"zabbix_template": "APC UPS by SNMP"}},
		},
	}
}

func TestClient_ListRecords_Devices(t *testing.T) {
	pages := referencePages()
	pages[devicesPath] = []any{
		map[string]any{
			"id":          42,
			"name":        "pdu-01",
			"status":      map[string]any{"value": "active", "label": "Active"},
			"site":        map[string]any{"id": 1, "name": "HQ-AMS", "slug": "hq-ams"},
			"tenant":      map[string]any{"id": 5, "name": "NetOps", "slug": "netops"},
			"device_role": map[string]any{"id": 2, "name": "PDU", "slug": "pdu"},
			"device_type": map[string]any{
				"id": 9, "model": "AP8959", "slug": "ap8959",
				"manufacturer": map[string]any{"id": 10, "name": "APC", "slug": "apc"},
			},
			"rack":            map[string]any{"id": 11, "name": "R01", "slug": "r01"},
			"virtual_chassis": map[string]any{"id": 12, "name": "stack", "master": map[string]any{"id": 42, "name": "pdu-01"}},
			"primary_ip":      map[string]any{"id": 1, "address": "192.0.2.10/24"},
			"serial":          "SN-1",
			"custom_fields":   map[string]any{"owner": "NetOps"},
			"tags":            []any{map[string]any{"name": "Core", "slug": "core", "display": "Core"}},
			"config_context":  map[string]any{"zabbix": map[string]any{"proxy": "px-01"}},
		},
	}

	var query url.Values

	server := fakeNetbox(t, pages, func(r *http.Request) {
		if r.URL.Path == devicesPath {
			query = r.URL.Query()
		}
	})

	client := NewClient(server.URL, "test-token", server.Client(), logger.NewTestLogger())

	filters, err := models.ParseFilters(map[string]any{"name__n": nil, "status": []any{"active", "offline"}})
	require.NoError(t, err)

	records, err := client.ListRecords(context.Background(), models.KindDevice, filters)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []string{"null"}, query["name__n"])
	assert.Equal(t, []string{"active", "offline"}, query["status"])
	assert.Equal(t, "200", query.Get("limit"))

	rec := records[0]
	assert.Equal(t, models.KindDevice, rec.Kind)
	assert.Equal(t, "PDU", rec.Role.Name)
	assert.Equal(t, "Amsterdam", rec.Region.Name)
	assert.Equal(t, "Primary", rec.SiteGroup.Name)
	assert.Equal(t, "IT", rec.TenantGroup.Name)
	assert.Equal(t, "APC", rec.Manufacturer.Name)
	assert.Equal(t, "AP8959", rec.DeviceType.Name)
	assert.Equal(t, "R01", rec.Rack.Name)
	assert.Equal(t, "192.0.2.10/24", rec.PrimaryIP)
	assert.Equal(t, 42, rec.VirtualChassis.MasterID)
	assert.Equal(t, "APC UPS by SNMP", rec.DeviceTypeCustomFields["zabbix_template"])
	assert.Equal(t, []models.SourceTag{{Name: "Core", Slug: "core", Display: "Core"}}, rec.Tags)

	proxy, ok := rec.Context.String("zabbix", "proxy")
	assert.True(t, ok)
	assert.Equal(t, "px-01", proxy)

	// slash paths resolve against the raw object, device_role is aliased
	v, ok := rec.Field("role/name")
	assert.True(t, ok)
	assert.Equal(t, "PDU", v)

	v, ok = rec.Field("device_type/manufacturer/name")
	assert.True(t, ok)
	assert.Equal(t, "APC", v)
}

func TestClient_ListRecords_VirtualMachines(t *testing.T) {
	pages := referencePages()
	delete(pages, "/api/dcim/device-types/")
	pages[virtualMachinesPath] = []any{
		map[string]any{
			"id":          7,
			"name":        "vm-01",
			"status":      map[string]any{"value": "active", "label": "Active"},
			"cluster":     map[string]any{"id": 7, "name": "cl-01", "slug": "cl-01"},
			"role":        map[string]any{"id": 2, "name": "Web", "slug": "web"},
			"device":      map[string]any{"id": 42, "name": "esx-01"},
			"primary_ip4": map[string]any{"id": 3, "address": "198.51.100.7/24"},
			"memory":      4096,
		},
	}

	server := fakeNetbox(t, pages, nil)
	client := NewClient(server.URL, "test-token", server.Client(), logger.NewTestLogger())

	records, err := client.ListRecords(context.Background(), models.KindVirtualMachine, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, models.KindVirtualMachine, rec.Kind)
	assert.Equal(t, "cl-01", rec.Cluster.Name)
	assert.Equal(t, "VMware", rec.ClusterType.Name)
	assert.Equal(t, "esx-01", rec.Device.Name)
	assert.Equal(t, "198.51.100.7/24", rec.PrimaryIP)

	v, ok := rec.Field("memory")
	assert.True(t, ok)
	assert.Equal(t, float64(4096), v)
}

func TestClient_Ping(t *testing.T) {
	server := fakeNetbox(t, nil, nil)
	client := NewClient(server.URL+"/", "test-token", server.Client(), logger.NewTestLogger())

	version, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.1.3", version)
}

func TestClient_Ping_BadToken(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "bad-token", server.Client(), logger.NewTestLogger())

	_, err := client.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrAuthentication))
	assert.True(t, errors.Is(err, models.ErrConnectivity))
	assert.True(t, models.IsFatal(err))
}

func TestClient_Ping_Unreachable(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-token", server.Client(), logger.NewTestLogger())

	_, err := client.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConnectivity))
	assert.False(t, errors.Is(err, models.ErrAuthentication))
}

func TestClient_Trees(t *testing.T) {
	server := fakeNetbox(t, map[string][]any{
		"/api/dcim/regions/": {
			map[string]any{"id": 1, "name": "Europe", "parent": nil},
			map[string]any{"id": 2, "name": "Netherlands", "parent": map[string]any{"id": 1, "name": "Europe"}},
		},
		"/api/dcim/site-groups/": {
			map[string]any{"id": 1, "name": "Datacenters"},
		},
	}, nil)

	client := NewClient(server.URL, "test-token", server.Client(), logger.NewTestLogger())

	regions, err := client.Regions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hostgroup.Tree{"Europe": "", "Netherlands": "Europe"}, regions)
	assert.Equal(t, []string{"Europe", "Netherlands"}, regions.Chain("Netherlands"))

	groups, err := client.SiteGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hostgroup.Tree{"Datacenters": ""}, groups)
}

func TestClient_CustomFieldNames(t *testing.T) {
	var objectType string

	server := fakeNetbox(t, map[string][]any{
		"/api/extras/custom-fields/": {
			map[string]any{"name": "owner", "type": map[string]any{"value": "text", "label": "Text"}},
			map[string]any{"name": "contract", "type": map[string]any{"value": "object", "label": "Object"}},
			map[string]any{"name": "installed", "type": map[string]any{"value": "date", "label": "Date"}},
		},
	}, func(r *http.Request) {
		objectType = r.URL.Query().Get("object_type")
	})

	client := NewClient(server.URL, "test-token", server.Client(), logger.NewTestLogger())

	names, err := client.CustomFieldNames(context.Background(), models.KindVirtualMachine)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner", "contract"}, names)
	assert.Equal(t, "virtualization.virtualmachine", objectType)
}
