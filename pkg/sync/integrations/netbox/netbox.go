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

// Package netbox reads devices and virtual machines from the NetBox REST API.
package netbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/carverauto/netbox-zabbix-sync/pkg/hostgroup"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code")
	errUnauthorized         = errors.New("token rejected")
	errPaginationLoop       = errors.New("pagination link points back to a visited page")
)

const (
	devicesPath         = "/api/dcim/devices/"
	virtualMachinesPath = "/api/virtualization/virtual-machines/"
	defaultPageSize     = 200
)

// Client talks to one NetBox instance. It never writes.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	pageSize   int
	logger     logger.Logger
}

// NewClient returns a client for the NetBox at baseURL.
func NewClient(baseURL, token string, httpClient HTTPClient, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
		pageSize:   defaultPageSize,
		logger:     log,
	}
}

// Ping returns the NetBox version. A refused token is an AuthenticationError,
// any other failure a ConnectivityError.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var st statusResponse

	if err := c.getJSON(ctx, c.baseURL+"/api/status/", &st); err != nil {
		if errors.Is(err, errUnauthorized) {
			return "", &models.AuthenticationError{System: "netbox", Err: err}
		}

		return "", &models.ConnectivityError{System: "netbox", Err: err}
	}

	return st.Version, nil
}

// ListRecords lists devices or virtual machines matching filters and
// resolves the related objects the hostgroup and field logic needs.
func (c *Client) ListRecords(ctx context.Context, kind models.RecordKind, filters models.Filters) ([]*models.SourceRecord, error) {
	path := devicesPath
	if kind == models.KindVirtualMachine {
		path = virtualMachinesPath
	}

	raws, err := c.list(ctx, path, filters.QueryPairs())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}

	refs, err := c.loadReferences(ctx, kind)
	if err != nil {
		return nil, err
	}

	records := make([]*models.SourceRecord, 0, len(raws))

	for _, raw := range raws {
		var rec *models.SourceRecord

		if kind == models.KindVirtualMachine {
			rec, err = refs.virtualMachine(raw)
		} else {
			rec, err = refs.device(raw)
		}

		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", kind, err)
		}

		records = append(records, rec)
	}

	c.logger.Info().Str("kind", string(kind)).Int("count", len(records)).Msg("Fetched records from NetBox")

	return records, nil
}

// Regions returns the region tree keyed by name.
func (c *Client) Regions(ctx context.Context) (hostgroup.Tree, error) {
	return c.tree(ctx, "/api/dcim/regions/")
}

// SiteGroups returns the site group tree keyed by name.
func (c *Client) SiteGroups(ctx context.Context) (hostgroup.Tree, error) {
	return c.tree(ctx, "/api/dcim/site-groups/")
}

func (c *Client) tree(ctx context.Context, path string) (hostgroup.Tree, error) {
	raws, err := c.list(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	tree := make(hostgroup.Tree, len(raws))

	for _, raw := range raws {
		var n treeNode
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}

		parent := ""
		if n.Parent != nil {
			parent = n.Parent.Name
		}

		tree[n.Name] = parent
	}

	return tree, nil
}

// CustomFieldNames lists the text, select and object custom fields defined
// for the object type of kind.
func (c *Client) CustomFieldNames(ctx context.Context, kind models.RecordKind) ([]string, error) {
	objectType := "dcim.device"
	if kind == models.KindVirtualMachine {
		objectType = "virtualization.virtualmachine"
	}

	raws, err := c.list(ctx, "/api/extras/custom-fields/", [][2]string{{"object_type", objectType}})
	if err != nil {
		return nil, err
	}

	var names []string

	for _, raw := range raws {
		var cf customField
		if err := json.Unmarshal(raw, &cf); err != nil {
			return nil, err
		}

		switch cf.Type.Value {
		case "text", "select", "object":
			names = append(names, cf.Name)
		}
	}

	return names, nil
}

// list follows the next links of a paginated endpoint.
func (c *Client) list(ctx context.Context, path string, query [][2]string) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprint(c.pageSize))

	for _, kv := range query {
		params.Add(kv[0], kv[1])
	}

	next := c.baseURL + path + "?" + params.Encode()
	visited := make(map[string]bool)

	var out []json.RawMessage

	for next != "" {
		if visited[next] {
			return nil, fmt.Errorf("%w: %s", errPaginationLoop, next)
		}

		visited[next] = true

		var page Page
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}

		if out == nil {
			out = make([]json.RawMessage, 0, page.Count)
		}

		out = append(out, page.Results...)
		next = page.Next
	}

	return out, nil
}

func (c *Client) getJSON(ctx context.Context, target string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer c.closeResponse(resp)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %d from %s", errUnauthorized, resp.StatusCode, req.URL.Path)
		}

		return fmt.Errorf("%w: %d from %s", errUnexpectedStatusCode, resp.StatusCode, req.URL.Path)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

// closeResponse closes the HTTP response body, logging any errors.
func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}
