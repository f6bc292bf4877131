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

// Package zabbix is the monitoring side of the sync: a JSON-RPC client for
// the Zabbix API that reads and writes hosts and their related objects.
package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Masterminds/semver/v3"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

const endpointPath = "api_jsonrpc.php"

var (
	headerAuthSince  = semver.MustParse("6.4.0")
	hostGroupsSince  = semver.MustParse("6.2.0")
	proxyGroupsSince = semver.MustParse("7.0.0")
)

// Client talks to one Zabbix server. Authentication is either a static API
// token or a user session obtained with user.login.
type Client struct {
	endpoint   string
	token      string
	user       string
	password   string
	httpClient HTTPClient
	sessions   *SessionCache
	logger     logger.Logger
	requestID  atomic.Uint64

	mu      sync.RWMutex
	version *semver.Version
}

// NewClient validates the credentials in cfg and returns a client.
func NewClient(cfg Config, httpClient HTTPClient, log logger.Logger) (*Client, error) {
	if cfg.Token == "" && (cfg.User == "" || cfg.Password == "") {
		return nil, models.NewConfigurationError("zabbix", errNoCredentials)
	}

	endpoint := strings.TrimRight(cfg.URL, "/")
	if !strings.HasSuffix(endpoint, endpointPath) {
		endpoint += "/" + endpointPath
	}

	c := &Client{
		endpoint:   endpoint,
		token:      cfg.Token,
		user:       cfg.User,
		password:   cfg.Password,
		httpClient: httpClient,
		logger:     log,
	}

	c.sessions = NewSessionCache(c)

	return c, nil
}

// Ping reads the API version and verifies the credentials with a one-row
// hostgroup.get. An API error on that call is an AuthenticationError, any
// other failure a ConnectivityError.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var raw string

	if err := c.do(ctx, "apiinfo.version", []any{}, "", &raw); err != nil {
		return "", &models.ConnectivityError{System: "zabbix", Err: err}
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return "", &models.ConnectivityError{System: "zabbix", Err: fmt.Errorf("parsing version %q: %w", raw, err)}
	}

	c.mu.Lock()
	c.version = v
	c.mu.Unlock()

	check := map[string]any{"output": []string{"groupid"}, "limit": 1}
	if err := c.call(ctx, "hostgroup.get", check, nil); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return "", &models.AuthenticationError{System: "zabbix", Err: err}
		}

		return "", &models.ConnectivityError{System: "zabbix", Err: err}
	}

	return raw, nil
}

// Version returns the version read by Ping, nil before that.
func (c *Client) Version() *semver.Version {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version
}

// SupportsProxyGroups reports whether the server knows proxy groups (7.0+).
func (c *Client) SupportsProxyGroups() bool {
	ok, err := c.atLeast(proxyGroupsSince)

	return err == nil && ok
}

func (c *Client) atLeast(minVersion *semver.Version) (bool, error) {
	v := c.Version()
	if v == nil {
		return false, errVersionUnknown
	}

	return !v.LessThan(minVersion), nil
}

// Login implements SessionProvider with user.login.
func (c *Client) Login(ctx context.Context) (string, error) {
	var session string

	params := map[string]any{"username": c.user, "password": c.password}
	if err := c.do(ctx, "user.login", params, "", &session); err != nil {
		return "", fmt.Errorf("login as %s: %w", c.user, err)
	}

	c.logger.Debug().Str("user", c.user).Msg("Logged in to Zabbix")

	return session, nil
}

// Close ends the user session, if any.
func (c *Client) Close(ctx context.Context) error {
	if c.token != "" {
		return nil
	}

	session := c.sessions.Take()
	if session == "" {
		return nil
	}

	return c.do(ctx, "user.logout", []any{}, session, nil)
}

// call performs an authenticated request. An expired session is renewed
// once.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	auth, err := c.auth(ctx)
	if err != nil {
		return err
	}

	err = c.do(ctx, method, params, auth, result)
	if err == nil || c.token != "" || !isSessionExpired(err) {
		return err
	}

	c.logger.Info().Str("method", method).Msg("Zabbix session expired, logging in again")
	c.sessions.Invalidate(auth)

	if auth, err = c.auth(ctx); err != nil {
		return err
	}

	return c.do(ctx, method, params, auth, result)
}

func (c *Client) auth(ctx context.Context) (string, error) {
	if c.token != "" {
		return c.token, nil
	}

	return c.sessions.Session(ctx)
}

// do sends one JSON-RPC request. Servers before 6.4 take the credential in
// the request body, newer ones in the Authorization header.
func (c *Client) do(ctx context.Context, method string, params any, auth string, result any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.requestID.Add(1),
	}

	useHeader := true
	if auth != "" {
		if ok, err := c.atLeast(headerAuthSince); err == nil && !ok {
			req.Auth = auth
			useHeader = false
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", method, err)
	}

	c.logRequest(method, body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json-rpc")

	if auth != "" && useHeader {
		httpReq.Header.Set("Authorization", "Bearer "+auth)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer c.closeResponse(resp)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)

		return fmt.Errorf("%s: %w: %d", method, errUnexpectedStatusCode, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("%s: %w", method, rpcResp.Error)
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}

	return nil
}

// logRequest logs the request at debug level with secrets masked.
func (c *Client) logRequest(method string, body []byte) {
	event := c.logger.Debug()
	if !event.Enabled() {
		return
	}

	var decoded struct {
		Params any `json:"params"`
	}

	if err := json.Unmarshal(body, &decoded); err != nil {
		event.Discard()
		return
	}

	event.Str("method", method).
		Interface("params", logger.RedactParams(decoded.Params)).
		Msg("Zabbix API request")
}

// closeResponse closes the HTTP response body, logging any errors.
func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}
