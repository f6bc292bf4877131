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
	"errors"
	"strings"
)

var (
	errUnexpectedStatusCode = errors.New("unexpected status code")
	errNoCredentials        = errors.New("either an API token or a user and password is required")
	errVersionUnknown       = errors.New("zabbix version unknown, ping first")
	errEmptyCreateResult    = errors.New("create returned no id")
)

// isSessionExpired reports whether the API rejected a cached session id.
func isSessionExpired(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	data := strings.ToLower(apiErr.Data)

	return strings.Contains(data, "session terminated") ||
		strings.Contains(data, "not authorized") ||
		strings.Contains(data, "not authorised")
}

// isDuplicate reports whether a create failed because the object exists.
func isDuplicate(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return strings.Contains(strings.ToLower(apiErr.Data), "already exists")
}
