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
	"errors"
	"fmt"
)

// Error kinds. Every typed error below matches exactly one of these with
// errors.Is.
var (
	ErrConfiguration          = errors.New("configuration error")
	ErrConnectivity           = errors.New("connectivity error")
	ErrAuthentication         = errors.New("credentials rejected")
	ErrRecordIncomplete       = errors.New("record incomplete")
	ErrRecordSkipped          = errors.New("record skipped")
	ErrHostgroupUnresolved    = errors.New("hostgroup unresolved")
	ErrInterfaceTypeChange    = errors.New("interface type change unsupported")
	ErrFacetApply             = errors.New("facet apply failed")
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrRunLocked              = errors.New("another run holds the lock")
	ErrProxyGroupsUnsupported = errors.New("proxy groups are not supported by this Zabbix version")
)

// ConfigurationError reports invalid or missing configuration.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Setting == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}

	return fmt.Sprintf("configuration %q: %v", e.Setting, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (*ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NewConfigurationError wraps err for the named setting.
func NewConfigurationError(setting string, err error) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Err: err}
}

// ConnectivityError reports an unreachable or unauthenticated endpoint.
type ConnectivityError struct {
	System string
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.System, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

func (*ConnectivityError) Is(target error) bool { return target == ErrConnectivity }

// AuthenticationError reports an endpoint that answered but refused the
// credentials. It also matches ErrConnectivity: the run cannot proceed, but
// retrying will not help.
type AuthenticationError struct {
	System string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s rejected the credentials: %v", e.System, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

func (*AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication || target == ErrConnectivity
}

// RecordIncompleteError reports a record missing data the host needs.
type RecordIncompleteError struct {
	RecordID int
	Name     string
	Missing  string
}

func (e *RecordIncompleteError) Error() string {
	return fmt.Sprintf("record %d (%s) is missing %s", e.RecordID, e.Name, e.Missing)
}

func (*RecordIncompleteError) Is(target error) bool { return target == ErrRecordIncomplete }

// RecordSkippedError marks a record that is not synced at all. Err, when
// set, is the condition that caused the skip.
type RecordSkippedError struct {
	RecordID int
	Name     string
	Reason   string
	Err      error
}

func (e *RecordSkippedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record %d (%s) skipped: %s: %v", e.RecordID, e.Name, e.Reason, e.Err)
	}

	return fmt.Sprintf("record %d (%s) skipped: %s", e.RecordID, e.Name, e.Reason)
}

func (e *RecordSkippedError) Unwrap() error { return e.Err }

func (*RecordSkippedError) Is(target error) bool { return target == ErrRecordSkipped }

// HostgroupUnresolvedError reports a format whose every segment came out empty.
type HostgroupUnresolvedError struct {
	Name   string
	Format string
}

func (e *HostgroupUnresolvedError) Error() string {
	return fmt.Sprintf("hostgroup format %q resolved to nothing for %s", e.Format, e.Name)
}

func (*HostgroupUnresolvedError) Is(target error) bool { return target == ErrHostgroupUnresolved }

// InterfaceTypeChangeUnsupportedError reports a desired interface type that
// differs from the stored one.
type InterfaceTypeChangeUnsupportedError struct {
	Host    string
	Current InterfaceType
	Desired InterfaceType
}

func (e *InterfaceTypeChangeUnsupportedError) Error() string {
	return fmt.Sprintf("host %s: changing interface type from %s to %s is not supported",
		e.Host, e.Current, e.Desired)
}

func (*InterfaceTypeChangeUnsupportedError) Is(target error) bool {
	return target == ErrInterfaceTypeChange
}

// FacetApplyError wraps a failed write to the monitoring system.
type FacetApplyError struct {
	Host  string
	Facet Facet
	Err   error
}

func (e *FacetApplyError) Error() string {
	return fmt.Sprintf("host %s: applying %s: %v", e.Host, e.Facet, e.Err)
}

func (e *FacetApplyError) Unwrap() error { return e.Err }

func (*FacetApplyError) Is(target error) bool { return target == ErrFacetApply }

// IsFatal reports whether err must abort the run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrConnectivity) ||
		errors.Is(err, ErrRunLocked)
}
