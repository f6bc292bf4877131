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

package desired

import (
	"strings"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// StatusPolicy maps CMDB statuses to monitoring states. Entries are matched
// case-insensitively against the status value and label.
type StatusPolicy struct {
	removal map[string]bool
	disable map[string]bool
}

// NewStatusPolicy builds the lookup table from the configured lists.
func NewStatusPolicy(removal, disable []string) StatusPolicy {
	return StatusPolicy{removal: toSet(removal), disable: toSet(disable)}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}

	return set
}

func (p StatusPolicy) matches(set map[string]bool, s models.RecordStatus) bool {
	return set[strings.ToLower(s.Value)] || set[strings.ToLower(s.Label)]
}

// Map returns the monitoring state for status. Removal is checked first, so
// a status listed in both sets resolves to StateRemoved.
func (p StatusPolicy) Map(s models.RecordStatus) models.EnabledState {
	switch {
	case p.matches(p.removal, s):
		return models.StateRemoved
	case p.matches(p.disable, s):
		return models.StateDisabled
	default:
		return models.StateActive
	}
}
