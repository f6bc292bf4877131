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
	"sort"
	"strings"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// TemplateOptions configures template selection.
type TemplateOptions struct {
	// CustomField names the device type custom field holding the template.
	CustomField string
	// FromContext reads "zabbix.templates" instead of the custom field.
	FromContext bool
	// ContextOverrule prefers context templates when a record has them.
	ContextOverrule bool
}

// SelectTemplates returns the sorted, de-duplicated template names for rec.
// Virtual machines always take templates from context data.
func SelectTemplates(rec *models.SourceRecord, opts TemplateOptions) ([]string, error) {
	ctxTemplates, hasCtx := rec.Context.StringList("zabbix", "templates")
	if !hasCtx {
		if single, ok := rec.Context.String("zabbix", "templates"); ok {
			ctxTemplates, hasCtx = []string{single}, true
		}
	}

	var names []string

	switch {
	case !rec.IsDevice() || opts.FromContext || (opts.ContextOverrule && hasCtx):
		names = ctxTemplates
	default:
		names = fieldTemplates(rec, opts.CustomField)
	}

	names = uniqueSorted(names)
	if len(names) == 0 {
		return nil, incomplete(rec, "a monitoring template")
	}

	return names, nil
}

// fieldTemplates reads the template custom field from the device type,
// falling back to the device itself. Multi-select fields give several names.
func fieldTemplates(rec *models.SourceRecord, field string) []string {
	if field == "" {
		return nil
	}

	for _, fields := range []map[string]any{rec.DeviceTypeCustomFields, rec.CustomFields} {
		switch v := fields[field].(type) {
		case string:
			if v != "" {
				return []string{v}
			}
		case []any:
			var out []string

			for _, item := range v {
				if s := models.Stringify(item); s != "" {
					out = append(out, s)
				}
			}

			if len(out) > 0 {
				return out
			}
		}
	}

	return nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))

	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}

		seen[s] = true
		out = append(out, s)
	}

	sort.Strings(out)

	return out
}
