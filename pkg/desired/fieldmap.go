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
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// FieldMap maps a slash path in the NetBox object to a target name.
type FieldMap map[string]string

// Apply resolves every path of m against rec. Missing or empty values map to
// "" and non-scalar values are skipped.
func (m FieldMap) Apply(rec *models.SourceRecord, log logger.Logger) map[string]string {
	out := make(map[string]string, len(m))

	for path, target := range m {
		v, _ := rec.Field(path)

		switch {
		case v == nil:
			log.Debug().Str("host", rec.Name).Str("field", path).Msg("Field lookup returned an empty value")

			out[target] = ""
		case models.IsScalar(v):
			out[target] = models.Stringify(v)
		default:
			log.Info().Str("host", rec.Name).Str("field", path).Msg("Field lookup returned an unexpected type, skipping")
		}
	}

	return out
}
