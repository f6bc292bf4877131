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

// InventoryOptions configures inventory composition.
type InventoryOptions struct {
	Mode      models.InventoryMode
	Enabled   bool
	DeviceMap FieldMap
	VMMap     FieldMap
	Defaults  map[string]string
}

// ComposeInventory returns the configured inventory fields only. Context
// "zabbix.inventory" beats the field map, which beats the defaults.
func ComposeInventory(rec *models.SourceRecord, opts InventoryOptions, log logger.Logger) map[string]string {
	out := make(map[string]string, len(opts.Defaults))

	for field, value := range opts.Defaults {
		out[field] = value
	}

	fieldMap := opts.DeviceMap
	if !rec.IsDevice() {
		fieldMap = opts.VMMap
	}

	for field, value := range fieldMap.Apply(rec, log) {
		out[field] = value
	}

	if ctx, ok := rec.Context.Map("zabbix", "inventory"); ok {
		for field, raw := range ctx {
			if !models.IsScalar(raw) {
				continue
			}

			out[field] = models.Stringify(raw)
		}
	}

	return out
}
