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
	"regexp"
	"sort"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

var macroNameRe = regexp.MustCompile(`^\{\$[A-Z0-9._]*(:.*)?\}$`)

// MacroOptions configures user macro composition.
type MacroOptions struct {
	Mode      models.MacroSyncMode
	DeviceMap FieldMap
	VMMap     FieldMap
	// Defaults values are either a string or {value, type, description}.
	Defaults map[string]any
}

// ValidMacroName reports whether name is a well-formed user macro.
func ValidMacroName(name string) bool {
	return macroNameRe.MatchString(name)
}

// ShouldResend reports whether a sensitive macro value is written. Values
// are written when absent from the host, or on every run in full mode.
func ShouldResend(present bool, mode models.MacroSyncMode) bool {
	return mode == models.MacroSyncFull || !present
}

// ComposeMacros merges defaults, field map and context usermacros. Later
// sources replace earlier ones with the same name. Invalid entries are
// dropped with a warning.
func ComposeMacros(rec *models.SourceRecord, opts MacroOptions, log logger.Logger) []models.Macro {
	merged := make(map[string]models.Macro)

	put := func(name string, raw any, source string) {
		macro, ok := parseMacro(name, raw)
		if !ok {
			log.Warn().
				Str("host", rec.Name).
				Str("macro", name).
				Str("source", source).
				Msg("Skipping invalid usermacro")

			return
		}

		merged[name] = macro
	}

	for name, raw := range opts.Defaults {
		put(name, raw, "defaults")
	}

	fieldMap := opts.DeviceMap
	if !rec.IsDevice() {
		fieldMap = opts.VMMap
	}

	for name, value := range fieldMap.Apply(rec, log) {
		put(name, value, "field map")
	}

	if ctx, ok := rec.Context.Map("zabbix", "usermacros"); ok {
		for name, raw := range ctx {
			put(name, raw, "config context")
		}
	}

	out := make([]models.Macro, 0, len(merged))
	for _, m := range merged {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

func parseMacro(name string, raw any) (models.Macro, bool) {
	if !ValidMacroName(name) {
		return models.Macro{}, false
	}

	switch v := raw.(type) {
	case string:
		return models.Macro{Name: name, Kind: models.MacroText, Value: v}, true
	case map[string]any:
		value, ok := v["value"].(string)
		if !ok {
			return models.Macro{}, false
		}

		kind, ok := models.ParseMacroKind(models.Stringify(v["type"]))
		if !ok {
			return models.Macro{}, false
		}

		desc, _ := v["description"].(string)

		return models.Macro{Name: name, Kind: kind, Value: value, Description: desc}, true
	default:
		if models.IsScalar(v) && v != nil {
			return models.Macro{Name: name, Kind: models.MacroText, Value: models.Stringify(v)}, true
		}

		return models.Macro{}, false
	}
}
