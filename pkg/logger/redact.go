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

package logger

import "strings"

// Redacted replaces secret values in log output.
const Redacted = "********"

// sensitiveKeys are payload keys whose values never reach the logs.
var sensitiveKeys = map[string]bool{
	"community":      true,
	"authpassphrase": true,
	"privpassphrase": true,
	"password":       true,
	"token":          true,
}

// IsMacroReference reports whether v is a user macro like {$SNMP_COMMUNITY}.
func IsMacroReference(v string) bool {
	return strings.HasPrefix(v, "{$") && strings.HasSuffix(v, "}")
}

// RedactValue masks v unless it only references a macro.
func RedactValue(v string) string {
	if v == "" || IsMacroReference(v) {
		return v
	}

	return Redacted
}

// RedactParams returns a deep copy of a decoded JSON payload with secret
// values masked. Macros of type secret (1) or vault (2) are masked too.
func RedactParams(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))

		sensitiveMacro := false
		if typ, ok := t["type"]; ok && t["macro"] != nil {
			switch typ {
			case "1", "2", float64(1), float64(2), 1, 2:
				sensitiveMacro = true
			}
		}

		for k, val := range t {
			s, isString := val.(string)

			switch {
			case isString && sensitiveKeys[strings.ToLower(k)]:
				out[k] = RedactValue(s)
			case isString && sensitiveMacro && k == "value":
				out[k] = Redacted
			default:
				out[k] = RedactParams(val)
			}
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = RedactParams(item)
		}

		return out
	default:
		return v
	}
}
