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

import "strconv"

// ContextData is the merged NetBox config context of a record. The monitoring
// overrides live under the "zabbix" key.
type ContextData map[string]any

// Lookup walks nested maps along path and returns the value found there.
func (c ContextData) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(c)

	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

// String returns the value at path when it is a string.
func (c ContextData) String(path ...string) (string, bool) {
	v, ok := c.Lookup(path...)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Int returns the value at path when it is numeric. JSON numbers arrive as
// float64; strings holding digits are accepted too.
func (c ContextData) Int(path ...string) (int, bool) {
	v, ok := c.Lookup(path...)
	if !ok {
		return 0, false
	}

	return AsInt(v)
}

// Map returns the object at path.
func (c ContextData) Map(path ...string) (map[string]any, bool) {
	v, ok := c.Lookup(path...)
	if !ok {
		return nil, false
	}

	m, ok := v.(map[string]any)

	return m, ok
}

// List returns the array at path.
func (c ContextData) List(path ...string) ([]any, bool) {
	v, ok := c.Lookup(path...)
	if !ok {
		return nil, false
	}

	l, ok := v.([]any)

	return l, ok
}

// StringList returns the array at path keeping only its string elements.
func (c ContextData) StringList(path ...string) ([]string, bool) {
	l, ok := c.List(path...)
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(l))

	for _, v := range l {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}

	return out, true
}

// AsInt converts JSON-decoded numbers and numeric strings to int.
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}

		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}

		return n, true
	default:
		return 0, false
	}
}
