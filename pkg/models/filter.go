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
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var errFilterValue = errors.New("filter values must be scalars or lists of scalars")

// FilterOp is a source filter operator.
type FilterOp string

const (
	FilterEqual FilterOp = "eq"
	FilterIn    FilterOp = "in"
	FilterNotIn FilterOp = "nin"
)

const negationSuffix = "__n"

// Filter is one predicate applied when listing CMDB records.
type Filter struct {
	Key    string
	Op     FilterOp
	Values []string
}

// Filters is a predicate list. It decodes from the NetBox query form,
// for example {"name__n": "null", "status": ["active", "planned"]}.
type Filters []Filter

func (f *Filters) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	parsed, err := ParseFilters(raw)
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}

func (f *Filters) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	parsed, err := ParseFilters(raw)
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}

// ParseFilters converts the map form to predicates. A "__n" suffix negates,
// a list selects set membership. Keys are sorted for a stable query.
func ParseFilters(raw map[string]any) (Filters, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make(Filters, 0, len(raw))

	for _, k := range keys {
		values, list, err := filterValues(raw[k])
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", k, err)
		}

		f := Filter{Key: k, Values: values}

		switch {
		case strings.HasSuffix(k, negationSuffix):
			f.Key = strings.TrimSuffix(k, negationSuffix)
			f.Op = FilterNotIn
		case list:
			f.Op = FilterIn
		default:
			f.Op = FilterEqual
		}

		out = append(out, f)
	}

	return out, nil
}

func filterValues(v any) (values []string, list bool, err error) {
	if l, ok := v.([]any); ok {
		for _, item := range l {
			if !IsScalar(item) {
				return nil, true, errFilterValue
			}

			values = append(values, filterScalar(item))
		}

		return values, true, nil
	}

	if !IsScalar(v) {
		return nil, false, errFilterValue
	}

	return []string{filterScalar(v)}, false, nil
}

func filterScalar(v any) string {
	if v == nil {
		return "null"
	}

	return Stringify(v)
}

// QueryPairs renders the predicates as NetBox query parameters.
func (f Filters) QueryPairs() [][2]string {
	var out [][2]string

	for _, flt := range f {
		key := flt.Key
		if flt.Op == FilterNotIn {
			key += negationSuffix
		}

		for _, v := range flt.Values {
			out = append(out, [2]string{key, v})
		}
	}

	return out
}
