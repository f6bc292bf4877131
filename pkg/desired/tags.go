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
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

const maxTagLength = 256

// TagOptions configures tag composition.
type TagOptions struct {
	Enabled bool
	// Lower lower-cases names and values.
	Lower bool
	// Name, when set, adds one tag per NetBox tag under this name.
	Name string
	// Value picks the NetBox tag attribute used as value: name, slug or display.
	Value     string
	DeviceMap FieldMap
	VMMap     FieldMap
	Defaults  map[string]string
}

// ComposeTags merges defaults, field map and context tags (later sources
// win per tag name), adds the NetBox tags and returns a sorted set.
func ComposeTags(rec *models.SourceRecord, opts TagOptions, log logger.Logger) []models.HostTag {
	lower := cases.Lower(language.Und)

	norm := func(s string) string {
		if opts.Lower {
			return lower.String(s)
		}

		return s
	}

	merged := make(map[string]string)

	put := func(name, value, source string) {
		if !validTagPart(name) || !validTagPart(value) {
			log.Debug().
				Str("host", rec.Name).
				Str("tag", name).
				Str("source", source).
				Msg("Skipping tag with empty or oversized name or value")

			return
		}

		merged[norm(name)] = norm(value)
	}

	for name, value := range opts.Defaults {
		put(name, value, "defaults")
	}

	fieldMap := opts.DeviceMap
	if !rec.IsDevice() {
		fieldMap = opts.VMMap
	}

	for name, value := range fieldMap.Apply(rec, log) {
		put(name, value, "field map")
	}

	if list, ok := rec.Context.List("zabbix", "tags"); ok {
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}

			for name, value := range entry {
				s, ok := value.(string)
				if !ok {
					continue
				}

				put(name, s, "config context")
			}
		}
	}

	tags := make([]models.HostTag, 0, len(merged)+len(rec.Tags))
	for name, value := range merged {
		tags = append(tags, models.HostTag{Tag: name, Value: value})
	}

	if opts.Name != "" {
		for _, t := range rec.Tags {
			value := sourceTagValue(t, opts.Value)
			if validTagPart(opts.Name) && validTagPart(value) {
				tags = append(tags, models.HostTag{Tag: norm(opts.Name), Value: norm(value)})
			}
		}
	}

	return NormalizeTags(tags)
}

func sourceTagValue(t models.SourceTag, field string) string {
	switch field {
	case "slug":
		return t.Slug
	case "display":
		return t.Display
	default:
		return t.Name
	}
}

func validTagPart(s string) bool {
	n := utf8.RuneCountInString(s)

	return n > 0 && n <= maxTagLength
}

// NormalizeTags removes duplicate pairs and sorts by name then value.
func NormalizeTags(tags []models.HostTag) []models.HostTag {
	seen := make(map[models.HostTag]bool, len(tags))
	out := make([]models.HostTag, 0, len(tags))

	for _, t := range tags {
		if seen[t] {
			continue
		}

		seen[t] = true
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Tag != out[j].Tag {
			return out[i].Tag < out[j].Tag
		}

		return out[i].Value < out[j].Value
	})

	return out
}
