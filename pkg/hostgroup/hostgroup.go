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

// Package hostgroup resolves hostgroup format strings such as
// "site/'Network'/role" into group paths for a NetBox record.
package hostgroup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

var (
	errEmptyFormat  = errors.New("hostgroup format is empty")
	errUnknownToken = errors.New("unknown hostgroup token")
)

// Token is one "/"-separated element of a format.
type Token struct {
	Value   string
	Literal bool
}

// Format is a parsed hostgroup format.
type Format struct {
	Raw    string
	Tokens []Token
}

func (f Format) String() string { return f.Raw }

// ParseFormat splits s on "/". Empty tokens are dropped. Tokens wrapped in
// single or double quotes are literals and lose their quotes.
func ParseFormat(s string) Format {
	f := Format{Raw: s}

	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if isQuoted(part) {
			if lit := part[1 : len(part)-1]; lit != "" {
				f.Tokens = append(f.Tokens, Token{Value: lit, Literal: true})
			}

			continue
		}

		f.Tokens = append(f.Tokens, Token{Value: part})
	}

	return f
}

// ParseFormats parses each format string.
func ParseFormats(raw []string) []Format {
	out := make([]Format, 0, len(raw))
	for _, s := range raw {
		out = append(out, ParseFormat(s))
	}

	return out
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}

	first, last := s[0], s[len(s)-1]

	return (first == '"' || first == '\'') && first == last
}

// PathResolver computes hostgroup paths for records.
type PathResolver struct {
	registry *Registry
	logger   logger.Logger
}

// NewPathResolver returns a resolver backed by reg.
func NewPathResolver(reg *Registry, log logger.Logger) *PathResolver {
	return &PathResolver{registry: reg, logger: log}
}

// Registry exposes the attribute registry.
func (p *PathResolver) Registry() *Registry { return p.registry }

// ResolveFormat joins the non-empty segments of one format. A format that
// yields no segment at all is a HostgroupUnresolvedError.
func (p *PathResolver) ResolveFormat(rec *models.SourceRecord, f Format) (models.HostgroupPath, error) {
	var path models.HostgroupPath

	for _, tok := range f.Tokens {
		segments := p.registry.resolverFor(rec.Kind, tok).Resolve(rec)

		if len(segments) == 0 {
			p.logger.Debug().
				Str("host", rec.Name).
				Str("format", f.Raw).
				Str("token", tok.Value).
				Msg("Hostgroup token empty for record, dropping it")

			continue
		}

		for _, s := range segments {
			if s != "" {
				path = append(path, s)
			}
		}
	}

	if len(path) == 0 {
		return nil, &models.HostgroupUnresolvedError{Name: rec.Name, Format: f.Raw}
	}

	return path, nil
}

// Resolve evaluates every format. Formats that fail do not stop the others;
// the host keeps the groups that did resolve. Duplicate paths are removed.
func (p *PathResolver) Resolve(rec *models.SourceRecord, formats []Format) ([]models.HostgroupPath, []error) {
	var (
		paths []models.HostgroupPath
		errs  []error
	)

	seen := make(map[string]bool, len(formats))

	for _, f := range formats {
		path, err := p.ResolveFormat(rec, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		key := path.String()
		if seen[key] {
			continue
		}

		seen[key] = true
		paths = append(paths, path)
	}

	return paths, errs
}

// ValidateFormats checks that every token is a literal, a built-in for kind
// or one of the known custom fields.
func ValidateFormats(reg *Registry, kind models.RecordKind, formats []Format, customFields []string) error {
	known := make(map[string]bool, len(customFields))
	for _, cf := range customFields {
		known[cf] = true
	}

	for _, f := range formats {
		if len(f.Tokens) == 0 {
			return models.NewConfigurationError(settingFor(kind), errEmptyFormat)
		}

		for _, tok := range f.Tokens {
			if tok.Literal {
				continue
			}

			if _, ok := reg.Attribute(kind, tok.Value); ok || known[tok.Value] {
				continue
			}

			return models.NewConfigurationError(settingFor(kind),
				fmt.Errorf("%w %q in %q: not a %s attribute or custom field", errUnknownToken, tok.Value, f.Raw, kind))
		}
	}

	return nil
}

func settingFor(kind models.RecordKind) string {
	if kind == models.KindVirtualMachine {
		return "vm_hostgroup_format"
	}

	return "hostgroup_format"
}

// Option is one built-in attribute with its resolved value for a record.
type Option struct {
	Token string
	Value string
}

// Options lists what each built-in attribute resolves to for rec.
func (p *PathResolver) Options(rec *models.SourceRecord) []Option {
	names := p.registry.Names(rec.Kind)
	out := make([]Option, 0, len(names))

	for _, name := range names {
		res, _ := p.registry.Attribute(rec.Kind, name)
		out = append(out, Option{Token: name, Value: strings.Join(res.Resolve(rec), "/")})
	}

	return out
}
