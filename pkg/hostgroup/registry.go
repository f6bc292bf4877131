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

package hostgroup

import (
	"sort"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// Resolver turns one format token into zero or more path segments for a
// record. No segments means the token is empty for that record.
type Resolver interface {
	Resolve(rec *models.SourceRecord) []string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(rec *models.SourceRecord) []string

func (f ResolverFunc) Resolve(rec *models.SourceRecord) []string { return f(rec) }

type literalResolver string

func (l literalResolver) Resolve(*models.SourceRecord) []string { return []string{string(l)} }

type customFieldResolver string

func (c customFieldResolver) Resolve(rec *models.SourceRecord) []string {
	v, ok := rec.CustomField(string(c))
	if !ok {
		return nil
	}

	return []string{v}
}

func single(r *models.Ref) []string {
	if r == nil || r.Name == "" {
		return nil
	}

	return []string{r.Name}
}

// Registry holds the built-in attribute resolvers per record kind.
type Registry struct {
	attrs map[models.RecordKind]map[string]Resolver
}

// NewRegistry builds the built-in attributes. Region and site group expand
// to their ancestor chain when the matching traversal flag is set.
func NewRegistry(trees Trees, traverseRegions, traverseSiteGroups bool) *Registry {
	chain := func(tree Tree, enabled bool, pick func(*models.SourceRecord) *models.Ref) Resolver {
		return ResolverFunc(func(rec *models.SourceRecord) []string {
			ref := pick(rec)
			if ref == nil || ref.Name == "" {
				return nil
			}

			if !enabled {
				return []string{ref.Name}
			}

			return tree.Chain(ref.Name)
		})
	}

	ref := func(pick func(*models.SourceRecord) *models.Ref) Resolver {
		return ResolverFunc(func(rec *models.SourceRecord) []string { return single(pick(rec)) })
	}

	shared := map[string]Resolver{
		"region":       chain(trees.Regions, traverseRegions, func(r *models.SourceRecord) *models.Ref { return r.Region }),
		"site_group":   chain(trees.SiteGroups, traverseSiteGroups, func(r *models.SourceRecord) *models.Ref { return r.SiteGroup }),
		"site":         ref(func(r *models.SourceRecord) *models.Ref { return r.Site }),
		"tenant":       ref(func(r *models.SourceRecord) *models.Ref { return r.Tenant }),
		"tenant_group": ref(func(r *models.SourceRecord) *models.Ref { return r.TenantGroup }),
		"role":         ref(func(r *models.SourceRecord) *models.Ref { return r.Role }),
		"platform":     ref(func(r *models.SourceRecord) *models.Ref { return r.Platform }),
		"manufacturer": ref(func(r *models.SourceRecord) *models.Ref { return r.Manufacturer }),
		"cluster":      ref(func(r *models.SourceRecord) *models.Ref { return r.Cluster }),
		"cluster_type": ref(func(r *models.SourceRecord) *models.Ref { return r.ClusterType }),
	}

	device := map[string]Resolver{
		"location": ref(func(r *models.SourceRecord) *models.Ref { return r.Location }),
		"rack":     ref(func(r *models.SourceRecord) *models.Ref { return r.Rack }),
	}

	vm := map[string]Resolver{
		"device": ref(func(r *models.SourceRecord) *models.Ref { return r.Device }),
	}

	reg := &Registry{attrs: map[models.RecordKind]map[string]Resolver{
		models.KindDevice:         {},
		models.KindVirtualMachine: {},
	}}

	for name, r := range shared {
		reg.attrs[models.KindDevice][name] = r
		reg.attrs[models.KindVirtualMachine][name] = r
	}

	for name, r := range device {
		reg.attrs[models.KindDevice][name] = r
	}

	for name, r := range vm {
		reg.attrs[models.KindVirtualMachine][name] = r
	}

	return reg
}

// Attribute returns the built-in resolver for name.
func (r *Registry) Attribute(kind models.RecordKind, name string) (Resolver, bool) {
	res, ok := r.attrs[kind][name]

	return res, ok
}

// Names lists the built-in attributes for kind, sorted.
func (r *Registry) Names(kind models.RecordKind) []string {
	names := make([]string, 0, len(r.attrs[kind]))
	for name := range r.attrs[kind] {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// resolverFor picks the resolver for a parsed token: literal, built-in,
// then custom field.
func (r *Registry) resolverFor(kind models.RecordKind, tok Token) Resolver {
	if tok.Literal {
		return literalResolver(tok.Value)
	}

	if res, ok := r.Attribute(kind, tok.Value); ok {
		return res
	}

	return customFieldResolver(tok.Value)
}
