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

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// GroupCache remembers host groups known to exist, shared by all hosts of a
// run. Concurrent lookups or creates of the same name share one call.
type GroupCache struct {
	mu     sync.RWMutex
	ids    map[string]string
	flight singleflight.Group
}

// NewGroupCache returns an empty cache.
func NewGroupCache() *GroupCache {
	return &GroupCache{ids: make(map[string]string)}
}

type groupResult struct {
	id      string
	created bool
}

func (c *GroupCache) cached(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.ids[name]

	return id, ok
}

func (c *GroupCache) store(name, id string) {
	c.mu.Lock()
	c.ids[name] = id
	c.mu.Unlock()
}

// Ensure returns the id of the named group, creating it when create is set.
// A concurrent creator winning the race is not an error: the group is looked
// up again. Without create, a missing group returns models.ErrNotFound.
func (c *GroupCache) Ensure(ctx context.Context, m Monitor, name string, create bool) (id string, created bool, err error) {
	if id, ok := c.cached(name); ok {
		return id, false, nil
	}

	key := name
	if create {
		key = "create:" + name
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		if id, ok := c.cached(name); ok {
			return groupResult{id: id}, nil
		}

		id, err := m.GetHostGroup(ctx, name)
		if err == nil {
			c.store(name, id)

			return groupResult{id: id}, nil
		}

		if !errors.Is(err, models.ErrNotFound) || !create {
			return nil, err
		}

		id, err = m.CreateHostGroup(ctx, name)

		switch {
		case err == nil:
			c.store(name, id)

			return groupResult{id: id, created: true}, nil
		case errors.Is(err, models.ErrAlreadyExists):
			if id, err = m.GetHostGroup(ctx, name); err != nil {
				return nil, fmt.Errorf("group %s reported as existing: %w", name, err)
			}

			c.store(name, id)

			return groupResult{id: id}, nil
		default:
			return nil, err
		}
	})
	if err != nil {
		return "", false, err
	}

	res := v.(groupResult)

	return res.id, res.created, nil
}

// idCache maps names to ids for templates and proxies.
type idCache struct {
	mu  sync.RWMutex
	ids map[string]string
}

func newIDCache() *idCache {
	return &idCache{ids: make(map[string]string)}
}

func (c *idCache) get(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.ids[name]

	return id, ok
}

func (c *idCache) put(name, id string) {
	c.mu.Lock()
	c.ids[name] = id
	c.mu.Unlock()
}

// lookup returns the id of name, calling fetch on a miss.
func (c *idCache) lookup(ctx context.Context, name string, fetch func(context.Context, string) (string, error)) (string, error) {
	if id, ok := c.get(name); ok {
		return id, nil
	}

	id, err := fetch(ctx, name)
	if err != nil {
		return "", err
	}

	c.put(name, id)

	return id, nil
}
