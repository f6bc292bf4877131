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

package zabbix

import (
	"context"
	"sync"
)

// SessionProvider obtains a new API session id.
type SessionProvider interface {
	Login(ctx context.Context) (string, error)
}

// SessionCache wraps a SessionProvider and caches the session id until it
// is invalidated.
type SessionCache struct {
	provider SessionProvider
	mu       sync.RWMutex
	session  string
}

// NewSessionCache creates a new session cache.
func NewSessionCache(provider SessionProvider) *SessionCache {
	return &SessionCache{
		provider: provider,
	}
}

// Session returns the cached session id, logging in when there is none.
func (c *SessionCache) Session(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.session != "" {
		session := c.session
		c.mu.RUnlock()

		return session, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have logged in while we waited.
	if c.session != "" {
		return c.session, nil
	}

	session, err := c.provider.Login(ctx)
	if err != nil {
		return "", err
	}

	c.session = session

	return session, nil
}

// Invalidate drops the cached session if it is still the one given.
func (c *SessionCache) Invalidate(session string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == session {
		c.session = ""
	}
}

// Take returns the cached session and forgets it.
func (c *SessionCache) Take() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	session := c.session
	c.session = ""

	return session
}
