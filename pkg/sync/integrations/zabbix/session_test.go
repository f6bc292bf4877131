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
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLoginFailed = errors.New("login failed")

type mockSessionProvider struct {
	mu        sync.Mutex
	callCount int
	err       error
}

func (m *mockSessionProvider) Login(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++

	if m.err != nil {
		return "", m.err
	}

	return "session-" + strconv.Itoa(m.callCount), nil
}

func (m *mockSessionProvider) getCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.callCount
}

func TestSessionCache(t *testing.T) {
	ctx := context.Background()

	t.Run("caches session on first call", func(t *testing.T) {
		mock := &mockSessionProvider{}
		cache := NewSessionCache(mock)

		s1, err := cache.Session(ctx)
		require.NoError(t, err)
		assert.Equal(t, "session-1", s1)

		s2, err := cache.Session(ctx)
		require.NoError(t, err)
		assert.Equal(t, "session-1", s2)
		assert.Equal(t, 1, mock.getCallCount())
	})

	t.Run("handles provider errors", func(t *testing.T) {
		cache := NewSessionCache(&mockSessionProvider{err: errLoginFailed})

		s, err := cache.Session(ctx)
		require.ErrorIs(t, err, errLoginFailed)
		assert.Empty(t, s)
	})

	t.Run("invalidate only drops the stale session", func(t *testing.T) {
		mock := &mockSessionProvider{}
		cache := NewSessionCache(mock)

		s1, err := cache.Session(ctx)
		require.NoError(t, err)

		cache.Invalidate("someone-else")

		s, err := cache.Session(ctx)
		require.NoError(t, err)
		assert.Equal(t, s1, s)

		cache.Invalidate(s1)

		s2, err := cache.Session(ctx)
		require.NoError(t, err)
		assert.Equal(t, "session-2", s2)
		assert.Equal(t, 2, mock.getCallCount())
	})

	t.Run("take forgets the session", func(t *testing.T) {
		cache := NewSessionCache(&mockSessionProvider{})

		_, err := cache.Session(ctx)
		require.NoError(t, err)

		assert.Equal(t, "session-1", cache.Take())
		assert.Empty(t, cache.Take())
	})

	t.Run("concurrent access", func(t *testing.T) {
		mock := &mockSessionProvider{}
		cache := NewSessionCache(mock)

		var wg sync.WaitGroup

		sessions := make([]string, 10)
		errs := make([]error, 10)

		for i := 0; i < 10; i++ {
			wg.Add(1)

			go func(idx int) {
				defer wg.Done()

				sessions[idx], errs[idx] = cache.Session(ctx)
			}(i)
		}

		wg.Wait()

		for i := 0; i < 10; i++ {
			require.NoError(t, errs[i])
			assert.Equal(t, "session-1", sessions[i])
		}

		assert.Equal(t, 1, mock.getCallCount())
	})
}
