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

package sync

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

const historyLimit = 50

var bucketRuns = []byte("runs")

// RunLock is the exclusive run lock. It is the flock bbolt takes on its
// database file, so a second process opening the same path waits for the
// timeout and gives up. The database also keeps a short run history.
type RunLock struct {
	db   *bolt.DB
	path string
}

// AcquireRunLock opens the lock database at path. A lock held elsewhere for
// longer than timeout returns an error matching models.ErrRunLocked.
func AcquireRunLock(path string, timeout time.Duration) (*RunLock, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", models.ErrRunLocked, path)
		}

		return nil, fmt.Errorf("failed to open lock database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucketRuns, err)
	}

	return &RunLock{db: db, path: path}, nil
}

// Release closes the database and drops the lock.
func (l *RunLock) Release() error {
	return l.db.Close()
}

// SaveSummary records the counters of a finished run and prunes the
// history to the most recent runs. Per-host results are not stored.
func (l *RunLock) SaveSummary(s *models.RunSummary) error {
	entry := *s
	entry.Results = nil

	data, err := json.Marshal(&entry)
	if err != nil {
		return err
	}

	key := []byte(s.Started.UTC().Format(time.RFC3339Nano) + "/" + s.RunID)

	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		if err := b.Put(key, data); err != nil {
			return err
		}

		var keys [][]byte

		if err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		}); err != nil {
			return err
		}

		for i := 0; i < len(keys)-historyLimit; i++ {
			if err := b.Delete(keys[i]); err != nil {
				return err
			}
		}

		return nil
	})
}

// LastRuns returns up to n summaries, newest first.
func (l *RunLock) LastRuns(n int) ([]*models.RunSummary, error) {
	var runs []*models.RunSummary

	err := l.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()

		for k, v := c.Last(); k != nil && len(runs) < n; k, v = c.Prev() {
			var s models.RunSummary
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			runs = append(runs, &s)
		}

		return nil
	})

	return runs, err
}
