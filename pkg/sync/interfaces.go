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

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/carverauto/netbox-zabbix-sync/pkg/sync Source,Monitor,Publisher

import (
	"context"
	"net/http"
	"time"

	"github.com/carverauto/netbox-zabbix-sync/pkg/engine"
	"github.com/carverauto/netbox-zabbix-sync/pkg/hostgroup"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// HTTPClient is satisfied by *http.Client and the wrappers in this package.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Source is the CMDB the reconciler reads from.
type Source interface {
	// Ping fails with an error matching models.ErrConnectivity when the
	// CMDB cannot be reached, and also models.ErrAuthentication when it
	// rejects the token.
	Ping(ctx context.Context) (string, error)
	ListRecords(ctx context.Context, kind models.RecordKind, filters models.Filters) ([]*models.SourceRecord, error)
	Regions(ctx context.Context) (hostgroup.Tree, error)
	SiteGroups(ctx context.Context) (hostgroup.Tree, error)
	// CustomFieldNames lists the custom fields defined for kind.
	CustomFieldNames(ctx context.Context, kind models.RecordKind) ([]string, error)
}

// Monitor is the monitoring system the reconciler writes to.
type Monitor interface {
	engine.Monitor

	// Ping returns the server version and fails with an error matching
	// models.ErrConnectivity when the API is unusable, and also
	// models.ErrAuthentication when the credentials are refused.
	Ping(ctx context.Context) (string, error)
	SupportsProxyGroups() bool
	Close(ctx context.Context) error
}

// Publisher announces finished runs.
type Publisher interface {
	Publish(ctx context.Context, summary *models.RunSummary) error
	Close() error
}

// Clock defines an interface for time-related operations (to mock ticker).
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker defines an interface for the ticker used in polling.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
