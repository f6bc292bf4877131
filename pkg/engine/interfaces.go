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

//go:generate mockgen -destination=mock_engine.go -package=engine github.com/carverauto/netbox-zabbix-sync/pkg/engine Monitor

import (
	"context"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

// Monitor is the subset of the monitoring system API the engine writes
// through. Lookups of absent objects return an error matching
// models.ErrNotFound.
type Monitor interface {
	GetHost(ctx context.Context, name string) (*models.MonitoringHost, error)
	CreateHost(ctx context.Context, host *models.HostCreate) (string, error)
	UpdateHost(ctx context.Context, update *models.HostUpdate) error
	DeleteHost(ctx context.Context, hostID string) error

	GetHostGroup(ctx context.Context, name string) (string, error)
	// CreateHostGroup returns an error matching models.ErrAlreadyExists
	// when another writer created the group first.
	CreateHostGroup(ctx context.Context, name string) (string, error)

	// GetTemplates returns the ids of the templates found, keyed by name.
	GetTemplates(ctx context.Context, names []string) (map[string]string, error)
	GetProxy(ctx context.Context, name string) (string, error)
	GetProxyGroup(ctx context.Context, name string) (string, error)

	CreateInterface(ctx context.Context, hostID string, spec *models.InterfaceSpec) error
	UpdateInterface(ctx context.Context, update *models.InterfaceUpdate) error
}
