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

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/carverauto/netbox-zabbix-sync/pkg/config"
	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/sync"
	"github.com/carverauto/netbox-zabbix-sync/pkg/sync/integrations/netbox"
	"github.com/carverauto/netbox-zabbix-sync/pkg/sync/integrations/zabbix"
	"github.com/carverauto/netbox-zabbix-sync/pkg/version"
)

const (
	serviceName = "netbox-zabbix-sync"
	httpTimeout = 60 * time.Second
)

// app holds everything a command needs, with the cleanup to run on exit.
type app struct {
	cfg      *sync.Config
	logger   logger.Logger
	service  *sync.Service
	closers  []func(context.Context)
	shutdown bool
}

// levelFor maps the verbosity flags onto a log level. Without flags the
// configured level applies.
func levelFor(verbose int, quiet bool, configured string) string {
	switch {
	case quiet:
		return "error"
	case verbose >= 2:
		return "debug"
	case verbose == 1:
		return "info"
	case configured != "":
		return configured
	default:
		return "warn"
	}
}

// loadConfig layers file, .env and environment. Loading logs go nowhere:
// the real logger depends on the result.
func loadConfig(ctx context.Context, flags *globalFlags) (*sync.Config, error) {
	cfg := sync.DefaultConfig()

	loader := config.NewConfig(logger.NewTestLogger(), config.WithDotenv(flags.dotenvPath))
	if err := loader.LoadAndValidate(ctx, flags.configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *sync.Config, flags *globalFlags) (logger.Logger, error) {
	logCfg := logger.DefaultConfig()
	if cfg.Logging != nil {
		logCfg = cfg.Logging
	}

	configured := logCfg.Level
	if logCfg.Debug {
		configured = "debug"
	}

	logCfg.Debug = false
	logCfg.Level = levelFor(flags.verbose, flags.quiet, configured)

	return logger.New(logCfg)
}

// newApp loads configuration and wires the NetBox and Zabbix clients into a
// service. The Zabbix client is created but not contacted.
func newApp(ctx context.Context, flags *globalFlags, override func(*sync.Config)) (*app, error) {
	cfg, err := loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}

	if override != nil {
		override(cfg)
	}

	log, err := newLogger(cfg, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log}

	var otelCfg *logger.OTelConfig
	if cfg.Logging != nil {
		otelCfg = cfg.Logging.OTel
	}

	tp, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetVersion(),
		Logger:         log,
		OTel:           otelCfg,
	})
	if err != nil {
		return nil, err
	}

	a.closers = append(a.closers, func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to flush traces")
		}
	})

	metrics := sync.NewPrometheusMetrics(cfg.Metrics, log)
	base := &http.Client{Timeout: httpTimeout}

	source := netbox.NewClient(cfg.NetBoxURL, cfg.NetBoxToken, instrument(base, "netbox", metrics, log), log)

	monitor, err := zabbix.NewClient(zabbix.Config{
		URL:      cfg.ZabbixURL,
		Token:    cfg.ZabbixToken,
		User:     cfg.ZabbixUser,
		Password: cfg.ZabbixPassword,
	}, instrument(base, "zabbix", metrics, log), log)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	opts := []sync.Option{sync.WithMetrics(metrics)}

	if cfg.NATS != nil && cfg.NATS.URL != "" {
		publisher, err := sync.ConnectPublisher(cfg.NATS, log)
		if err != nil {
			a.close(ctx)
			return nil, err
		}

		a.closers = append(a.closers, func(context.Context) {
			if err := publisher.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to drain NATS connection")
			}
		})

		opts = append(opts, sync.WithPublisher(publisher))
	}

	a.service = sync.NewService(cfg, source, monitor, log, opts...)

	return a, nil
}

// instrument counts the calls to system and guards them with a breaker.
func instrument(client sync.HTTPClient, system string, metrics sync.Metrics, log logger.Logger) sync.HTTPClient {
	counted := sync.NewMetricsHTTPClient(client, system, metrics)

	return sync.NewCircuitBreakerHTTPClient(counted, system, sync.DefaultCircuitBreakerConfig(), metrics, log)
}

// close runs the cleanups in reverse order. It is safe to call twice.
func (a *app) close(ctx context.Context) {
	if a.shutdown {
		return
	}

	a.shutdown = true

	ctx = context.WithoutCancel(ctx)

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
}
