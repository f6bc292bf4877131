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
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
	"github.com/carverauto/netbox-zabbix-sync/pkg/sync"
)

type runFlags struct {
	dryRun   bool
	interval time.Duration
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "compute and log every change without writing to Zabbix")
	cmd.Flags().DurationVar(&flags.interval, "interval", 0, "repeat the run on this interval until interrupted")
}

func newRunCmd(global *globalFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile NetBox into Zabbix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), global, flags)
		},
	}

	addRunFlags(cmd, flags)

	return cmd
}

// runSync performs one run, or loops when an interval is configured. Host
// failures are reported in the log and the summary; only a run that could
// not proceed returns an error.
func runSync(ctx context.Context, global *globalFlags, flags *runFlags) error {
	a, err := newApp(ctx, global, func(cfg *sync.Config) {
		if flags.dryRun {
			cfg.DryRun = true
		}

		if flags.interval > 0 {
			cfg.Interval = models.Duration(flags.interval)
		}
	})
	if err != nil {
		return err
	}

	defer a.close(ctx)

	if a.cfg.Interval > 0 {
		a.logger.Info().Dur("interval", time.Duration(a.cfg.Interval)).Msg("Starting periodic sync")

		return a.service.Start(ctx)
	}

	summary, err := a.service.RunOnce(ctx)
	if errors.Is(err, context.Canceled) {
		a.logger.Warn().Msg("Run interrupted")

		return nil
	}

	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		a.logger.Warn().Int("failed", summary.Failed).Msg("Some hosts could not be reconciled")
	}

	return nil
}
