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
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
	"github.com/carverauto/netbox-zabbix-sync/pkg/sync"
)

const defaultHistoryRuns = 10

func newHistoryCmd(global *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the most recent runs",
		Long: `Prints the counters of the latest runs kept in the lock database. Takes the
run lock, so it waits for a run in progress up to lock_timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), global)
			if err != nil {
				return err
			}

			lock, err := sync.AcquireRunLock(cfg.LockPath, time.Duration(cfg.LockTimeout))
			if err != nil {
				return err
			}

			runs, err := lock.LastRuns(limit)
			if releaseErr := lock.Release(); err == nil {
				err = releaseErr
			}

			if err != nil {
				return fmt.Errorf("failed to read run history: %w", err)
			}

			return printHistory(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "runs", "n", defaultHistoryRuns, "number of runs to list")

	return cmd
}

func printHistory(out io.Writer, runs []*models.RunSummary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "STARTED\tDURATION\tMODE\tRECORDS\tCHANGED\tSKIPPED\tFAILED\tRUN")

	for _, r := range runs {
		mode := "live"
		if r.DryRun {
			mode = "dry-run"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.Started.Local().Format(time.DateTime),
			r.Finished.Sub(r.Started).Round(time.Millisecond),
			mode, r.Records, r.Changed, r.Skipped, r.Failed, r.RunID)
	}

	return w.Flush()
}
