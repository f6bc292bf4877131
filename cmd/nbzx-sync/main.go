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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/carverauto/netbox-zabbix-sync/pkg/version"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	dotenvPath string
	verbose    int
	quiet      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	run := &runFlags{}

	root := &cobra.Command{
		Use:   "nbzx-sync",
		Short: "Synchronize NetBox devices and virtual machines into Zabbix",
		Long: `nbzx-sync reads devices and virtual machines from NetBox and makes the
matching Zabbix hosts agree with them: host groups, templates, interface,
proxy, tags, user macros and inventory.

Without a subcommand it performs one run, or loops when --interval is set.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), flags, run)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML or JSON configuration file")
	pf.StringVar(&flags.dotenvPath, "env-file", ".env", "path to a .env file with credentials, empty to disable")
	pf.CountVarP(&flags.verbose, "verbose", "v", "log more: -v for info, -vv for debug")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "log errors only")

	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	addRunFlags(root, run)

	root.AddCommand(newRunCmd(flags), newHostgroupsCmd(flags), newHistoryCmd(flags), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("nbzx-sync %s\n", version.GetFullVersion())
		},
	}
}
