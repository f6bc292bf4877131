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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
	"github.com/carverauto/netbox-zabbix-sync/pkg/sync"
)

func newHostgroupsCmd(global *globalFlags) *cobra.Command {
	var (
		vms     bool
		options bool
	)

	cmd := &cobra.Command{
		Use:   "hostgroups",
		Short: "Show the host groups the configured formats produce",
		Long: `Reads records from NetBox and prints the host group paths the configured
format yields for each, without contacting Zabbix. Use --options to list
what every built-in attribute resolves to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), global, nil)
			if err != nil {
				return err
			}

			defer a.close(cmd.Context())

			kind := models.KindDevice
			if vms {
				kind = models.KindVirtualMachine
			}

			previews, err := a.service.PreviewHostgroups(cmd.Context(), kind)
			if err != nil {
				return err
			}

			return printPreviews(cmd.OutOrStdout(), previews, options)
		},
	}

	cmd.Flags().BoolVar(&vms, "vms", false, "preview virtual machines instead of devices")
	cmd.Flags().BoolVar(&options, "options", false, "also list the value of every built-in attribute")

	return cmd
}

func printPreviews(out io.Writer, previews []sync.HostgroupPreview, options bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "HOST\tHOSTGROUPS\tERRORS")

	for _, p := range previews {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Host, orDash(strings.Join(p.Paths, ", ")), orDash(strings.Join(p.Errors, "; ")))

		if !options {
			continue
		}

		for _, o := range p.Options {
			fmt.Fprintf(w, "  %s\t%s\t\n", o.Token, orDash(o.Value))
		}
	}

	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
