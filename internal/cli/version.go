// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func (a *app) newVersionCommand() *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := VersionData{
				Version:   a.build.Version,
				GitCommit: a.build.GitCommit,
				BuildDate: a.build.BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if jsonMode {
				return NewJSONResponse("version", data).Write(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "quinn %s (commit %s, built %s, %s %s)\n",
				data.Version, data.GitCommit, data.BuildDate, data.GoVersion, data.Platform)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print as JSON")
	return cmd
}
