// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/jeranaias/quinn-tui/internal/ui/styles"
)

// =============================================================================
// RULEBOOKS COMMAND
// =============================================================================

func (a *app) newRulebooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rulebooks",
		Aliases: []string{"rb"},
		Short:   "List, upload and check rulebooks",
	}

	var jsonMode bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List rulebooks known to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRulebooksList(cmd, jsonMode)
		},
	}
	list.Flags().BoolVar(&jsonMode, "json", false, "Print the list as JSON")

	upload := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a rulebook document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRulebooksUpload(cmd, args[0])
		},
	}

	sel := &cobra.Command{
		Use:   "select <name>",
		Short: "Check that a rulebook exists and show how to use it",
		Long: `Checks that the backend knows the named rulebook.

The selection is not saved between runs; pass --rulebook <name> to other
commands, or set rulebooks.preferred in the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRulebooksSelect(cmd, args[0])
		},
	}

	cmd.AddCommand(list, upload, sel)
	return cmd
}

func (a *app) runRulebooksList(cmd *cobra.Command, jsonMode bool) error {
	ctrl := a.newController()
	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	if err := ctrl.RefreshRulebooks(ctx); err != nil {
		return err
	}
	names := ctrl.Registry().Names()
	selection := ctrl.Registry().Selection()

	out := cmd.OutOrStdout()
	if jsonMode {
		return NewJSONResponse("rulebooks list", RulebookListData{
			Rulebooks: names,
			Selection: selection,
		}).Write(out)
	}

	if len(names) == 0 {
		fmt.Fprintln(out, "No rulebooks uploaded yet. Use 'quinn rulebooks upload <path>'.")
		return nil
	}
	width := GetTerminalWidth() - 6
	for _, name := range names {
		marker := "   "
		if name == selection {
			marker = styles.StatusIndicators.Active
		}
		fmt.Fprintf(out, "%s %s\n", marker, runewidth.Truncate(name, width, "..."))
	}
	return nil
}

func (a *app) runRulebooksUpload(cmd *cobra.Command, path string) error {
	ctrl := a.newController()
	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	if err := ctrl.PickPath(ctx, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s uploaded as %s\n",
		SuccessStyle.Render("[OK]"), ctrl.Registry().Selection())
	return nil
}

func (a *app) runRulebooksSelect(cmd *cobra.Command, name string) error {
	ctrl := a.newController()
	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	if err := ctrl.RefreshRulebooks(ctx); err != nil {
		return err
	}
	if !ctrl.Registry().Contains(name) {
		return NewNotFoundError("rulebook", name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is available; pass --rulebook %q to use it\n",
		SuccessStyle.Render("[OK]"), name, name)
	return nil
}
