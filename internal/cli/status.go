// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/quinn-tui/internal/gateway"
	"github.com/jeranaias/quinn-tui/internal/rulebook"
)

// =============================================================================
// STATUS COMMAND
// =============================================================================

func (a *app) newStatusCommand() *cobra.Command {
	var jsonMode bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the backend and count its rulebooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd, jsonMode)
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print status as JSON")
	return cmd
}

// statusReport is gathered concurrently; each probe fills its own fields.
type statusReport struct {
	health    gateway.HealthStatus
	healthErr error
	names     []string
	listErr   error
}

func (a *app) gatherStatus(ctx context.Context) statusReport {
	client := a.newClient()
	var r statusReport

	// Probes record their own errors so one failure does not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		r.health, r.healthErr = client.Health(ctx)
		return nil
	})
	g.Go(func() error {
		r.names, r.listErr = client.ListRulebooks(ctx)
		return nil
	})
	_ = g.Wait()
	return r
}

func (a *app) runStatus(cmd *cobra.Command, jsonMode bool) error {
	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	r := a.gatherStatus(ctx)

	selection := a.rulebook
	if selection == "" && r.listErr == nil {
		selection = rulebook.DefaultSelection(r.names, a.cfg.Rulebooks.Preferred)
	}

	data := StatusData{
		Backend:   a.cfg.Backend.URL,
		Healthy:   r.healthErr == nil && r.health.OK(),
		Status:    r.health.Status,
		Rulebooks: len(r.names),
		Selection: selection,
	}
	if r.healthErr != nil {
		data.HealthError = gateway.Message(r.healthErr)
	}
	if r.listErr != nil {
		data.ListError = gateway.Message(r.listErr)
	}

	out := cmd.OutOrStdout()
	if jsonMode {
		if err := NewJSONResponse("status", data).Write(out); err != nil {
			return err
		}
	} else {
		printStatus(cmd, data)
	}

	if r.healthErr != nil {
		return fmt.Errorf("backend health check failed: %w", r.healthErr)
	}
	return nil
}

func printStatus(cmd *cobra.Command, d StatusData) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("quinn status"))

	fmt.Fprintf(out, "%s%s\n", RenderLabel("Backend:"), d.Backend)

	switch {
	case d.HealthError != "":
		fmt.Fprintf(out, "%s%s %s\n", RenderLabel("Health:"), RenderStatus("fail"), d.HealthError)
	case d.Healthy:
		fmt.Fprintf(out, "%s%s %s\n", RenderLabel("Health:"), RenderStatus("ok"), d.Status)
	default:
		fmt.Fprintf(out, "%s%s %s\n", RenderLabel("Health:"), RenderStatus("warning"), d.Status)
	}

	if d.ListError != "" {
		fmt.Fprintf(out, "%s%s %s\n", RenderLabel("Rulebooks:"), RenderStatus("fail"), d.ListError)
	} else {
		fmt.Fprintf(out, "%s%d available\n", RenderLabel("Rulebooks:"), d.Rulebooks)
	}

	selection := d.Selection
	if selection == "" {
		selection = DimStyle.Render("backend default")
	}
	fmt.Fprintf(out, "%s%s\n", RenderLabel("Selection:"), selection)
}
