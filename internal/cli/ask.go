// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// ASK COMMAND
// =============================================================================

func (a *app) newAskCommand() *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a single question and print the answer",
		Example: `  quinn ask "How many seasons are there?"
  quinn ask --rulebook root.pdf "Who goes first?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd, strings.Join(args, " "), jsonMode)
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print the answer as JSON")
	return cmd
}

func (a *app) runAsk(cmd *cobra.Command, question string, jsonMode bool) error {
	if strings.TrimSpace(question) == "" {
		return NewValidationError("question", question, "must not be blank")
	}

	ctrl := a.newController()
	ctx, cancel := a.requestContext(cmd.Context())
	defer cancel()

	if err := ctrl.Init(ctx); err != nil {
		// The backend falls back to its own default rulebook.
		a.log.Warn("rulebook refresh failed", zap.Error(err))
		if !jsonMode {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", WarningStyle.Render("[WARN]"), err)
		}
	}

	ctx, cancel = a.requestContext(cmd.Context())
	defer cancel()
	if err := ctrl.Submit(ctx, question); err != nil {
		return err
	}

	reply := ""
	if last, ok := ctrl.Conversation().Last(); ok {
		reply = last.Text
	}
	selection := ctrl.Registry().Selection()

	out := cmd.OutOrStdout()
	if jsonMode {
		return NewJSONResponse("ask", AskData{
			Question: strings.TrimSpace(question),
			Rulebook: selection,
			Reply:    reply,
		}).Write(out)
	}

	a.displayResponse(out, reply)
	return nil
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a reply, rendering markdown only when out is a
// terminal so piped output stays plain.
func (a *app) displayResponse(out io.Writer, reply string) {
	if a.cfg.UI.RenderMarkdown && isTerminalWriter(out) {
		fmt.Fprint(out, renderMarkdown(reply, GetTerminalWidth()-2))
		return
	}
	fmt.Fprintln(out, reply)
}
