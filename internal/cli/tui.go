// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/quinn-tui/internal/ui/chat"
	"github.com/jeranaias/quinn-tui/internal/ui/styles"
)

// runTUI starts the full-screen chat interface.
func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	if err := RequiresTTY("start the terminal UI"); err != nil {
		return err
	}

	styles.ApplyMode(a.cfg.UI.Theme)
	theme := styles.NewTheme()

	m := chat.New(a.newController(), theme, chat.Options{
		InitialPrompt:  a.cfg.UI.InitialPrompt,
		RenderMarkdown: a.cfg.UI.RenderMarkdown,
		RequestTimeout: a.cfg.Backend.RequestTimeout.Std(),
		Logger:         a.log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err := p.Run()
	return err
}
