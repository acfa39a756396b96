// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/quinn-tui/internal/model"
	"github.com/jeranaias/quinn-tui/internal/ui/styles"
)

// View renders the chat screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.showPanel {
		b.WriteString(m.renderPanel())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderPending())
	b.WriteString("\n")
	b.WriteString(m.renderError())
	b.WriteString("\n")
	b.WriteString(m.renderHints())

	return b.String()
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	brand := m.theme.HeaderBrand.Render("Quinn")

	var rulebook string
	if m.snap.Selection == "" {
		rulebook = m.theme.HeaderNone.Render("no rulebook selected")
	} else {
		limit := m.width - 24
		if limit < 12 {
			limit = 12
		}
		name := runewidth.Truncate(m.snap.Selection, limit, "...")
		rulebook = m.theme.HeaderRulebook.Render(name)
	}

	line := brand + "  rulebook: " + rulebook
	if m.width > 0 {
		return m.theme.Header.Width(m.width).Render(line)
	}
	return m.theme.Header.Render(line)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscript() string {
	if len(m.snap.Messages) == 0 {
		return m.theme.EmptyHint.Render("Ask anything about the selected rulebook. Press ctrl+b to pick or upload one.")
	}

	bodyWidth := m.width - 4
	if bodyWidth < 20 {
		bodyWidth = 76
	}

	parts := make([]string, 0, len(m.snap.Messages))
	for _, msg := range m.snap.Messages {
		parts = append(parts, m.renderMessage(msg, bodyWidth))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderMessage(msg model.Message, width int) string {
	stamp := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch msg.Role {
	case model.RoleUser:
		label := m.theme.UserLabel.Render(msg.Role.DisplayName()) + " " + stamp
		body := m.theme.UserBubble.Width(width).Render(msg.Text)
		return label + "\n" + body

	default:
		label := m.theme.AssistantLabel.Render(msg.Role.DisplayName()) + " " + stamp
		text := msg.Text
		if strings.TrimSpace(text) == "" {
			return label + "\n" + m.theme.Timestamp.Render("(empty reply)")
		}
		if m.markdown != nil {
			return label + "\n" + m.markdown.Render(msg.ID, text)
		}
		return label + "\n" + m.theme.AssistantBubble.Width(width).Render(text)
	}
}

// =============================================================================
// RULEBOOK PANEL
// =============================================================================

func (m Model) renderPanel() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render(fmt.Sprintf("Rulebooks (%d)", len(m.snap.Rulebooks))))
	b.WriteString("\n")

	if len(m.snap.Rulebooks) == 0 {
		b.WriteString(m.theme.HeaderNone.Render("No rulebooks uploaded yet. Press u to upload one."))
		b.WriteString("\n")
	}

	nameWidth := m.width - 12
	if nameWidth < 16 {
		nameWidth = 40
	}
	for i, name := range m.snap.Rulebooks {
		marker := "   "
		if name == m.snap.Selection {
			marker = styles.StatusIndicators.Active
		}
		row := fmt.Sprintf("%s %s", marker, runewidth.Truncate(name, nameWidth, "..."))

		style := m.theme.PanelItem
		if name == m.snap.Selection {
			style = m.theme.PanelSelected
		}
		if i == m.cursor {
			style = m.theme.PanelCursor
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}

	if m.pathMode {
		b.WriteString("\n")
		b.WriteString(m.pathInput.View())
		b.WriteString("\n")
	}

	panel := m.theme.Panel
	if m.width > 4 {
		panel = panel.Width(m.width - 2)
	}
	return lipgloss.PlaceVertical(m.viewport.Height, lipgloss.Top, panel.Render(strings.TrimRight(b.String(), "\n")))
}

// =============================================================================
// STATUS LINES
// =============================================================================

func (m Model) renderPending() string {
	if !m.Busy() {
		return ""
	}
	return m.spinner.View() + " " + m.theme.PendingText.Render("Sending...")
}

func (m Model) renderError() string {
	if m.snap.Err == "" {
		return ""
	}
	return m.theme.ErrorLine.Render("Error: " + m.snap.Err)
}

func (m Model) renderHints() string {
	bindings := m.keyMap.ShortHelp()
	if m.showPanel {
		bindings = m.keyMap.PanelHelp()
	}
	hints := m.help.ShortHelpView(bindings)
	if m.width > 0 {
		return m.theme.StatusBar.Width(m.width).Render(hints)
	}
	return m.theme.StatusBar.Render(hints)
}
