// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/quinn-tui/internal/controller"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StateChangedMsg:
		return m, tea.Batch(m.sync(), WaitForChange(m.changes))

	case InitDoneMsg:
		m.logResult("startup refresh", msg.Err)
		return m, m.sync()

	case SubmitDoneMsg:
		m.submitting = false
		m.logResult("submit", msg.Err)
		return m, m.sync()

	case UploadDoneMsg:
		m.logResult("upload", msg.Err, zap.String("path", msg.Path))
		if msg.Err == nil {
			m.showPanel = false
		}
		cmd := m.sync()
		m.cursorToSelection()
		return m, cmd

	case RefreshDoneMsg:
		m.logResult("refresh", msg.Err)
		return m, m.sync()
	}

	return m, nil
}

func (m Model) logResult(op string, err error, fields ...zap.Field) {
	if err == nil {
		m.log.Debug(op+" finished", fields...)
		return
	}
	if errors.Is(err, controller.ErrBusy) {
		m.log.Debug(op+" rejected while busy", fields...)
		return
	}
	m.log.Warn(op+" failed", append(fields, zap.Error(err))...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	if m.pathMode {
		return m.handlePathKey(msg)
	}
	if m.showPanel {
		return m.handlePanelKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.TogglePanel):
		m.showPanel = true
		m.cursorToSelection()
		return m, nil

	case key.Matches(msg, m.keyMap.DismissError):
		if m.snap.Err != "" {
			m.ctrl.DismissError()
			return m, m.sync()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit launches a chat submission unless one is already in flight or the
// input is blank.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.Busy() {
		return m, nil
	}
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.input.Reset()
	m.submitting = true
	m.viewport.GotoBottom()
	return m, tea.Batch(SubmitCmd(m.ctrl, text, m.timeout), m.spinner.Tick)
}

func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Close):
		m.showPanel = false
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.cursor < len(m.snap.Rulebooks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Select):
		if m.cursor < len(m.snap.Rulebooks) {
			m.ctrl.SelectRulebook(m.snap.Rulebooks[m.cursor])
			m.showPanel = false
			return m, m.sync()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Refresh):
		return m, RefreshCmd(m.ctrl, m.timeout)

	case key.Matches(msg, m.keyMap.Upload):
		m.pathMode = true
		m.pathInput.Reset()
		m.input.Blur()
		return m, m.pathInput.Focus()
	}
	return m, nil
}

func (m Model) handlePathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.pathMode = false
		m.pathInput.Blur()
		return m, m.input.Focus()

	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathInput.Value())
		m.pathMode = false
		m.pathInput.Blur()
		focus := m.input.Focus()
		if path == "" {
			return m, focus
		}
		return m, tea.Batch(focus, UploadCmd(m.ctrl, path, m.timeout))
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}
