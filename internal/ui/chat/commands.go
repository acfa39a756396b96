// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/quinn-tui/internal/controller"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// requestContext returns a context bounded by timeout. Zero means no bound.
func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// InitCmd runs the controller's startup refresh.
func InitCmd(ctrl *controller.Controller, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return InitDoneMsg{Err: ctrl.Init(ctx)}
	}
}

// SubmitCmd sends one chat message.
func SubmitCmd(ctrl *controller.Controller, text string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return SubmitDoneMsg{Err: ctrl.Submit(ctx, text)}
	}
}

// UploadCmd uploads the file at path and selects it.
func UploadCmd(ctrl *controller.Controller, path string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return UploadDoneMsg{Path: path, Err: ctrl.PickPath(ctx, path)}
	}
}

// RefreshCmd re-syncs the rulebook list.
func RefreshCmd(ctrl *controller.Controller, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return RefreshDoneMsg{Err: ctrl.RefreshRulebooks(ctx)}
	}
}

// WaitForChange blocks until the controller signals a change on ch. It
// returns nil once ch is closed.
func WaitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StateChangedMsg{}
	}
}
