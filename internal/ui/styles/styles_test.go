// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestApplyMode(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(true)

	ApplyMode("light")
	assert.False(t, lipgloss.HasDarkBackground())

	ApplyMode("DARK")
	assert.True(t, lipgloss.HasDarkBackground())

	ApplyMode("auto")
	assert.True(t, lipgloss.HasDarkBackground(), "auto leaves the current setting alone")
}

func TestNewTheme_RendersText(t *testing.T) {
	theme := NewTheme()
	assert.Contains(t, theme.ErrorLine.Render("Error: boom"), "Error: boom")
	assert.Contains(t, theme.HeaderRulebook.Render("rising_sun"), "rising_sun")
}

func TestTheme_GetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 30)
		assert.Equal(t, tt.want, theme.GetLayoutMode(), "width %d", tt.width)
	}
}

func TestSpinnerConfig(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, LineSpinner.Duration())
	assert.Equal(t, 100*time.Millisecond, SpinnerConfig{}.Duration())

	s := DotsSpinner.Bubbles()
	assert.Equal(t, DotsSpinner.Frames, s.Frames)
	assert.Equal(t, time.Second/6, s.FPS)

	s.Frames[0] = "changed"
	assert.NotEqual(t, "changed", DotsSpinner.Frames[0], "frames are copied")
}
