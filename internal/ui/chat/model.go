// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/quinn-tui/internal/controller"
	"github.com/jeranaias/quinn-tui/internal/ui/styles"
)

// fixedRows is the vertical space taken by everything except the
// transcript: header, input border and line, status line, error line,
// key hints.
const fixedRows = 6

// Options configures the chat screen.
type Options struct {
	// InitialPrompt pre-fills the input line.
	InitialPrompt string
	// RenderMarkdown renders assistant replies with glamour.
	RenderMarkdown bool
	// RequestTimeout bounds each controller call. Zero means no bound.
	RequestTimeout time.Duration
	// Logger receives UI-level events. Nil disables logging.
	Logger *zap.Logger
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctrl    *controller.Controller
	changes chan struct{}
	theme   *styles.Theme
	keyMap  KeyMap
	log     *zap.Logger
	timeout time.Duration

	// Dimensions
	width  int
	height int

	// Last state read from the controller
	snap controller.Snapshot

	// submitting is set when a submission is launched and cleared only by
	// its SubmitDoneMsg, so a sync before the controller marks the request
	// pending cannot re-open the input.
	submitting bool

	// UI Components
	viewport  viewport.Model
	input     textinput.Model
	pathInput textinput.Model
	spinner   spinner.Model
	help      help.Model
	markdown  *markdownRenderer

	// Rulebook panel
	showPanel bool
	pathMode  bool
	cursor    int
}

// New creates a chat model bound to ctrl.
func New(ctrl *controller.Controller, theme *styles.Theme, opts Options) Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.Placeholder = "Ask a rules question..."
	ti.CharLimit = 4096
	ti.SetValue(opts.InitialPrompt)
	ti.Focus()

	pi := textinput.New()
	pi.Prompt = "File: "
	pi.PromptStyle = theme.InputPrompt
	pi.Placeholder = "/path/to/rulebook.pdf"
	pi.CharLimit = 1024

	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Bubbles()
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	// Buffered so controller goroutines never block on the UI.
	changes := make(chan struct{}, 1)
	ctrl.OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	var md *markdownRenderer
	if opts.RenderMarkdown {
		md = newMarkdownRenderer(theme.IsDark)
	}

	return Model{
		ctrl:      ctrl,
		changes:   changes,
		theme:     theme,
		keyMap:    DefaultKeyMap(),
		log:       log.With(zap.String("component", "tui")),
		timeout:   opts.RequestTimeout,
		snap:      ctrl.State(),
		viewport:  vp,
		input:     ti,
		pathInput: pi,
		spinner:   sp,
		help:      help.New(),
		markdown:  md,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts cursor blinking, the startup refresh and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		InitCmd(m.ctrl, m.timeout),
		WaitForChange(m.changes),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Snapshot returns the state last read from the controller.
func (m Model) Snapshot() controller.Snapshot {
	return m.snap
}

// InputValue returns the current input line.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Busy reports whether a submission is in flight.
func (m Model) Busy() bool {
	return m.submitting || m.snap.Pending
}

// PanelOpen reports whether the rulebook panel is visible.
func (m Model) PanelOpen() bool {
	return m.showPanel
}

// =============================================================================
// STATE SYNC
// =============================================================================

// sync re-reads controller state, redraws the transcript and pins it to the
// bottom when the conversation grew or the pending flag flipped.
func (m *Model) sync() tea.Cmd {
	prev := m.snap
	m.snap = m.ctrl.State()

	if m.cursor >= len(m.snap.Rulebooks) {
		m.cursor = len(m.snap.Rulebooks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	m.viewport.SetContent(m.renderTranscript())
	if len(m.snap.Messages) != len(prev.Messages) || m.snap.Pending != prev.Pending {
		m.viewport.GotoBottom()
	}

	if m.snap.Pending && !prev.Pending && !m.submitting {
		return m.spinner.Tick
	}
	return nil
}

// layout sizes the viewport and inputs from the window dimensions.
func (m *Model) layout() {
	m.theme.SetSize(m.width, m.height)

	vpHeight := m.height - fixedRows
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight

	m.input.Width = max(10, m.width-4)
	m.pathInput.Width = max(10, m.width-12)
	if m.markdown != nil {
		m.markdown.SetWidth(m.width - 4)
	}
	m.viewport.SetContent(m.renderTranscript())
}

// cursorToSelection puts the panel cursor on the selected rulebook.
func (m *Model) cursorToSelection() {
	m.cursor = 0
	for i, name := range m.snap.Rulebooks {
		if name == m.snap.Selection {
			m.cursor = i
			return
		}
	}
}
