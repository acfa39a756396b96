// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/quinn-tui/internal/config"
	"github.com/jeranaias/quinn-tui/internal/controller"
	"github.com/jeranaias/quinn-tui/internal/gateway"
	"github.com/jeranaias/quinn-tui/internal/ui/styles"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader is the line source for the REPL.
type lineReader interface {
	ReadInput(prompt string) (string, error)
	Close()
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history to file (0600).
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

func (a *app) newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-mode chat with history (no full-screen UI)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &chatSession{
				app:    a,
				ctrl:   a.newController(),
				in:     NewChatCLI(),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			}
			return s.run(cmd.Context())
		},
	}
}

// chatSession is one REPL run.
type chatSession struct {
	app    *app
	ctrl   *controller.Controller
	in     lineReader
	out    io.Writer
	errOut io.Writer
}

func (s *chatSession) run(ctx context.Context) error {
	defer s.in.Close()

	rctx, cancel := s.app.requestContext(ctx)
	err := s.ctrl.Init(rctx)
	cancel()

	s.printWelcome()
	if err != nil {
		s.printError(err)
	}

	for {
		input, err := s.in.ReadInput(PromptStyle.Render("quinn> "))
		if err != nil {
			// Ctrl+C, Ctrl+D and closed stdin all end the session.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				s.printError(err)
			}
			fmt.Fprintln(s.out)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}
		if strings.HasPrefix(input, "/") {
			if !s.handleSlashCommand(ctx, input) {
				return nil
			}
			continue
		}

		s.ask(ctx, input)
	}
}

func (s *chatSession) ask(ctx context.Context, input string) {
	rctx, cancel := s.app.requestContext(ctx)
	defer cancel()

	fmt.Fprintln(s.errOut, DimStyle.Render("Sending..."))
	if err := s.ctrl.Submit(rctx, input); err != nil {
		s.printError(err)
		return
	}
	if last, ok := s.ctrl.Conversation().Last(); ok {
		s.app.displayResponse(s.out, last.Text)
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands. It returns false to exit.
func (s *chatSession) handleSlashCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch command {
	case "/help", "/h", "/?", "/":
		s.printHelp()

	case "/rulebooks", "/rb":
		s.printRulebooks()

	case "/use":
		if arg == "" {
			s.printError(errors.New("usage: /use <rulebook>"))
			return true
		}
		s.ctrl.SelectRulebook(arg)
		fmt.Fprintf(s.out, "%s %s\n", InfoStyle.Render("[Rulebook]"), arg)

	case "/upload":
		if arg == "" {
			s.printError(errors.New("usage: /upload <path>"))
			return true
		}
		rctx, cancel := s.app.requestContext(ctx)
		defer cancel()
		if err := s.ctrl.PickPath(rctx, arg); err != nil {
			s.printError(err)
			return true
		}
		fmt.Fprintf(s.out, "%s uploaded, now using %s\n",
			SuccessStyle.Render("[OK]"), s.ctrl.Registry().Selection())

	case "/refresh":
		rctx, cancel := s.app.requestContext(ctx)
		defer cancel()
		if err := s.ctrl.RefreshRulebooks(rctx); err != nil {
			s.printError(err)
			return true
		}
		s.printRulebooks()

	case "/history":
		s.printHistory()

	case "/quit", "/q", "/exit":
		return false

	default:
		s.printError(fmt.Errorf("unknown command: %s (type /help for commands)", command))
	}
	return true
}

// =============================================================================
// OUTPUT
// =============================================================================

func (s *chatSession) printWelcome() {
	selection := s.ctrl.Registry().Selection()
	if selection == "" {
		selection = "backend default"
	}
	fmt.Fprintln(s.out, TitleStyle.Render("quinn chat"))
	fmt.Fprintf(s.out, "%s%s\n", RenderLabel("Backend:"), s.app.cfg.Backend.URL)
	fmt.Fprintf(s.out, "%s%s\n", RenderLabel("Rulebook:"), selection)
	fmt.Fprintln(s.out, DimStyle.Render("Type /help for commands, exit to quit."))
	fmt.Fprintln(s.out)
}

func (s *chatSession) printHelp() {
	fmt.Fprintln(s.out, SectionStyle.Render("Commands"))
	rows := [][2]string{
		{"/rulebooks", "List known rulebooks"},
		{"/use <name>", "Use a rulebook for the next questions"},
		{"/upload <path>", "Upload a rulebook and use it"},
		{"/refresh", "Reload the rulebook list"},
		{"/history", "Show this session's messages"},
		{"/quit", "Leave"},
	}
	for _, r := range rows {
		fmt.Fprintf(s.out, "  %s%s\n", RenderLabel(r[0]), r[1])
	}
}

func (s *chatSession) printRulebooks() {
	names := s.ctrl.Registry().Names()
	selection := s.ctrl.Registry().Selection()
	if len(names) == 0 {
		fmt.Fprintln(s.out, DimStyle.Render("No rulebooks uploaded yet."))
		return
	}
	for _, name := range names {
		marker := "   "
		if name == selection {
			marker = styles.StatusIndicators.Active
		}
		fmt.Fprintf(s.out, "%s %s\n", marker, name)
	}
}

func (s *chatSession) printHistory() {
	msgs := s.ctrl.Conversation().Snapshot()
	if len(msgs) == 0 {
		fmt.Fprintln(s.out, DimStyle.Render("No messages yet."))
		return
	}
	for _, m := range msgs {
		fmt.Fprintf(s.out, "%s %s\n", RenderLabel(m.Role.DisplayName()+":", 8), m.Preview(70))
	}
}

func (s *chatSession) printError(err error) {
	fmt.Fprintf(s.errOut, "%s %s\n", ErrorStyle.Render("[Error]"), gateway.Message(err))
}
