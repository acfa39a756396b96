// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/quinn-tui/internal/gateway"
	"github.com/jeranaias/quinn-tui/internal/model"
	"github.com/jeranaias/quinn-tui/internal/rulebook"
)

// ErrBusy is returned by Submit while another submission is outstanding.
var ErrBusy = errors.New("a message is already being sent")

// Gateway is the subset of the backend client the controller needs.
type Gateway interface {
	rulebook.Gateway
	SendChatMessage(ctx context.Context, text, rulebook string) (gateway.ChatReply, error)
}

// =============================================================================
// STATE SNAPSHOT
// =============================================================================

// Snapshot is a read-only view of everything the presentation layer renders.
type Snapshot struct {
	Messages  []model.Message
	Rulebooks []string
	Selection string
	Pending   bool
	Err       string
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller sequences user actions. It is safe for concurrent use; each
// state holder guards its own fields and no lock is held during a
// gateway call.
type Controller struct {
	gw       Gateway
	conv     *model.Conversation
	registry *rulebook.Registry
	log      *zap.Logger

	mu       sync.Mutex
	pending  bool
	errText  string
	onChange []func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRegistry replaces the default registry (e.g. one with a custom
// preferred rulebook).
func WithRegistry(reg *rulebook.Registry) Option {
	return func(c *Controller) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// New creates a controller with an empty conversation and registry.
func New(gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		gw:   gw,
		conv: model.NewConversation(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.registry == nil {
		c.registry = rulebook.NewRegistry(gw, rulebook.WithLogger(c.log))
	}
	c.log = c.log.With(zap.String("component", "controller"))
	return c
}

// Conversation returns the conversation store.
func (c *Controller) Conversation() *model.Conversation {
	return c.conv
}

// Registry returns the rulebook registry.
func (c *Controller) Registry() *rulebook.Registry {
	return c.registry
}

// OnChange registers fn to be called after every state mutation. Callbacks
// run on the goroutine that performed the mutation and must not block.
func (c *Controller) OnChange(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Pending reports whether a chat submission is outstanding.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Err returns the current error message, or "".
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errText
}

// State returns a consistent-enough view for rendering. Each holder is read
// under its own lock.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	pending, errText := c.pending, c.errText
	c.mu.Unlock()

	return Snapshot{
		Messages:  c.conv.Snapshot(),
		Rulebooks: c.registry.Names(),
		Selection: c.registry.Selection(),
		Pending:   pending,
		Err:       errText,
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

// Init performs the startup refresh. Call it once after construction.
func (c *Controller) Init(ctx context.Context) error {
	return c.RefreshRulebooks(ctx)
}

// Submit sends one chat message. Blank input is ignored and returns nil.
// The user message is appended before the network call so it survives a
// failure; a failed exchange leaves it without a reply.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrBusy
	}
	c.pending = true
	c.errText = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
		c.notify()
	}()

	c.conv.AppendUser(text)
	c.notify()

	selection := c.registry.Selection()
	c.log.Debug("submitting",
		zap.Int("chars", len(text)),
		zap.String("rulebook", selection))

	reply, err := c.gw.SendChatMessage(ctx, text, selection)
	if err != nil {
		c.log.Warn("chat failed", zap.Error(err))
		c.setErr(err)
		return fmt.Errorf("chat failed: %w", err)
	}

	c.conv.AppendAssistant(reply.Text)
	return nil
}

// PickFile uploads a document and makes the accepted filename the
// selection. It does not touch the conversation or the pending flag.
func (c *Controller) PickFile(ctx context.Context, content []byte, filename string) error {
	accepted, err := c.registry.UploadAndRegister(ctx, content, filename)
	if err != nil {
		c.setErr(err)
		return err
	}
	c.log.Info("rulebook registered", zap.String("filename", accepted))
	c.clearErr()
	return nil
}

// PickPath reads a file from disk and uploads it under its base name.
func (c *Controller) PickPath(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("upload failed: %w", err)
		c.setErr(err)
		return err
	}
	return c.PickFile(ctx, content, filepath.Base(path))
}

// RefreshRulebooks re-syncs the rulebook list.
func (c *Controller) RefreshRulebooks(ctx context.Context) error {
	if err := c.registry.Refresh(ctx); err != nil {
		c.setErr(err)
		return err
	}
	c.clearErr()
	return nil
}

// SelectRulebook sets the selection used by future submissions.
func (c *Controller) SelectRulebook(name string) {
	c.registry.SetSelection(name)
	c.notify()
}

// DismissError clears the error state without any other effect.
func (c *Controller) DismissError() {
	c.clearErr()
}

// =============================================================================
// INTERNAL
// =============================================================================

func (c *Controller) setErr(err error) {
	c.mu.Lock()
	c.errText = gateway.Message(err)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) clearErr() {
	c.mu.Lock()
	c.errText = ""
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fns := make([]func(), len(c.onChange))
	copy(fns, c.onChange)
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
