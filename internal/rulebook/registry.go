// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rulebook

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/jeranaias/quinn-tui/internal/gateway"
)

// DefaultPreferred is the substring the default-selection policy looks for.
const DefaultPreferred = "rising_sun"

// Gateway is the subset of the backend client the registry needs.
type Gateway interface {
	ListRulebooks(ctx context.Context) ([]string, error)
	UploadRulebook(ctx context.Context, content []byte, filename string) (gateway.UploadResult, error)
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the known rulebook names and the current selection.
// It is safe for concurrent use; the lock is never held across a
// gateway call.
type Registry struct {
	gw        Gateway
	preferred string
	log       *zap.Logger

	mu        sync.RWMutex
	names     []string
	selection string
}

// Option configures a Registry.
type Option func(*Registry)

// WithPreferred overrides the substring used by the default-selection policy.
// An empty value keeps DefaultPreferred.
func WithPreferred(substr string) Option {
	return func(r *Registry) {
		if substr != "" {
			r.preferred = substr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry backed by gw.
func NewRegistry(gw Gateway, opts ...Option) *Registry {
	r := &Registry{
		gw:        gw,
		preferred: DefaultPreferred,
		log:       zap.NewNop(),
		names:     []string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.log = r.log.With(zap.String("component", "rulebook"))
	return r
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Names returns a copy of the known names in backend order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Selection returns the selected rulebook, or "" when none is set.
func (r *Registry) Selection() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selection
}

// Contains reports whether name is in the last fetched set.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Refresh replaces the known names with the backend's current list and, if
// nothing is selected, applies the default-selection policy. On failure the
// registry is left untouched.
func (r *Registry) Refresh(ctx context.Context) error {
	names, err := r.gw.ListRulebooks(ctx)
	if err != nil {
		r.log.Warn("refresh failed", zap.Error(err))
		return fmt.Errorf("failed to load rulebooks: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = make([]string, len(names))
	copy(r.names, names)

	if r.selection == "" {
		r.selection = DefaultSelection(names, r.preferred)
	}

	r.log.Debug("refreshed",
		zap.Int("count", len(names)),
		zap.String("selection", r.selection))
	return nil
}

// SetSelection overwrites the selection. The name is not checked against
// the known set.
func (r *Registry) SetSelection(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selection = name
}

// UploadAndRegister uploads a document, re-syncs the name list, and then
// selects the backend-confirmed filename if one was returned. The explicit
// selection is applied after the refresh so the default policy cannot
// override it. The accepted filename is returned even when the follow-up
// refresh fails.
func (r *Registry) UploadAndRegister(ctx context.Context, content []byte, filename string) (string, error) {
	result, err := r.gw.UploadRulebook(ctx, content, filename)
	if err != nil {
		r.log.Warn("upload failed", zap.String("filename", filename), zap.Error(err))
		return "", fmt.Errorf("upload failed: %w", err)
	}

	r.log.Info("uploaded",
		zap.String("filename", filename),
		zap.String("accepted", result.Filename),
		zap.Int("bytes", len(content)))

	refreshErr := r.Refresh(ctx)

	if result.Filename != "" {
		r.SetSelection(result.Filename)
	}
	return result.Filename, refreshErr
}

// =============================================================================
// SELECTION POLICY
// =============================================================================

// DefaultSelection picks the first name containing preferred
// (case-insensitive), else the first name, else "".
func DefaultSelection(names []string, preferred string) string {
	if len(names) == 0 {
		return ""
	}
	if preferred != "" {
		fold := cases.Fold()
		want := fold.String(preferred)
		for _, name := range names {
			if strings.Contains(fold.String(name), want) {
				return name
			}
		}
	}
	return names[0]
}
