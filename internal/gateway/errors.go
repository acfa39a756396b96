// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Operation names carried in RemoteError.Op and TransportError.Op.
const (
	OpListRulebooks  = "list rulebooks"
	OpUploadRulebook = "upload rulebook"
	OpSendChat       = "send chat message"
	OpHealth         = "health check"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// RemoteError is returned when the backend responds with a non-success status.
// Body holds the raw response text, used verbatim as the error detail.
type RemoteError struct {
	Op     string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	text := http.StatusText(e.Status)
	body := strings.TrimSpace(e.Body)
	switch {
	case text == "" && body == "":
		return fmt.Sprintf("%d", e.Status)
	case text == "":
		return fmt.Sprintf("%d: %s", e.Status, body)
	case body == "":
		return fmt.Sprintf("%d %s", e.Status, text)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, text, body)
}

// TransportError is returned when no usable response was obtained: the
// request could not be sent, the connection failed, or the success body
// could not be decoded.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string {
	if e.Cause == nil {
		return e.Op + " failed"
	}
	return e.Op + ": " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRemote reports whether err is (or wraps) a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status carried by a RemoteError, or 0.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// Message collapses any error into the single human-readable line shown to
// the user. Rulebook list and upload failures show the backend's body
// as-is; other remote errors render as "<status> <text>: <body>".
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		if re.Op == OpListRulebooks || re.Op == OpUploadRulebook {
			if body := strings.TrimSpace(re.Body); body != "" {
				return body
			}
		}
		return re.Error()
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "request failed"
}
