// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

// =============================================================================
// ENDPOINTS
// =============================================================================

const (
	pathRulebooks = "/api/rulebooks"
	pathChat      = "/api/chat"
	pathHealth    = "/api/health"

	// uploadField is the multipart field carrying the rulebook document.
	uploadField = "file"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// chatRequest is the body of POST /api/chat. Rulebook is omitted entirely
// when no selection is set.
type chatRequest struct {
	Message  string `json:"message"`
	Rulebook string `json:"rulebook,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatReply is the decoded response of POST /api/chat.
// A response without a reply field decodes to an empty Text.
type ChatReply struct {
	Text string `json:"reply"`
}

// UploadResult is the decoded response of POST /api/rulebooks.
// Filename is the backend-confirmed name and may differ from the one
// submitted; it is empty when the backend did not report one.
type UploadResult struct {
	Filename string `json:"filename"`
}

// HealthStatus is the decoded response of GET /api/health.
type HealthStatus struct {
	Status string `json:"status"`
}

// OK reports whether the backend declared itself healthy.
func (h HealthStatus) OK() bool {
	return h.Status == "ok"
}
