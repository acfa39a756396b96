// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the standardized --json output format.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is when the response was generated (RFC3339, UTC)
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the response, indented, to w.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// AskData is returned by "ask --json".
type AskData struct {
	Question string `json:"question"`
	Rulebook string `json:"rulebook"`
	Reply    string `json:"reply"`
}

// RulebookListData is returned by "rulebooks list --json".
type RulebookListData struct {
	Rulebooks []string `json:"rulebooks"`
	Selection string   `json:"selection"`
}

// StatusData is returned by "status --json".
type StatusData struct {
	Backend     string `json:"backend"`
	Healthy     bool   `json:"healthy"`
	Status      string `json:"status,omitempty"`
	HealthError string `json:"health_error,omitempty"`
	Rulebooks   int    `json:"rulebooks"`
	ListError   string `json:"list_error,omitempty"`
	Selection   string `json:"selection"`
}

// VersionData is returned by "version --json".
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}
