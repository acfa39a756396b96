// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failure body is kept for the error message.
const maxErrorBody = 64 * 1024

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the gateway client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// HTTPClient overrides the transport (tests, proxies).
	HTTPClient *http.Client

	// Logger receives debug records for every round trip.
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues the backend's remote operations.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client for the given base URL with default settings.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		log:        log.With(zap.String("component", "gateway")),
	}
}

// BaseURL returns the backend base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// RULEBOOK OPERATIONS
// =============================================================================

// ListRulebooks returns the rulebook names known to the backend, in the
// order the backend returned them.
func (c *Client) ListRulebooks(ctx context.Context) ([]string, error) {
	const op = OpListRulebooks

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathRulebooks, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	var names []string
	if err := c.do(req, op, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// UploadRulebook sends a document to the backend as a single multipart
// field named "file". The content is not inspected; the backend decides
// what it accepts.
func (c *Client) UploadRulebook(ctx context.Context, content []byte, filename string) (UploadResult, error) {
	const op = OpUploadRulebook

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(uploadField, filename)
	if err != nil {
		return UploadResult{}, &TransportError{Op: op, Cause: err}
	}
	if _, err := part.Write(content); err != nil {
		return UploadResult{}, &TransportError{Op: op, Cause: err}
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, &TransportError{Op: op, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathRulebooks, &body)
	if err != nil {
		return UploadResult{}, &TransportError{Op: op, Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var result UploadResult
	if err := c.do(req, op, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// SendChatMessage asks the backend a question. An empty rulebook leaves the
// choice to the backend and is not sent at all.
func (c *Client) SendChatMessage(ctx context.Context, text, rulebook string) (ChatReply, error) {
	const op = OpSendChat

	payload, err := json.Marshal(chatRequest{Message: text, Rulebook: rulebook})
	if err != nil {
		return ChatReply{}, &TransportError{Op: op, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathChat, bytes.NewReader(payload))
	if err != nil {
		return ChatReply{}, &TransportError{Op: op, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var reply ChatReply
	if err := c.do(req, op, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Health probes GET /api/health.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	const op = OpHealth

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathHealth, nil)
	if err != nil {
		return HealthStatus{}, &TransportError{Op: op, Cause: err}
	}

	var status HealthStatus
	if err := c.do(req, op, &status); err != nil {
		return HealthStatus{}, err
	}
	if !status.OK() {
		return status, fmt.Errorf("backend reported status %q", status.Status)
	}
	return status, nil
}

// =============================================================================
// ROUND TRIP
// =============================================================================

// do performs one round trip and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("op", op),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return &TransportError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	c.log.Debug("response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RemoteError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
