// Package a2a implements the agent invocation wire contract: a single
// synchronous HTTP call carrying a {data} payload and returning the agent's
// raw response object. The same client is used by the coordinator's executor
// and by agents invoking each other directly, so coordinator-driven calls and
// direct agent-to-agent calls compose under one contract.
package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// DefaultCallTimeout bounds a single tool invocation. It is a configurable
// constant, not a protocol requirement.
const DefaultCallTimeout = 5 * time.Second

// Options configures a Client.
type Options struct {
	// HTTPClient performs the underlying requests. Defaults to a fresh
	// http.Client so tests can inject transports.
	HTTPClient *http.Client
	// Timeout bounds each call. On expiry the call is treated identically to
	// a network failure.
	Timeout time.Duration
	// Logger receives call-level diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Client performs tool invocations and coordinator registrations over HTTP.
// A Client has no mutable state after construction and is safe for
// concurrent use.
type Client struct {
	client  *http.Client
	timeout time.Duration
	logger  logging.Logger
}

// Interface compliance (compile-time assertion)
var _ core.ToolCaller = (*Client)(nil)

// NewClient constructs a Client with optional overrides.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: &http.Client{},
		Timeout:    DefaultCallTimeout,
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: opts.HTTPClient, timeout: opts.Timeout, logger: opts.Logger}
}

// CallTool posts {data} to baseURL+path and decodes the agent's response
// payload. Network errors, timeouts and non-2xx statuses are all returned as
// errors; interpreting the payload's own success flag is the caller's
// concern.
func (c *Client) CallTool(ctx context.Context, baseURL, path string, data any) (core.Payload, error) {
	body, err := json.Marshal(core.ToolRequest{Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode tool request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := strings.TrimRight(baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build tool request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("tool call failed", "url", url, "duration", time.Since(start), "error", err)
		return nil, fmt.Errorf("call %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("call %s: unexpected status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload core.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", url, err)
	}

	c.logger.Debug("tool call completed", "url", url, "duration", time.Since(start))
	return payload, nil
}

// Register announces an agent descriptor to the coordinator's /register
// endpoint. Callers treat failure as non-fatal: an unregistered agent keeps
// serving its tool endpoints, it is merely undiscoverable via /agents.
func (c *Client) Register(ctx context.Context, coordinatorURL string, desc core.AgentDescriptor) error {
	body, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := strings.TrimRight(coordinatorURL, "/") + "/register"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("register with %s: %w", coordinatorURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("register with %s: unexpected status %d: %s", coordinatorURL, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return nil
}
