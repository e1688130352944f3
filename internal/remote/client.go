// Package remote implements the typed client for the NGO Connect service. Every operation
// of the service contract is one method; each call performs exactly one HTTP request,
// attaches a fresh X-Request-ID and the actor identity carried by the context, and
// normalizes every failure into *APIError with a per-operation fallback message.
//
// The client never retries. Callers own retry and cancellation policy through ctx.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 8 << 20

// Client talks to the remote service over HTTP
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ValidateBaseURL checks that a service URL is absolute http(s) with a host
func ValidateBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("%w: cannot be empty", ErrInvalidBaseURL)
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: must use http or https scheme", ErrInvalidBaseURL)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%w: must have a host", ErrInvalidBaseURL)
	}

	return nil
}

// errorBody is the uniform error envelope of the service
type errorBody struct {
	Error string `json:"error"`
}

// do performs one request. body (if non-nil) is sent as JSON; out (if non-nil) receives
// the decoded success body. fallback is the message used when the service gives none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return newAPIError(KindTransport, 0, "", fallback, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return newAPIError(KindTransport, 0, "", fallback, fmt.Errorf("create request: %w", err))
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor, ok := ActorFrom(ctx); ok {
		req.Header.Set(ActorEmailHeader, actor.Email)
		req.Header.Set(ActorRoleHeader, string(actor.Role))
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		slog.Debug("remote call failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return newAPIError(KindTransport, 0, "", fallback, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return newAPIError(KindTransport, resp.StatusCode, "", fallback, fmt.Errorf("read response: %w", err))
	}

	slog.Debug("remote call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return newAPIError(KindRejected, resp.StatusCode, eb.Error, fallback, nil)
	}

	if out == nil {
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if _, ok := out.(*Confirmation); ok {
			return nil
		}
		return newAPIError(KindMalformed, resp.StatusCode, "", fallback, fmt.Errorf("empty response body"))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return newAPIError(KindMalformed, resp.StatusCode, "", fallback, fmt.Errorf("decode response: %w", err))
	}

	return nil
}

// segment escapes one path segment
func segment(s string) string {
	return url.PathEscape(s)
}
