// Package backend talks to the marketplace REST backend that owns room types,
// availability and reservations.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	ErrNotConfigured = errors.New("backend: client not configured")
	ErrNotFound      = errors.New("backend: not found")
	ErrUnauthorized  = errors.New("backend: unauthorized")
	ErrForbidden     = errors.New("backend: forbidden")
	ErrConflict      = errors.New("backend: conflict")
	ErrUpstream      = errors.New("backend: upstream error")
)

const errorSnippetLimit = 512

// Client is a thin JSON client; identical concurrent reads share one request.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Logger  *slog.Logger

	group singleflight.Group
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Logger:  logger,
	}
}

// StatusError keeps the upstream status and body snippet for logs.
type StatusError struct {
	Status int
	Body   string
	kind   error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.kind.Error(), e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return e.kind }

func statusKind(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrUpstream
	}
}

// shared coalesces concurrent calls with the same key. The shared call runs
// detached from any one caller's cancellation and is bounded by the HTTP client
// timeout; each caller still stops waiting when its own ctx is done.
func (c *Client) shared(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	if c == nil || c.HTTP == nil || c.BaseURL == "" {
		return ErrNotConfigured
	}
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logError("backend request failed", method, path, err)
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetLimit))
		err := &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet)), kind: statusKind(resp.StatusCode)}
		if resp.StatusCode != http.StatusNotFound {
			c.logError("backend returned error", method, path, err)
		}
		return err
	}
	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if err := decodeEnvelope(raw, out); err != nil {
		c.logError("backend decode failed", method, path, err)
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}

// decodeEnvelope accepts both bare payloads and {"data": ...} envelopes.
func decodeEnvelope(raw []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) logError(msg, method, path string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(msg, "method", method, "path", path, "error", err)
}

func escape(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
