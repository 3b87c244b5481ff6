package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "cvp/internal/platform/errors"
	"cvp/internal/platform/id"
	"cvp/internal/platform/logging"
)

// Error is a non-2xx answer from the platform API. Message is the text the
// server put in its `error` or `message` field, or the raw body.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: remote error %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrInvalidInput
	default:
		return nil
	}
}

// Message returns the server text for API errors and the plain error text
// otherwise. User facing notices show this verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	IDs        id.Generator
	Logger     *slog.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	ids     id.Generator
	logger  *slog.Logger

	mu             sync.RWMutex
	tokens         func() string
	onUnauthorized func()
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ids := opts.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		ids:     ids,
		logger:  logging.OrDiscard(opts.Logger),
	}
}

// Bind attaches the session. It is separate from New because the session
// usecase itself talks through this client.
func (c *Client) Bind(tokens func() string, onUnauthorized func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = tokens
	c.onUnauthorized = onUnauthorized
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Do(ctx context.Context, method, path string, payload any, target any) error {
	c.mu.RLock()
	tokens, onUnauthorized := c.tokens, c.onUnauthorized
	c.mu.RUnlock()

	token := ""
	if tokens != nil {
		token = tokens()
	}
	return c.do(ctx, method, path, token, payload, target, onUnauthorized)
}

// DoWithToken authenticates with an explicit token and skips the
// unauthorized hook. The startup probe uses it before the session is trusted.
func (c *Client) DoWithToken(ctx context.Context, method, path, token string, payload any, target any) error {
	return c.do(ctx, method, path, token, payload, target, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any, target any, onUnauthorized func()) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s %s: encode payload: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.ids.New())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: http request: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api call", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
		if resp.StatusCode == http.StatusUnauthorized && onUnauthorized != nil {
			onUnauthorized()
		}
		return apiErr
	}
	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// An empty body leaves target untouched.
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// Health probes GET /health. Callers fire it and forget; the outcome is only logged.
func (c *Client) Health(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/health", "", nil, nil, nil)
	if err != nil {
		c.logger.Warn("health probe failed", "err", err)
		return err
	}
	c.logger.Debug("health probe ok")
	return nil
}

func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return fallback
	}
	return text
}
