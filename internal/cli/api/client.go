package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"AtlasAdmin/internal/cli/repo"
)

// Client issues requests against the platform API. It attaches the persisted
// bearer token to every call and owns the uniform 401 handling: the token and
// session state are cleared once, the invalidation hook fires, and the
// triggering call still returns an error so its caller can report feedback.
//
// Requests are not retried and carry no client-side timeout by default; pass
// a custom *http.Client to change that.
type Client struct {
	base   string
	http   *http.Client
	tokens repo.TokenStore
	states repo.SessionStore
	log    *zap.Logger

	onUnauthorized func()
}

// Option конфигурирует клиента.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(base string, tokens repo.TokenStore, states repo.SessionStore, opts ...Option) *Client {
	c := &Client{
		base:   base,
		http:   http.DefaultClient,
		tokens: tokens,
		states: states,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnUnauthorized registers the hook invoked after a 401 cleared the
// persisted auth state. The session layer uses it to own the "go back to
// login" behaviour; the transport never prints or navigates itself.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// GetJSON issues a GET and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out
// (skipped when out is nil).
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, http.MethodPost, path, "application/json", b)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PatchJSON issues a PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, http.MethodPatch, path, "application/json", b)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Post sends a pre-encoded body (JSON or multipart) as a POST.
func (c *Client) Post(ctx context.Context, path, contentType string, body []byte) error {
	_, err := c.do(ctx, http.MethodPost, path, contentType, body)
	return err
}

// Patch sends a pre-encoded body (JSON or multipart) as a PATCH.
func (c *Client) Patch(ctx context.Context, path, contentType string, body []byte) error {
	_, err := c.do(ctx, http.MethodPatch, path, contentType, body)
	return err
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, "", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok, err := c.tokens.Load(); err == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Message: serverMessage(respBody)}
	}
	return respBody, nil
}

// invalidate zeroes the persisted auth state so the authenticated flag and
// the stored token never diverge past the failing request.
func (c *Client) invalidate() {
	_ = c.tokens.Clear()
	if c.states != nil {
		_ = c.states.Clear()
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
