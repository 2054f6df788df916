// Package apiclient talks to the Gymlogs HTTP API. Client is the shared
// request helper; AuthClient, ExerciseClient and WorkoutPlanClient are the
// per-resource clients built on top of it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/priyankaj04/Gymlogs/internal/wire"
)

const maxErrorBodyBytes = 1 << 20

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token of the current session, or "" when
// there is none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	baseURL    string
	httpClient Doer
	tokens     TokenSource
}

type Option func(*Client)

func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// sessionToken returns the stored token, or "" when there is no session or
// the store cannot be read.
func (c *Client) sessionToken(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		log.Printf("Error reading session token: %v", err)
		return ""
	}
	return token
}

// do issues one JSON request. A non-2xx answer becomes an *APIError; a 2xx
// body is decoded into out when out is non-nil.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	token string,
	body any,
	out any,
) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("API %s %s failed: %v", method, path, err)
		return fmt.Errorf("backend unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := newAPIError(method, path, resp)
		log.Printf("API %s %s returned %d: %s", method, path, apiErr.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// newAPIError tolerates bodies that are empty or not JSON.
func newAPIError(method, path string, resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var body wire.ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		body = wire.ErrorBody{}
	}

	message := body.Text()
	if message == "" {
		message = fmt.Sprintf("HTTP Error: %d", resp.StatusCode)
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Method:     method,
		Path:       path,
	}
}

// healthy reports whether a health endpoint answers with 2xx.
func (c *Client) healthy(ctx context.Context, path string) bool {
	var body map[string]any
	if err := c.do(ctx, http.MethodGet, path, nil, c.sessionToken(ctx), nil, &body); err != nil {
		log.Printf("Health check %s failed: %v", path, err)
		return false
	}
	return true
}

func resourcePath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(segment))
	}
	return b.String()
}
