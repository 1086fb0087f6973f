package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin JSON caller for the REST API. It does not hold
// credentials; pass the access token per call or use Session for an
// authenticated flow with automatic refresh.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is a decoded API envelope.
type Response struct {
	Status  int
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals the data portion into out.
func (r *Response) Decode(out any) error {
	if out == nil || len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, out)
}

// Get issues an authenticated GET. Token may be empty for public routes.
func (c *Client) Get(ctx context.Context, path, token string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, token, nil)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path, token string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, token, body)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path, token string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, token, body)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path, token string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, token, nil)
}

// Do performs the request and maps non-2xx responses onto the error
// taxonomy: 422 with field errors becomes *EntityError, 401 becomes
// *AuthError, anything else *HTTPError.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		out := &Response{Status: resp.StatusCode}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return nil, fmt.Errorf("decode response: %w", err)
			}
		}
		return out, nil
	}

	return nil, decodeError(resp.StatusCode, raw)
}

func decodeError(status int, raw []byte) error {
	var body struct {
		Message string       `json:"message"`
		Code    string       `json:"code"`
		Errors  []FieldError `json:"errors"`
	}
	_ = json.Unmarshal(raw, &body)
	if body.Message == "" {
		body.Message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnprocessableEntity && len(body.Errors) > 0:
		return &EntityError{Message: body.Message, Errors: body.Errors}
	case status == http.StatusUnauthorized:
		return &AuthError{Message: body.Message, Code: body.Code}
	default:
		return &HTTPError{Status: status, Message: body.Message, Code: body.Code}
	}
}
