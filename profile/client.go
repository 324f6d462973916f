package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	sessionkit "github.com/aurawell/sessionkit"
	"github.com/aurawell/sessionkit/provider"
)

// Client talks to the profile service. It implements
// [sessionkit.ProfileService].
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the profile service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return provider.E(provider.CodeUnavailable, "encode request: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return provider.E(provider.CodeUnavailable, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return provider.E(provider.CodeNetwork, "profile service unreachable: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return provider.E(provider.CodeAccountNotFound, "profile not found")
	case resp.StatusCode == http.StatusUnauthorized:
		return provider.E(provider.CodeTokenExpired, "profile service rejected token")
	case resp.StatusCode == http.StatusConflict:
		return provider.E(provider.CodeAccountExists, "profile already exists")
	case resp.StatusCode >= 500:
		return provider.E(provider.CodeNetwork, "profile service %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return provider.E(provider.CodeUnavailable, "profile service %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return provider.E(provider.CodeUnavailable, "decode response: %v", err)
		}
	}
	return nil
}

// Fetch implements [sessionkit.ProfileService].
func (c *Client) Fetch(ctx context.Context, externalID, token string) (sessionkit.UserRecord, error) {
	var rec sessionkit.UserRecord
	if err := c.do(ctx, http.MethodGet, "/v1/profiles/"+externalID, token, nil, &rec); err != nil {
		return sessionkit.UserRecord{}, err
	}
	return rec, nil
}

// Create implements [sessionkit.ProfileService]. The service assigns the
// document ID and stamps creation time; the returned record is authoritative.
func (c *Client) Create(ctx context.Context, np sessionkit.NewProfile, token string) (sessionkit.UserRecord, error) {
	var rec sessionkit.UserRecord
	if err := c.do(ctx, http.MethodPost, "/v1/profiles", token, np, &rec); err != nil {
		return sessionkit.UserRecord{}, err
	}
	return rec, nil
}

// Update implements [sessionkit.ProfileService]. Only the fields set in
// update are sent; the service merges them section by section and echoes the
// resulting document.
func (c *Client) Update(ctx context.Context, externalID string, update sessionkit.ProfileUpdate, token string) (sessionkit.UserRecord, error) {
	var rec sessionkit.UserRecord
	if err := c.do(ctx, http.MethodPatch, "/v1/profiles/"+externalID, token, update, &rec); err != nil {
		return sessionkit.UserRecord{}, err
	}
	return rec, nil
}

var _ sessionkit.ProfileService = (*Client)(nil)
