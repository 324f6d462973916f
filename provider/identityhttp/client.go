package identityhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	sessionkit "github.com/aurawell/sessionkit"
	"github.com/aurawell/sessionkit/provider"
)

// Client talks to the password identity service. It implements
// [sessionkit.PasswordProvider].
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client (tests, custom
// transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client for the identity service at baseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type identityResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	IsNewUser    bool   `json:"isNewUser"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// backendCodes maps the identity service's error identifiers onto the
// uniform provider vocabulary. Anything absent falls through to
// CodeUnavailable.
var backendCodes = map[string]provider.Code{
	"INVALID_PASSWORD":    provider.CodeInvalidCredentials,
	"INVALID_CREDENTIALS": provider.CodeInvalidCredentials,
	"EMAIL_NOT_FOUND":     provider.CodeAccountNotFound,
	"USER_NOT_FOUND":      provider.CodeAccountNotFound,
	"EMAIL_EXISTS":        provider.CodeAccountExists,
	"WEAK_PASSWORD":       provider.CodeWeakPassword,
	"TOKEN_EXPIRED":       provider.CodeTokenExpired,
	"INVALID_REFRESH":     provider.CodeTokenExpired,
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return provider.E(provider.CodeUnavailable, "encode request: %v", err)
	}

	url := c.baseURL + path
	if c.apiKey != "" {
		url += "?key=" + c.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return provider.E(provider.CodeUnavailable, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return provider.E(provider.CodeNetwork, "identity service unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eresp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&eresp)
		msg := eresp.Error.Message
		if code, ok := backendCodes[msg]; ok {
			return provider.E(code, "%s", msg)
		}
		if resp.StatusCode >= 500 {
			return provider.E(provider.CodeNetwork, "identity service %d: %s", resp.StatusCode, msg)
		}
		return provider.E(provider.CodeUnavailable, "identity service %d: %s", resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return provider.E(provider.CodeUnavailable, "decode response: %v", err)
		}
	}
	return nil
}

func toIdentity(r identityResponse, newAccount bool) sessionkit.Identity {
	return sessionkit.Identity{
		ExternalID:   r.LocalID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		NewAccount:   newAccount,
	}
}

// SignIn implements [sessionkit.PasswordProvider].
func (c *Client) SignIn(ctx context.Context, email, password string) (sessionkit.Identity, error) {
	var out identityResponse
	err := c.post(ctx, "/v1/accounts:signIn", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return sessionkit.Identity{}, err
	}
	return toIdentity(out, out.IsNewUser), nil
}

// SignUp implements [sessionkit.PasswordProvider]. The service enforces email
// uniqueness and reports EMAIL_EXISTS on conflict.
func (c *Client) SignUp(ctx context.Context, email, password string) (sessionkit.Identity, error) {
	var out identityResponse
	err := c.post(ctx, "/v1/accounts:signUp", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return sessionkit.Identity{}, err
	}
	return toIdentity(out, true), nil
}

// UpdateDisplayName implements [sessionkit.PasswordProvider].
func (c *Client) UpdateDisplayName(ctx context.Context, idToken, displayName string) error {
	return c.post(ctx, "/v1/accounts:update", map[string]string{
		"idToken":     idToken,
		"displayName": displayName,
	}, nil)
}

// SendPasswordReset implements [sessionkit.PasswordProvider].
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "/v1/accounts:sendResetEmail", map[string]string{
		"email": email,
	}, nil)
}

// Reauthenticate implements [sessionkit.PasswordProvider]. It is a fresh
// sign-in; the returned identity carries a new short-lived token used to
// authorize the follow-up credential change.
func (c *Client) Reauthenticate(ctx context.Context, email, password string) (sessionkit.Identity, error) {
	return c.SignIn(ctx, email, password)
}

// ChangePassword implements [sessionkit.PasswordProvider].
func (c *Client) ChangePassword(ctx context.Context, idToken, newPassword string) error {
	return c.post(ctx, "/v1/accounts:changePassword", map[string]string{
		"idToken":  idToken,
		"password": newPassword,
	}, nil)
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken implements [sessionkit.PasswordProvider].
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	var out refreshResponse
	err := c.post(ctx, "/v1/token", map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	}, &out)
	if err != nil {
		return "", "", err
	}
	if out.IDToken == "" {
		return "", "", provider.E(provider.CodeTokenExpired, "empty token in refresh response")
	}
	return out.IDToken, out.RefreshToken, nil
}

// SignOut implements [sessionkit.PasswordProvider]. Password sessions are
// stateless on the provider side, so sign-out is a local no-op and trivially
// idempotent.
func (c *Client) SignOut(context.Context) error {
	return nil
}

var _ sessionkit.PasswordProvider = (*Client)(nil)

// String identifies the client in logs.
func (c *Client) String() string {
	return fmt.Sprintf("identityhttp(%s)", c.baseURL)
}
