// Package apiclient wraps the PawCare REST API. Every call returns the
// upstream's {success, message, data} envelope; this layer knows nothing of
// the backend's business rules beyond that shape.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pawcare-dev/pawcare/internal/session"
)

// Envelope is the upstream response shape
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client represents an HTTP client for the PawCare API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// do issues one request and decodes the envelope. Non-2xx statuses with a
// decodable envelope surface the upstream message; anything else is a
// transport error.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	return &envelope, nil
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the payload of a successful login
type LoginResult struct {
	Token string             `json:"token"`
	User  session.UserRecord `json:"user"`
}

// Login authenticates against the upstream API
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, *Envelope, error) {
	envelope, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, nil, err
	}
	if !envelope.Success {
		return nil, envelope, nil
	}

	var result LoginResult
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		return nil, nil, fmt.Errorf("failed to decode login payload: %w", err)
	}
	if result.Token == "" {
		return nil, nil, fmt.Errorf("login payload missing token")
	}
	return &result, envelope, nil
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Firstname    string `json:"Firstname"`
	Lastname     string `json:"Lastname"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	ProviderType string `json:"providerType,omitempty"`
}

// Register creates an account upstream
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", req)
}

// ForgotPassword triggers the upstream reset flow
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": email,
	})
}

// Profile fetches the authenticated principal's profile
func (c *Client) Profile(ctx context.Context, token string) (*session.UserRecord, *Envelope, error) {
	envelope, err := c.do(ctx, http.MethodGet, "/api/profile", token, nil)
	if err != nil {
		return nil, nil, err
	}
	if !envelope.Success {
		return nil, envelope, nil
	}

	var user session.UserRecord
	if err := json.Unmarshal(envelope.Data, &user); err != nil {
		return nil, nil, fmt.Errorf("failed to decode profile payload: %w", err)
	}
	return &user, envelope, nil
}

// UpdateProfile updates the profile and returns the fresh record, which
// callers feed back into the session cookie
func (c *Client) UpdateProfile(ctx context.Context, token string, fields map[string]any) (*session.UserRecord, *Envelope, error) {
	envelope, err := c.do(ctx, http.MethodPut, "/api/profile", token, fields)
	if err != nil {
		return nil, nil, err
	}
	if !envelope.Success {
		return nil, envelope, nil
	}

	var user session.UserRecord
	if err := json.Unmarshal(envelope.Data, &user); err != nil {
		return nil, nil, fmt.Errorf("failed to decode profile payload: %w", err)
	}
	return &user, envelope, nil
}

// Forward proxies an arbitrary section call upstream under the caller's
// bearer token. The gateway's guards have already authorized the request;
// the backend still applies its own rules.
func (c *Client) Forward(ctx context.Context, method, path, token string, body any) (*Envelope, error) {
	return c.do(ctx, method, path, token, body)
}
