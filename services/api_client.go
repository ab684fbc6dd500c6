package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// APIError is a structured failure from the backend. Message carries the
// server-supplied "message" field verbatim when the response had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsAuthError reports whether the failure means the session is no longer
// valid. Only 401/403 qualify; network errors and 5xx responses do not force
// a logout.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsAuthError reports whether err is an authentication failure from the
// backend.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsAuthError()
}

// ErrorMessage extracts the server-supplied message from err, falling back
// to the given text when there is none.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// ApiClient issues JSON requests against the backend, attaching the bearer
// token of the current session when one is set. Requests run on UI
// goroutines that may overlap, and an auth failure clears the token, so all
// token access goes through the mutex.
type ApiClient struct {
	BaseURL string

	mu    sync.Mutex
	token string

	httpClient *http.Client
}

func NewApiClient(baseURL string, timeout time.Duration) *ApiClient {
	return &ApiClient{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken attaches a session token to all subsequent requests.
func (c *ApiClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken drops the session token.
func (c *ApiClient) ClearToken() {
	c.SetToken("")
}

// Token returns the token attached to requests, or "" when logged out.
func (c *ApiClient) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Get issues a GET request with optional query parameters and decodes the
// JSON response into out.
func (c *ApiClient) Get(endpoint string, query url.Values, out interface{}) error {
	target := c.BaseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

// Post issues a POST request with a JSON body and decodes the JSON response
// into out.
func (c *ApiClient) Post(endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *ApiClient) do(req *http.Request, out interface{}) error {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) == nil {
			apiErr.Message = msg.Message
		}
		if apiErr.IsAuthError() {
			c.ClearToken()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	return nil
}
