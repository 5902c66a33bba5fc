// Package client is a Go client for the snapseek API. It keeps the session
// cookie in a jar and tracks the signed-in user and the latest search state
// for UI callers, mirroring the server's envelope contract.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

// APIError is a failure envelope surfaced as an error. Status and Message
// carry the server's curated fields; raw upstream errors never appear here.
type APIError struct {
	Status  int
	Err     string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.Status, e.Err, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Err)
}

// Client talks to the snapseek API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu         sync.RWMutex
	user       *User
	lastSearch *SearchResult
	history    []HistoryEntry
}

// New creates a client for the given server base URL (without the /api
// prefix). The client carries its own cookie jar for the session cookie.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CurrentUser returns the signed-in user recorded by the last AuthStatus
// call, or nil.
func (c *Client) CurrentUser() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// LastSearch returns the most recent successful search result, or nil.
func (c *Client) LastSearch() *SearchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSearch
}

// CachedHistory returns the history from the last History call.
func (c *Client) CachedHistory() []HistoryEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history
}

// LoginURL returns the browser URL that begins the OAuth flow for a provider.
func (c *Client) LoginURL(provider string) string {
	return fmt.Sprintf("%s/api/auth/%s", c.baseURL, provider)
}

// AuthStatus fetches the session state. The returned user is nil when
// unauthenticated; the call itself succeeds either way.
func (c *Client) AuthStatus(ctx context.Context) (*User, error) {
	var data struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, &data); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.user = data.User
	c.mu.Unlock()
	return data.User, nil
}

// Logout destroys the session. Safe to call when already logged out.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}

	c.mu.Lock()
	c.user = nil
	c.lastSearch = nil
	c.history = nil
	c.mu.Unlock()
	return nil
}

// Search submits a term and returns the image results.
func (c *Client) Search(ctx context.Context, term string) (*SearchResult, error) {
	var result SearchResult
	body := map[string]string{"term": term}
	if err := c.do(ctx, http.MethodPost, "/api/search", body, &result); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastSearch = &result
	c.mu.Unlock()
	return &result, nil
}

// History fetches the caller's 20 most recent searches.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.do(ctx, http.MethodGet, "/api/history", nil, &entries); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.history = entries
	c.mu.Unlock()
	return entries, nil
}

// ClearHistory deletes the caller's search history.
func (c *Client) ClearHistory(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/history", nil, nil); err != nil {
		return err
	}

	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
	return nil
}

// TopSearches fetches the global trending terms.
func (c *Client) TopSearches(ctx context.Context) ([]TermCount, error) {
	var top []TermCount
	if err := c.do(ctx, http.MethodGet, "/api/top-searches", nil, &top); err != nil {
		return nil, err
	}
	return top, nil
}

// Health fetches the server health payload.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// do executes one request and unwraps the envelope. A success=false
// envelope becomes an *APIError; out may be nil when no data is expected.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(buf)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		return &APIError{Status: env.Status, Err: env.Error, Message: env.Message}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return nil
}
