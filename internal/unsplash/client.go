package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.unsplash.com"

	// PerPage is the fixed page size requested from the upstream API.
	PerPage = 20

	// Timeout bounds a single upstream search call.
	Timeout = 10 * time.Second
)

// Sentinel errors for the upstream failure taxonomy. Callers branch on these
// with errors.Is; the raw upstream error never reaches clients.
var (
	// ErrAuth means the upstream rejected the access key.
	ErrAuth = errors.New("unsplash: access key rejected")
	// ErrTimeout means the upstream call exceeded its deadline.
	ErrTimeout = errors.New("unsplash: request timed out")
)

// Client calls the Unsplash search API.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// NewClient creates an Unsplash client with the bounded request timeout.
func NewClient(accessKey string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: Timeout},
	}
}

// NewClientWithBaseURL is NewClient pointed at a different endpoint, for tests.
func NewClientWithBaseURL(accessKey, baseURL string) *Client {
	c := NewClient(accessKey)
	c.baseURL = baseURL
	return c
}

// Search queries photos matching term, requesting PerPage results.
func (c *Client) Search(ctx context.Context, term string) (*Result, error) {
	q := url.Values{}
	q.Set("query", term)
	q.Set("per_page", strconv.Itoa(PerPage))
	q.Set("client_id", c.accessKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
