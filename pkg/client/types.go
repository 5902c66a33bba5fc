package client

import (
	"encoding/json"
	"time"
)

// User is the authenticated-user projection returned by the API.
type User struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Provider string `json:"provider"`
}

// Image is one search result.
type Image struct {
	ID   string `json:"id"`
	URLs struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	AltDescription string  `json:"alt_description"`
	Description    *string `json:"description"`
	User           struct {
		Name string `json:"name"`
	} `json:"user"`
	Likes int    `json:"likes"`
	Color string `json:"color"`
}

// SearchResult is the payload of a successful search.
type SearchResult struct {
	Term    string  `json:"term"`
	Results []Image `json:"results"`
	Total   int     `json:"total"`
}

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	ID        uint      `json:"id"`
	Term      string    `json:"term"`
	Timestamp time.Time `json:"timestamp"`
}

// TermCount is one trending term with its occurrence count.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Health is the server health payload.
type Health struct {
	Version     string          `json:"version"`
	Environment string          `json:"environment"`
	OAuth       map[string]bool `json:"oauth"`
}

// envelope mirrors the server's uniform response wrapper.
type envelope struct {
	Success   bool            `json:"success"`
	Status    int             `json:"status"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Error     string          `json:"error,omitempty"`
}
