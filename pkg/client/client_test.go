package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func envelopeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := r.Cookie("snapseek_session"); err == nil {
			fmt.Fprint(w, `{"success": true, "status": 200, "timestamp": "2026-01-01T00:00:00Z",
				"data": {"user": {"id": 1, "email": "jane@example.com", "name": "Jane", "provider": "google"}}}`)
			return
		}
		fmt.Fprint(w, `{"success": true, "status": 200, "timestamp": "2026-01-01T00:00:00Z",
			"data": {"user": null}}`)
	})
	mux.HandleFunc("POST /api/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success": true, "status": 200, "timestamp": "2026-01-01T00:00:00Z",
			"message": "Found 1 images for \"cats\"",
			"data": {"term": "cats", "total": 1, "results": [
				{"id": "img-1", "urls": {"regular": "r", "small": "s", "thumb": "t"},
				 "alt_description": "a cat", "description": null,
				 "user": {"name": "Ann"}, "likes": 2, "color": "#000"}]}}`)
	})
	mux.HandleFunc("GET /api/top-searches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success": true, "status": 200, "timestamp": "2026-01-01T00:00:00Z",
			"data": [{"term": "cats", "count": 3}, {"term": "dogs", "count": 1}]}`)
	})
	mux.HandleFunc("GET /api/history", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success": false, "status": 401, "timestamp": "2026-01-01T00:00:00Z",
			"error": "Authentication required", "message": "Please log in to access this resource"}`)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success": true, "status": 200, "timestamp": "2026-01-01T00:00:00Z",
			"message": "Logged out successfully"}`)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestAuthStatusTracksUser(t *testing.T) {
	ts := envelopeServer(t)
	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	user, err := c.AuthStatus(context.Background())
	if err != nil {
		t.Fatalf("AuthStatus: %v", err)
	}
	if user != nil {
		t.Fatal("expected nil user without a session cookie")
	}
	if c.CurrentUser() != nil {
		t.Error("client state should record anonymous")
	}
}

func TestSearchUpdatesState(t *testing.T) {
	ts := envelopeServer(t)
	c, _ := New(ts.URL)

	result, err := c.Search(context.Background(), "cats")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Term != "cats" || result.Total != 1 || len(result.Results) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Results[0].User.Name != "Ann" {
		t.Errorf("unexpected image author: %+v", result.Results[0])
	}

	if c.LastSearch() == nil || c.LastSearch().Term != "cats" {
		t.Error("last search state not recorded")
	}
}

func TestFailureEnvelopeBecomesAPIError(t *testing.T) {
	ts := envelopeServer(t)
	c, _ := New(ts.URL)

	_, err := c.History(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != 401 || apiErr.Err != "Authentication required" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestTopSearches(t *testing.T) {
	ts := envelopeServer(t)
	c, _ := New(ts.URL)

	top, err := c.TopSearches(context.Background())
	if err != nil {
		t.Fatalf("TopSearches: %v", err)
	}
	if len(top) != 2 || top[0].Term != "cats" || top[0].Count != 3 {
		t.Errorf("unexpected top searches: %+v", top)
	}
}

func TestLogoutClearsState(t *testing.T) {
	ts := envelopeServer(t)
	c, _ := New(ts.URL)

	if _, err := c.Search(context.Background(), "cats"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if c.CurrentUser() != nil || c.LastSearch() != nil || c.CachedHistory() != nil {
		t.Error("logout must clear client state")
	}
}

func TestLoginURL(t *testing.T) {
	c, _ := New("http://localhost:8000")
	if got := c.LoginURL("github"); got != "http://localhost:8000/api/auth/github" {
		t.Errorf("unexpected login URL: %s", got)
	}
}
