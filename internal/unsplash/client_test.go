package unsplash

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchSuccess(t *testing.T) {
	var gotQuery, gotPerPage, gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/photos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("query")
		gotPerPage = r.URL.Query().Get("per_page")
		gotKey = r.URL.Query().Get("client_id")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 2,
			"results": [
				{"id": "a1", "urls": {"regular": "r", "small": "s", "thumb": "t"},
				 "alt_description": "a mountain", "description": null,
				 "user": {"name": "Ann"}, "likes": 10, "color": "#aabbcc"},
				{"id": "b2", "urls": {"regular": "r2", "small": "s2", "thumb": "t2"},
				 "alt_description": "", "description": "snowy peak",
				 "user": {"name": "Bob"}, "likes": 3, "color": "#001122"}
			]
		}`))
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("key-123", ts.URL)
	result, err := c.Search(context.Background(), "mountains")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "mountains" || gotPerPage != "20" || gotKey != "key-123" {
		t.Errorf("bad query params: query=%q per_page=%q client_id=%q", gotQuery, gotPerPage, gotKey)
	}
	if result.Total != 2 || len(result.Results) != 2 {
		t.Fatalf("unexpected result: total=%d len=%d", result.Total, len(result.Results))
	}
	if result.Results[0].ID != "a1" || result.Results[0].User.Name != "Ann" {
		t.Errorf("unexpected first image: %+v", result.Results[0])
	}
	if result.Results[0].Description != nil {
		t.Error("null description should decode to nil")
	}
	if result.Results[1].Description == nil || *result.Results[1].Description != "snowy peak" {
		t.Error("description not decoded")
	}
}

func TestSearchAuthFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("bad-key", ts.URL)
	_, err := c.Search(context.Background(), "cats")
	if !errors.Is(err, ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestSearchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("key", ts.URL)
	c.httpClient.Timeout = 20 * time.Millisecond

	_, err := c.Search(context.Background(), "cats")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestSearchGenericUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("key", ts.URL)
	_, err := c.Search(context.Background(), "cats")
	if err == nil || errors.Is(err, ErrAuth) || errors.Is(err, ErrTimeout) {
		t.Errorf("expected generic error, got %v", err)
	}
}
