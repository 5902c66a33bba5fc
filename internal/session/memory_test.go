package session

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(s.Close)
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	token, err := s.Create(ctx, 42)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64-char hex token, got %d chars", len(token))
	}

	userID, ok, err := s.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || userID != 42 {
		t.Errorf("expected (42, true), got (%d, %v)", userID, ok)
	}
}

func TestTokensAreUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := s.Create(ctx, 1)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[token] {
			t.Fatal("duplicate token issued")
		}
		seen[token] = true
	}
}

func TestGetUnknownToken(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("unknown token must not resolve")
	}
}

func TestExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	s.now = func() time.Time { return now }

	token, err := s.Create(ctx, 7)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.now = func() time.Time { return now.Add(TTL + time.Second) }

	if _, ok, _ := s.Get(ctx, token); ok {
		t.Error("expired token must not resolve")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	token, err := s.Create(ctx, 9)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := s.Destroy(ctx, token); err != nil {
		t.Errorf("second Destroy must succeed, got %v", err)
	}
	if _, ok, _ := s.Get(ctx, token); ok {
		t.Error("destroyed token must not resolve")
	}
}
