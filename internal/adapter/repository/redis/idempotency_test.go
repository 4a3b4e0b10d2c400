package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreFirstRequestLocksKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatalf("expected first request to win, got cached=%s", cached)
	}

	// Second request sees the processing placeholder.
	exists, cached, err = store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected second request to see the existing key")
	}
	if string(cached) != "processing" {
		t.Fatalf("expected processing placeholder, got %s", cached)
	}
}

func TestIdempotencyStoreUpdateAndReplay(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-2", nil, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Update(ctx, "key-2", []byte(`{"id":"batch-1"}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "key-2", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected replay to find the stored response")
	}
	if string(cached) != `{"id":"batch-1"}` {
		t.Fatalf("unexpected cached response: %s", cached)
	}
}

func TestIdempotencyStoreKeyExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-3", []byte("done"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	exists, _, err := store.CheckAndSet(ctx, "key-3", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected expired key to be treated as new")
	}
}
