package verification

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, found, _ := store.Get(ctx, Key("a@example.com")); found {
		t.Fatal("Empty store should not find anything")
	}

	store.Set(ctx, Key("a@example.com"), "123456", time.Minute)
	value, found, err := store.Get(ctx, Key("a@example.com"))
	if err != nil || !found || value != "123456" {
		t.Fatalf("Expected 123456, got %q found=%v err=%v", value, found, err)
	}

	store.Delete(ctx, Key("a@example.com"))
	if _, found, _ := store.Get(ctx, Key("a@example.com")); found {
		t.Error("Deleted code should be gone")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(ctx, "k", "v", 300*time.Second)

	now = now.Add(299 * time.Second)
	if _, found, _ := store.Get(ctx, "k"); !found {
		t.Error("Code should still be valid before the TTL elapses")
	}

	now = now.Add(time.Second)
	if _, found, _ := store.Get(ctx, "k"); found {
		t.Error("Code should expire once the TTL elapses")
	}
	if len(store.entries) != 0 {
		t.Error("Expired entry should be dropped")
	}
}

func TestKey(t *testing.T) {
	if got := Key("me@example.com"); got != "verify_code:me@example.com" {
		t.Errorf("Unexpected key %q", got)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := Open(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer client.Close()

	store := NewRedisStore(client)
	key := Key("redis-test@example.com")
	defer store.Delete(ctx, key)

	if err := store.Set(ctx, key, "654321", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, found, err := store.Get(ctx, key)
	if err != nil || !found || value != "654321" {
		t.Fatalf("Expected 654321, got %q found=%v err=%v", value, found, err)
	}

	store.Delete(ctx, key)
	if _, found, _ := store.Get(ctx, key); found {
		t.Error("Deleted key should be gone")
	}
}
