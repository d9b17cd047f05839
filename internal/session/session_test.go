package session

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test keys.
		keys, _ := client.Keys(ctx, "guest:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestGuestCreateAndGet(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)
	ctx := context.Background()

	guest, err := store.Create(ctx, "mk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if guest.ID == uuid.Nil {
		t.Error("expected a non-nil guest ID")
	}
	if guest.Language != "mk" {
		t.Errorf("Language = %q, want %q", guest.Language, "mk")
	}

	got, err := store.Get(ctx, guest.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected guest, got nil")
	}
	if got.ID != guest.ID {
		t.Errorf("ID = %v, want %v", got.ID, guest.ID)
	}
	if got.Language != "mk" {
		t.Errorf("Language = %q, want %q", got.Language, "mk")
	}
}

func TestGuestGetUnknown(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	got, err := store.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown guest, got %+v", got)
	}
}

func TestGuestSetLanguage(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)
	ctx := context.Background()

	guest, err := store.Create(ctx, "en")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.SetLanguage(ctx, guest, "mk"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}

	got, err := store.Get(ctx, guest.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Language != "mk" {
		t.Errorf("Language = %q, want %q", got.Language, "mk")
	}
}

func TestGuestTouch(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)
	ctx := context.Background()

	guest, err := store.Create(ctx, "en")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := guest.LastActive

	if err := store.Touch(ctx, guest); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	got, err := store.Get(ctx, guest.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LastActive.Before(before) {
		t.Error("LastActive should not move backwards after Touch")
	}
}

func TestGuestDelete(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)
	ctx := context.Background()

	guest, err := store.Create(ctx, "en")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, guest.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := store.Get(ctx, guest.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("expected nil after Delete")
	}
}
