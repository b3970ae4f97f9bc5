package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if got, ok := c.Get(ctx, "k"); !ok || got != "v" {
		t.Errorf("Get(k) = %q, %v", got, ok)
	}

	c.Set(ctx, "k", "v2", time.Hour)
	if got, _ := c.Get(ctx, "k"); got != "v2" {
		t.Errorf("overwrite: Get(k) = %q", got)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", "v", time.Minute)

	now = now.Add(59 * time.Second)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Error("entry expired early")
	}

	now = now.Add(time.Second)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("entry survived its ttl")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, Len() = %d", c.Len())
	}
}

// An entry replaced after Get saw it expired must not be deleted.
func TestMemory_EvictKeepsFreshValue(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", "stale", time.Minute)
	now = now.Add(2 * time.Minute)
	c.Set(ctx, "k", "fresh", time.Hour)

	if got, ok := c.evict("k", now); !ok || got != "fresh" {
		t.Errorf("evict = %q, %v, want fresh value", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("fresh entry removed, Len() = %d", c.Len())
	}

	now = now.Add(2 * time.Hour)
	if _, ok := c.evict("k", now); ok {
		t.Error("evict kept an expired entry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after evicting", c.Len())
	}
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := NewRedis(ctx, addr, "kigaku-test:")
	if err != nil {
		t.Fatalf("NewRedis error = %v", err)
	}
	defer c.Close()

	key := "reading-" + time.Now().Format("150405.000000")
	if err := c.Set(ctx, key, "hello", time.Minute); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if got, ok := c.Get(ctx, key); !ok || got != "hello" {
		t.Errorf("Get = %q, %v", got, ok)
	}
	if err := c.Set(ctx, key, "short", time.Millisecond); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get(ctx, key); ok {
		t.Error("key still present after its ttl")
	}
}

func TestNewRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := NewRedis(ctx, "127.0.0.1:1", ""); err == nil {
		t.Error("NewRedis should fail for an unreachable address")
	}
}

var (
	_ Cache = (*Memory)(nil)
	_ Cache = (*Redis)(nil)
)
