package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedis_UnavailableBypassesCache(t *testing.T) {
	r := NewRedisFromClient(nil, 0, nil)
	ctx := context.Background()

	if err := r.SetJSON(ctx, "dashboard:stats", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out map[string]int
	hit, err := r.GetJSON(ctx, "dashboard:stats", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := r.DeleteByPattern(ctx, "dashboard:*"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestRedis_UnavailableLockIsGranted(t *testing.T) {
	r := NewRedisFromClient(nil, 0, nil)
	ctx := context.Background()

	token, ok, err := r.TryLock(ctx, "bot:pass", 0)
	if err != nil || !ok || token == "" {
		t.Fatalf("TryLock = %q, %v, %v", token, ok, err)
	}
	if err := r.Unlock(ctx, "bot:pass", token); err != nil {
		t.Fatalf("unlock: %v", err)
	}
}

func TestRedis_LockGrantedWhenServerStopsAnswering(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisFromClient(client, 0, nil)
	t.Cleanup(func() { _ = r.Close() })

	token, ok, err := r.TryLock(context.Background(), "bot:pass", time.Second)
	if err != nil || !ok || token == "" {
		t.Fatalf("TryLock = %q, %v, %v", token, ok, err)
	}
}

func TestRedis_LockHonoursCancelledContext(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisFromClient(client, 0, nil)
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok, err := r.TryLock(ctx, "bot:pass", time.Second); err == nil || ok {
		t.Fatalf("expected context error, got ok=%v err=%v", ok, err)
	}
}
