package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisLimiterForTest(t *testing.T) (*RedisFixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFixedWindowLimiter(client, "test-rl"), srv
}

func TestRedisFixedWindowLimiter(t *testing.T) {
	limiter, srv := newRedisLimiterForTest(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d must be allowed", i+1)
		}
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if allowed {
		t.Fatal("expected rejection over the limit")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("retryAfter out of range: %v", retryAfter)
	}

	// Separate keys do not share windows.
	allowed, _, err = limiter.Allow(ctx, "5.6.7.8", 3, time.Minute)
	if err != nil || !allowed {
		t.Fatalf("fresh key must be allowed, got allowed=%v err=%v", allowed, err)
	}

	// Window expiry resets the counter.
	srv.FastForward(2 * time.Minute)
	allowed, _, err = limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
	if err != nil || !allowed {
		t.Fatalf("expected fresh window after expiry, got allowed=%v err=%v", allowed, err)
	}
}

func TestRedisLimiterBackendFailure(t *testing.T) {
	limiter, srv := newRedisLimiterForTest(t)
	srv.Close()

	_, _, err := limiter.Allow(context.Background(), "1.2.3.4", 3, time.Minute)
	if err == nil {
		t.Fatal("expected an error when redis is down")
	}
}
