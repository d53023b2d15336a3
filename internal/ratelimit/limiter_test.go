package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestEnforceWithoutRedisFailsOpen(t *testing.T) {
	limiter := NewSigninLimiter(nil, 3, time.Minute)
	if err := limiter.Enforce(context.Background(), "x@gmail.com", "10.0.0.1"); err != nil {
		t.Fatalf("nil redis must fail open, got %v", err)
	}
}

func TestEnforceWithUnreachableRedisFailsOpen(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	limiter := NewSigninLimiter(client, 3, time.Minute)
	if err := limiter.Enforce(context.Background(), "x@gmail.com", "10.0.0.1"); err != nil {
		t.Fatalf("unreachable redis must fail open, got %v", err)
	}
}

func TestEnforceBlocksAfterMaxAttempts(t *testing.T) {
	_, client := newTestRedis(t)
	limiter := NewSigninLimiter(client, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if err := limiter.Enforce(context.Background(), "x@gmail.com", ""); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}

	err := limiter.Enforce(context.Background(), "x@gmail.com", "")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited on attempt 4, got %v", err)
	}

	if err := limiter.Enforce(context.Background(), "other@gmail.com", ""); err != nil {
		t.Fatalf("other email must not be limited, got %v", err)
	}
}

func TestCounterAlwaysCarriesWindowTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewSigninLimiter(client, 3, time.Minute)

	for i := 0; i < 5; i++ {
		limiter.Enforce(context.Background(), "x@gmail.com", "10.0.0.1")
	}

	for _, key := range []string{signinEmailKey("x@gmail.com"), signinIPKey("10.0.0.1")} {
		if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
			t.Fatalf("key %q has TTL %v, want within (0, 1m]", key, ttl)
		}
	}
}

func TestWindowExpiryResetsCounter(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewSigninLimiter(client, 2, time.Minute)

	for i := 0; i < 2; i++ {
		if err := limiter.Enforce(context.Background(), "x@gmail.com", ""); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	if err := limiter.Enforce(context.Background(), "x@gmail.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	mr.FastForward(time.Minute + time.Second)

	if err := limiter.Enforce(context.Background(), "x@gmail.com", ""); err != nil {
		t.Fatalf("expired window must admit again, got %v", err)
	}
}

func TestKeyConstruction(t *testing.T) {
	if got := signinEmailKey("x@gmail.com"); got != "signin:email:x@gmail.com" {
		t.Fatalf("email key = %q", got)
	}
	if got := signinIPKey("10.0.0.1"); got != "signin:ip:10.0.0.1" {
		t.Fatalf("ip key = %q", got)
	}
}
