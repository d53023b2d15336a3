// Package ratelimit throttles sign-in attempts per email and per client IP
// using Redis counters.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateLimited      = errors.New("too many sign-in attempts")
	errRedisUnavailable = errors.New("rate limiter redis unavailable")
)

// SigninLimiter counts attempts in fixed windows. When Redis is unreachable
// the limiter fails open: sign-in availability wins over throttling.
type SigninLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewSigninLimiter(redisClient *redis.Client, maxAttempts int, window time.Duration) *SigninLimiter {
	return &SigninLimiter{
		redis:       redisClient,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *SigninLimiter) Enforce(ctx context.Context, email, ip string) error {
	if l.redis == nil {
		return nil
	}

	if err := l.enforceKey(ctx, signinEmailKey(email)); err != nil {
		if errors.Is(err, errRedisUnavailable) {
			return nil
		}
		return err
	}

	if ip != "" {
		if err := l.enforceKey(ctx, signinIPKey(ip)); err != nil {
			if errors.Is(err, errRedisUnavailable) {
				return nil
			}
			return err
		}
	}

	return nil
}

// The increment and the window expiry run as one script; a counter key
// never persists without a TTL.
var incrWithWindow = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

func (l *SigninLimiter) enforceKey(ctx context.Context, key string) error {
	count, err := incrWithWindow.Run(ctx, l.redis, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}

	if count > int64(l.maxAttempts) {
		return ErrRateLimited
	}

	return nil
}

func signinEmailKey(email string) string {
	return "signin:email:" + email
}

func signinIPKey(ip string) string {
	return "signin:ip:" + ip
}
