package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxAttempts = 10
)

// LoginThrottle bounds login attempts per username using a counter with a
// sliding expiry. Key format: login_attempts:<username>
type LoginThrottle struct {
	client *redis.Client
}

func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// Allow increments the attempt counter for key and reports whether the
// attempt may proceed. The window starts on the first attempt.
func (t *LoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	k := t.key(key)

	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, throttleWindow).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= throttleMaxAttempts, nil
}

// Clear forgets the counter after a successful login.
func (t *LoginThrottle) Clear(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.key(key)).Err()
}

func (t *LoginThrottle) key(key string) string {
	return "login_attempts:" + key
}
