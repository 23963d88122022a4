package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
)

const signInAttemptsPrefix = "signin:attempts:"

// SignInLimiter counts failed sign-in attempts per login in a fixed window.
type SignInLimiter struct {
	cache       *Cache
	maxAttempts int64
	window      time.Duration
}

func NewSignInLimiter(cache *Cache, maxAttempts int, window time.Duration) *SignInLimiter {
	return &SignInLimiter{
		cache:       cache,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// Allowed reports whether login still has attempts left. Redis errors
// are logged and the attempt is allowed.
func (l *SignInLimiter) Allowed(ctx context.Context, login string) bool {
	count, err := l.cache.client.Get(ctx, signInAttemptsPrefix+login).Int64()
	if err != nil {
		if !isNil(err) {
			logger.FromContext(ctx).Err(err).Str("func", "*SignInLimiter.Allowed").Msg("error reading attempts counter")
		}
		return true
	}
	return count < l.maxAttempts
}

// RegisterFailure increments the counter of login. The window starts with
// the first failure.
func (l *SignInLimiter) RegisterFailure(ctx context.Context, login string) error {
	key := signInAttemptsPrefix + login

	count, err := l.cache.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("error registering failed sign in: %w", err)
	}
	if count == 1 {
		if err = l.cache.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("error setting sign in window: %w", err)
		}
	}

	logger.FromContext(ctx).Debug().Int64("attempts", count).Str("login", login).Msg("failed sign in registered")
	return nil
}

// Reset clears the counter after a successful sign in.
func (l *SignInLimiter) Reset(ctx context.Context, login string) error {
	if err := l.cache.client.Del(ctx, signInAttemptsPrefix+login).Err(); err != nil {
		return fmt.Errorf("error resetting sign in attempts: %w", err)
	}
	return nil
}
