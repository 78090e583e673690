// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finance-ledger/api/internal/domain/error"
	"github.com/finance-ledger/api/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 30
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	redisKeyPrefix = "ratelimit:"
)

// RateLimitStore counts attempts per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitObserver is notified of rejected requests.
type RateLimitObserver interface {
	ObserveRateLimited(route string)
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryStore keeps windows in process memory.
type MemoryStore struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewMemoryStore creates an in-process store. Non-positive settings fall back to defaults.
func NewMemoryStore(maxAttempts int, windowDuration time.Duration) *MemoryStore {
	maxAttempts, windowDuration = normalize(maxAttempts, windowDuration)
	return &MemoryStore{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Allow implements RateLimitStore.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(s.windowDuration),
		}
		return true, nil
	}

	if entry.attempts < s.maxAttempts {
		entry.attempts++
		return true, nil
	}

	return false, nil
}

// Reset clears the store state.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// RedisStore shares windows between API instances through Redis.
type RedisStore struct {
	client         *redis.Client
	maxAttempts    int
	windowDuration time.Duration
}

// NewRedisStore creates a Redis-backed store. Non-positive settings fall back to defaults.
func NewRedisStore(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RedisStore {
	maxAttempts, windowDuration = normalize(maxAttempts, windowDuration)
	return &RedisStore{
		client:         client,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Allow implements RateLimitStore. The window starts with the first attempt.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := redisKeyPrefix + key

	attempts, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if attempts == 1 {
		if err := s.client.Expire(ctx, redisKey, s.windowDuration).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return attempts <= int64(s.maxAttempts), nil
}

func normalize(maxAttempts int, windowDuration time.Duration) (int, time.Duration) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return maxAttempts, windowDuration
}

// RateLimiter provides per-client, per-route rate limiting.
type RateLimiter struct {
	store    RateLimitStore
	observer RateLimitObserver
	disabled bool
}

// NewRateLimiter creates a rate limiter on top of store. observer may be nil.
func NewRateLimiter(store RateLimitStore, observer RateLimitObserver) *RateLimiter {
	return &RateLimiter{
		store:    store,
		observer: observer,
	}
}

// Disable turns the limiter into a pass-through, as used in the test environment.
func (rl *RateLimiter) Disable() {
	rl.disabled = true
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}
		route := c.FullPath()

		allowed, err := rl.store.Allow(c.Request.Context(), route+"|"+clientIP)
		if err != nil {
			// Fail open
			slog.Warn("Rate limit check failed", "error", err, "route", route)
			c.Next()
			return
		}

		if !allowed {
			if rl.observer != nil {
				rl.observer.ObserveRateLimited(route)
			}
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  domainerror.ErrCodeRateLimited,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
