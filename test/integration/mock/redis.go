//go:build integration

package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis for the report rate limiter store.
type Redis struct {
	Client *redis.Client
	server *miniredis.Miniredis
}

var (
	redisOnce sync.Once
	redisMock *Redis
)

// NewRedis starts the shared miniredis server on first use.
func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisMock = &Redis{
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
			server: server,
		}
	})

	return redisMock
}

// Clear drops every rate limit window so each scenario starts with a full quota.
func (r *Redis) Clear(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}

// Close stops the client and the server.
func (r *Redis) Close() {
	_ = r.Client.Close()
	r.server.Close()
}
