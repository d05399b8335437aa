// Package redis implements the session and invitation code stores on Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calendar-couple/couple/pkg/clock"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Store wraps a go-redis client. It implements store.Sessions and
// store.InvitationCodes.
type Store struct {
	rdb   redis.UniversalClient
	clock clock.Clock
}

// Open connects to Redis and pings it within timeout.
func Open(ctx context.Context, opts Options, c clock.Clock, timeout time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return New(rdb, c), nil
}

// New wraps an existing client.
func New(rdb redis.UniversalClient, c clock.Clock) *Store {
	if c == nil {
		c = clock.Real()
	}
	return &Store{rdb: rdb, clock: c}
}

func (s *Store) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func (s *Store) Close() error { return s.rdb.Close() }
