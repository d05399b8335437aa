package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/store"
)

const (
	refreshKeyPrefix   = "refresh:account:"
	blacklistKeyPrefix = "blacklist:"
	blacklistValue     = "logout"
)

func refreshKey(accountID int64) string {
	return refreshKeyPrefix + strconv.FormatInt(accountID, 10)
}

func blacklistKey(token string) string { return blacklistKeyPrefix + token }

// ttlUntil is the time left before expiresAt, measured with the store clock.
func (s *Store) ttlUntil(expiresAt time.Time) (time.Duration, error) {
	ttl := expiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return 0, store.ErrTokenAlreadyExpired
	}
	return ttl, nil
}

func (s *Store) SaveRefreshToken(ctx context.Context, rec domain.RefreshTokenRecord) error {
	ttl, err := s.ttlUntil(rec.ExpiresAt)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, refreshKey(rec.AccountID), rec.Token, ttl).Err()
}

func (s *Store) GetRefreshToken(ctx context.Context, accountID int64) (string, error) {
	token, err := s.rdb.Get(ctx, refreshKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrNotFound
	}
	return token, err
}

func (s *Store) DeleteRefreshToken(ctx context.Context, accountID int64) (bool, error) {
	n, err := s.rdb.Del(ctx, refreshKey(accountID)).Result()
	return n > 0, err
}

// RotateRefreshToken swaps the stored token inside WATCH/MULTI so two
// refreshes presenting the same token cannot both succeed.
func (s *Store) RotateRefreshToken(ctx context.Context, expected string, next domain.RefreshTokenRecord) (bool, error) {
	ttl, err := s.ttlUntil(next.ExpiresAt)
	if err != nil {
		return false, err
	}

	key := refreshKey(next.AccountID)
	swapped := false
	err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		if current != expected {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next.Token, ttl)
			return nil
		})
		if err != nil {
			return err
		}
		swapped = true
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return swapped, nil
}

func (s *Store) BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return store.ErrTokenAlreadyExpired
	}
	return s.rdb.Set(ctx, blacklistKey(token), blacklistValue, ttl).Err()
}

func (s *Store) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, blacklistKey(token)).Result()
	return n > 0, err
}
