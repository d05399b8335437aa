package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calendar-couple/couple/internal/couple/store"
)

const invitationKeyPrefix = "couple:invitation:"

func invitationKey(code string) string { return invitationKeyPrefix + code }

func (s *Store) SaveInvitationCode(ctx context.Context, code string, inviterID int64, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, invitationKey(code), strconv.FormatInt(inviterID, 10), ttl).Result()
}

func (s *Store) GetInviterID(ctx context.Context, code string) (int64, error) {
	v, err := s.rdb.Get(ctx, invitationKey(code)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, store.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invitation %s: bad inviter id %q: %w", code, v, err)
	}
	return id, nil
}

func (s *Store) DeleteInvitationCode(ctx context.Context, code string) error {
	return s.rdb.Del(ctx, invitationKey(code)).Err()
}
