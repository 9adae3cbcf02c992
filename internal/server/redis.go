package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/giftring/pkg/errors"
)

// Key prefixes and lifetimes for Redis-backed claims.
const (
	redisPendingPrefix  = "giftring:claim:"
	redisRedeemedPrefix = "giftring:redeemed:"

	// redisClaimTTL bounds how long an unredeemed claim survives.
	redisClaimTTL = 30 * 24 * time.Hour
)

// RedisStore is a Redis-backed ClaimStore for multi-instance deployments,
// where every instance must agree on which codes are still redeemable.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping redis at %s", addr)
	}
	return &RedisStore{client: client}, nil
}

// Put stores a pending claim under its code.
func (s *RedisStore) Put(ctx context.Context, c Claim) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode claim")
	}
	if err := s.client.Set(ctx, redisPendingPrefix+c.Code, data, redisClaimTTL).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store claim")
	}
	return nil
}

// Redeem atomically fetches and deletes the claim, then leaves a tombstone
// so a second redeem is distinguishable from an unknown code.
func (s *RedisStore) Redeem(ctx context.Context, code string) (Claim, error) {
	data, err := s.client.GetDel(ctx, redisPendingPrefix+code).Bytes()
	if err == redis.Nil {
		exists, terr := s.client.Exists(ctx, redisRedeemedPrefix+code).Result()
		if terr == nil && exists > 0 {
			return Claim{}, errors.New(errors.ErrCodeClaimed, "code already redeemed")
		}
		return Claim{}, errors.New(errors.ErrCodeNotFound, "unknown claim code")
	}
	if err != nil {
		return Claim{}, errors.Wrap(errors.ErrCodeInternal, err, "redeem claim")
	}

	var c Claim
	if err := json.Unmarshal(data, &c); err != nil {
		return Claim{}, errors.Wrap(errors.ErrCodeInternal, err, "decode claim")
	}
	if err := s.client.Set(ctx, redisRedeemedPrefix+code, time.Now().UTC().Format(time.RFC3339), redisClaimTTL).Err(); err != nil {
		return Claim{}, errors.Wrap(errors.ErrCodeInternal, err, "record redemption")
	}
	return c, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
