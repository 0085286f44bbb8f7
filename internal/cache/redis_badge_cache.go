package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

type RedisBadgeCache struct {
	client    rueidis.Client
	keyPrefix string
}

func NewRedisBadgeCache(client rueidis.Client, keyPrefix string) *RedisBadgeCache {
	return &RedisBadgeCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisBadgeCache) key(userID string) string {
	return r.keyPrefix + ":" + userID
}

func (r *RedisBadgeCache) GetUnread(ctx context.Context, userID string) (int64, bool, error) {
	cmd := r.client.B().Get().Key(r.key(userID)).Build()
	result := r.client.Do(ctx, cmd)

	count, err := result.AsInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return count, true, nil
}

func (r *RedisBadgeCache) SetUnread(ctx context.Context, userID string, count int64, ttl time.Duration) error {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	cmd := r.client.B().Setex().
		Key(r.key(userID)).
		Seconds(seconds).
		Value(strconv.FormatInt(count, 10)).
		Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisBadgeCache) Invalidate(ctx context.Context, userID string) error {
	cmd := r.client.B().Del().Key(r.key(userID)).Build()
	return r.client.Do(ctx, cmd).Error()
}
