package cache

import (
	"context"
	"time"
)

// BadgeCache caches per-user unread notification counts so badge polling
// can run at arbitrary frequency without hitting the database each time.
// Staleness up to the configured TTL is acceptable.
type BadgeCache interface {
	GetUnread(ctx context.Context, userID string) (count int64, ok bool, err error)

	SetUnread(ctx context.Context, userID string, count int64, ttl time.Duration) error

	Invalidate(ctx context.Context, userID string) error
}
