package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to the instance backing the unread-badge cache.
func NewRedisClient(addr string, db int) rueidis.Client {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
			SelectDB:    db,
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return redisClient
}
