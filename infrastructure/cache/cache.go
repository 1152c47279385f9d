package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"social-dashboard/infrastructure/logger"
)

// NewCache connects to Redis. Callers treat a nil client as "cache off".
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without cache")
		return nil, err
	}
	return client, nil
}
