package db

import (
	"context"
	"fmt"

	"storefront-sync/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}
