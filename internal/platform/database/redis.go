package database

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/impact-report-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisPingTimeout = 2 * time.Second

// OpenRedis 初始化与Redis数据库的连接，并用 Ping 确认连接可用
func OpenRedis(cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("无法连接到Redis: %w", err)
	}

	log.Info("Redis 连接成功", zap.String("address", cfg.Address), zap.Int("db", cfg.DB))
	return rdb, nil
}
