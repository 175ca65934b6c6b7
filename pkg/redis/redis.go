package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tmoreau/boutique-backend/config"
	"github.com/tmoreau/boutique-backend/pkg/logger"
)

const settingsCacheKey = "settings:1"

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// CacheSettings stores the serialized settings payload with a TTL.
func CacheSettings(ctx context.Context, payload []byte, expiry time.Duration) error {
	err := client.Set(ctx, settingsCacheKey, payload, expiry).Err()
	if err != nil {
		logger.Error("Failed to cache settings", err, nil)
		return err
	}
	return nil
}

// GetCachedSettings returns the cached settings payload, or nil when absent.
func GetCachedSettings(ctx context.Context) ([]byte, error) {
	val, err := client.Get(ctx, settingsCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read cached settings", err, nil)
		return nil, err
	}
	return val, nil
}

// InvalidateSettings drops the cached settings payload.
func InvalidateSettings(ctx context.Context) error {
	err := client.Del(ctx, settingsCacheKey).Err()
	if err != nil {
		logger.Error("Failed to invalidate settings cache", err, nil)
		return err
	}
	logger.Debug("Settings cache invalidated", nil)
	return nil
}
