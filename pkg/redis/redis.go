package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/config"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"github.com/redis/go-redis/v9"
)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// DenylistToken marks a token as revoked until its natural expiry. Used on
// logout so the session pointer cannot be reused.
func DenylistToken(ctx context.Context, token string, expiry time.Duration) error {
	key := fmt.Sprintf("denylist:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to denylist token", err)
		return err
	}

	logger.Debug("Token denylisted", map[string]interface{}{
		"expiry": expiry.String(),
	})
	return nil
}

// IsTokenDenylisted checks whether a token was revoked.
func IsTokenDenylisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("denylist:%s", token)
	val, err := client.Get(ctx, key).Result()

	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token denylist", err)
		return false, err
	}

	return val == "revoked", nil
}
