package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/evaluaasi/support-gateway/internal/config"
)

// ErrCacheMiss is returned by GetBytes when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Redis wraps the go-redis client used as the shared query cache tier.
type Redis struct {
	Client *redis.Client
	prefix string
}

// NewRedis connects to Redis using the provided configuration. An unreachable
// server is logged, not fatal: the gateway keeps its in-process cache.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return &Redis{Client: client, prefix: "support-gateway:"}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetBytes reads a raw value.
func (r *Redis) GetBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := r.Client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

// SetBytes writes a raw value with a TTL.
func (r *Redis) SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, r.prefix+key, val, ttl).Err()
}

// Delete removes one key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, r.prefix+key).Err()
}

// DeletePrefix removes every key starting with prefix.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.Client.Scan(ctx, 0, r.prefix+prefix+"*", 200).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 200 {
			if err := r.Client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.Client.Del(ctx, batch...).Err()
	}
	return nil
}
