// Package cache holds the Redis-backed shared tier beneath the in-process
// embedding cache. Redis being down never fails a request; the tier bypasses
// itself and scoring falls back to computing vectors locally.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"skillmatch/internal/config"
)

const keyPrefix = "embedding:"

type RedisVectors struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

// NewRedisVectors connects and pings with a short timeout. An unreachable
// Redis yields a bypassing instance, not an error.
func NewRedisVectors(cfg config.RedisConfig, logger *zap.Logger) *RedisVectors {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing vector tier", zap.Error(err))
		_ = client.Close()
		return &RedisVectors{client: nil, ttl: cfg.TTL, logger: logger}
	}

	return &RedisVectors{client: client, ttl: cfg.TTL, logger: logger}
}

func (r *RedisVectors) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *RedisVectors) warnUnavailableOnce(err error) {
	if r == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing vector tier", zap.Error(err))
	}
}

func (r *RedisVectors) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *RedisVectors) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

// GetVector reports a plain miss both for absent keys and for a bypassed
// tier, so callers need no special handling for either.
func (r *RedisVectors) GetVector(ctx context.Context, hash string) ([]float64, bool, error) {
	if r.isUnavailable() {
		return nil, false, nil
	}
	b, err := r.client.Get(ctx, keyPrefix+hash).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		r.warnUnavailableOnce(err)
		return nil, false, err
	}

	var vec []float64
	if err := json.Unmarshal(b, &vec); err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

func (r *RedisVectors) SetVector(ctx context.Context, hash string, vec []float64) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	ttl := r.ttl
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if err := r.client.Set(ctx, keyPrefix+hash, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}
