package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/shared"
)

var ErrRedisDisabled = errors.New("redis client not initialized")

type RedisService struct {
	appContext.DefaultService
	redis *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	if os.Getenv("REDIS_DISABLED") != "true" {
		svc.initRedisClient()
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	if svc.redis == nil {
		log.Warn("Redis disabled, pool cache and redis rate limiting are off")
		return nil
	}

	if _, err := svc.redis.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

func (svc *RedisService) Shutdown() {
	if svc.redis != nil {
		_ = svc.redis.Close()
	}
}

func (svc *RedisService) initRedisClient() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
}

func (svc *RedisService) Enabled() bool {
	return svc != nil && svc.redis != nil
}

func (svc *RedisService) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !svc.Enabled() {
		return ErrRedisDisabled
	}

	data, err := shared.JSONAPI.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return svc.redis.Set(ctx, key, data, expiration).Err()
}

// GetJSON reports false on a cache miss.
func (svc *RedisService) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !svc.Enabled() {
		return false, ErrRedisDisabled
	}

	result, err := svc.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, shared.JSONAPI.Unmarshal(result, dest)
}

func (svc *RedisService) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if !svc.Enabled() {
		return ErrRedisDisabled
	}
	return svc.redis.Set(ctx, key, value, expiration).Err()
}

// IncrementWindow bumps a fixed-window counter, starting the window on the
// first hit, and returns the count and the time left in the window.
func (svc *RedisService) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if !svc.Enabled() {
		return 0, 0, ErrRedisDisabled
	}

	pipe := svc.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left < 0 {
		left = window
	}
	return incr.Val(), left, nil
}

// TTL is zero when the key does not exist or never expires.
func (svc *RedisService) TTL(ctx context.Context, key string) (time.Duration, error) {
	if !svc.Enabled() {
		return 0, ErrRedisDisabled
	}

	ttl, err := svc.redis.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		return 0, err
	}
	return ttl, nil
}
