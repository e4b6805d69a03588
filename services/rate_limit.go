package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/shared"
)

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	BlockTime    time.Duration
	Message      string
}

// rateLimitBackend counts one request against config and decides whether it may pass.
type rateLimitBackend interface {
	allow(ctx context.Context, identifier string, config *RateLimitConfig, now time.Time) (bool, *dto.RateLimitInfo, error)
}

type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex
	backend rateLimitBackend
	now     func() time.Time

	dbSvc *DatabaseService
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = defaultRateLimitConfigs()
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)

	redisSvc := svc.Service(REDIS_SVC).(*RedisService)
	if redisSvc.Enabled() {
		svc.backend = &redisRateLimiter{redis: redisSvc}
		return nil
	}

	svc.backend = &dbRateLimiter{db: svc.dbSvc}
	go svc.startCleanupJob()
	return nil
}

// NewDBRateLimitService builds a limiter on the database counters, outside of the context.
func NewDBRateLimitService(db *DatabaseService, now func() time.Time) *RateLimitService {
	if now == nil {
		now = time.Now
	}
	return &RateLimitService{
		configs: defaultRateLimitConfigs(),
		backend: &dbRateLimiter{db: db},
		now:     now,
		dbSvc:   db,
	}
}

func defaultRateLimitConfigs() map[string]*RateLimitConfig {
	return map[string]*RateLimitConfig{
		shared.EndpointLessonResult: {
			EndpointType: shared.EndpointLessonResult,
			MaxRequests:  30,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Message:      "Too many lesson results. Please take a break.",
		},
		shared.EndpointAPIGeneral: {
			EndpointType: shared.EndpointAPIGeneral,
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Message:      "Too many requests. Please slow down.",
		},
	}
}

// IsAllowed counts a request of identifier against endpointType. Unknown
// endpoint types are always allowed.
func (svc *RateLimitService) IsAllowed(ctx context.Context, identifier, endpointType string) (bool, *dto.RateLimitInfo, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists {
		return true, &dto.RateLimitInfo{Allowed: true, Remaining: -1}, nil
	}

	return svc.backend.allow(ctx, identifier, config, svc.now())
}

func (svc *RateLimitService) Message(endpointType string) string {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	if config, exists := svc.configs[endpointType]; exists {
		return config.Message
	}
	return "Too many requests. Please try again later."
}

// SetLimit overrides the request budget of an endpoint type.
func (svc *RateLimitService) SetLimit(endpointType string, maxRequests int, window time.Duration) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if config, exists := svc.configs[endpointType]; exists {
		config.MaxRequests = maxRequests
		config.WindowSize = window
	}
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := svc.dbSvc.CleanupOldRecords(); err != nil {
			log.WithError(err).Error("Rate limit cleanup failed")
		}
	}
}

type redisRateLimiter struct {
	redis *RedisService
}

func (r *redisRateLimiter) allow(ctx context.Context, identifier string, config *RateLimitConfig, now time.Time) (bool, *dto.RateLimitInfo, error) {
	counterKey := fmt.Sprintf("rate_limit:%s:%s", config.EndpointType, identifier)
	blockKey := fmt.Sprintf("rate_limit:blocked:%s:%s", config.EndpointType, identifier)

	blockedFor, err := r.redis.TTL(ctx, blockKey)
	if err != nil {
		return false, nil, err
	}
	if blockedFor > 0 {
		blockedUntil := now.Add(blockedFor)
		return false, &dto.RateLimitInfo{ResetTime: &blockedUntil, BlockedUntil: &blockedUntil}, nil
	}

	count, left, err := r.redis.IncrementWindow(ctx, counterKey, config.WindowSize)
	if err != nil {
		return false, nil, err
	}

	if count > int64(config.MaxRequests) {
		blockedUntil := now.Add(config.BlockTime)
		if err := r.redis.Set(ctx, blockKey, "1", config.BlockTime); err != nil {
			return false, nil, err
		}
		return false, &dto.RateLimitInfo{ResetTime: &blockedUntil, BlockedUntil: &blockedUntil}, nil
	}

	resetTime := now.Add(left)
	return true, &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: config.MaxRequests - int(count),
		ResetTime: &resetTime,
	}, nil
}

// dbRateLimiter keeps one counter row per identifier and endpoint type.
type dbRateLimiter struct {
	db *DatabaseService
	mu sync.Mutex
}

func (d *dbRateLimiter) allow(_ context.Context, identifier string, config *RateLimitConfig, now time.Time) (bool, *dto.RateLimitInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rateLimit, err := d.db.GetRateLimit(identifier, config.EndpointType)
	if err != nil {
		return false, nil, err
	}

	if rateLimit != nil && rateLimit.BlockedUntil != nil && now.Before(*rateLimit.BlockedUntil) {
		return false, &dto.RateLimitInfo{
			ResetTime:    rateLimit.BlockedUntil,
			BlockedUntil: rateLimit.BlockedUntil,
		}, nil
	}

	if rateLimit == nil || rateLimit.WindowStart.Before(now.Add(-config.WindowSize)) {
		if rateLimit == nil {
			rateLimit = &model.RateLimit{Identifier: identifier, EndpointType: config.EndpointType}
		}
		rateLimit.RequestCount = 1
		rateLimit.WindowStart = now
		rateLimit.BlockedUntil = nil

		if err := d.db.SaveRateLimit(rateLimit); err != nil {
			return false, nil, err
		}

		resetTime := now.Add(config.WindowSize)
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Remaining: config.MaxRequests - 1,
			ResetTime: &resetTime,
		}, nil
	}

	if rateLimit.RequestCount >= config.MaxRequests {
		blockedUntil := now.Add(config.BlockTime)
		rateLimit.BlockedUntil = &blockedUntil

		if err := d.db.SaveRateLimit(rateLimit); err != nil {
			return false, nil, err
		}

		return false, &dto.RateLimitInfo{
			ResetTime:    &blockedUntil,
			BlockedUntil: &blockedUntil,
		}, nil
	}

	rateLimit.RequestCount++
	if err := d.db.SaveRateLimit(rateLimit); err != nil {
		return false, nil, err
	}

	resetTime := rateLimit.WindowStart.Add(config.WindowSize)
	return true, &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: config.MaxRequests - rateLimit.RequestCount,
		ResetTime: &resetTime,
	}, nil
}
