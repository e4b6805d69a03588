package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/shared"
)

type Limiter interface {
	IsAllowed(ctx context.Context, identifier, endpointType string) (bool, *dto.RateLimitInfo, error)
	Message(endpointType string) string
}

// UserRateLimit limits by the authenticated user, falling back to the client IP.
func UserRateLimit(limiter Limiter, endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := "ip:" + c.IP()
		if userID, ok := UserIDFrom(c); ok {
			identifier = fmt.Sprintf("user:%d", userID)
		}
		return limit(c, limiter, identifier, endpointType)
	}
}

// IPRateLimit applies the general budget per client address.
func IPRateLimit(limiter Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return limit(c, limiter, "ip:"+c.IP(), shared.EndpointAPIGeneral)
	}
}

func limit(c *fiber.Ctx, limiter Limiter, identifier, endpointType string) error {
	allowed, info, err := limiter.IsAllowed(c.UserContext(), identifier, endpointType)
	if err != nil {
		// fail open
		log.Error().Err(err).Str("identifier", identifier).Str("endpoint_type", endpointType).Msg("Rate limit check failed")
		return c.Next()
	}

	addRateLimitHeaders(c, info)

	if !allowed {
		return handleRateLimitExceeded(c, limiter.Message(endpointType), info)
	}
	return c.Next()
}

func addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil {
		return
	}

	if info.Remaining >= 0 {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}

	if info.BlockedUntil != nil {
		if retryAfter := int(time.Until(*info.BlockedUntil).Seconds()); retryAfter > 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		}
	}
}

func handleRateLimitExceeded(c *fiber.Ctx, message string, info *dto.RateLimitInfo) error {
	response := fiber.Map{
		"error":   "Rate limit exceeded",
		"message": message,
	}

	if info != nil && info.BlockedUntil != nil {
		response["blocked_until"] = info.BlockedUntil.Unix()
		response["retry_after"] = int(time.Until(*info.BlockedUntil).Seconds())
	}

	return shared.ResponseJSON(c, http.StatusTooManyRequests, message, response)
}
