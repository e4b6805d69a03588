package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vooky-app/vooky_api/shared"
)

type TokenVerifier interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	VerifyJWTToken(token string) (uint, error)
}

// RequiredAuth rejects requests without a valid bearer token and stores the
// caller's id in locals under shared.UserID.
func RequiredAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := verifier.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Missing or malformed authorization header", nil)
		}

		userID, err := verifier.VerifyJWTToken(token)
		if err != nil {
			log.Debug().Err(err).Str("ip", c.IP()).Msg("Rejected bearer token")
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Invalid or expired token", nil)
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

func UserIDFrom(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(shared.UserID).(uint)
	return userID, ok && userID != 0
}
