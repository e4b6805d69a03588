package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/game/progress"
	"github.com/vooky-app/vooky_api/middleware"
	"github.com/vooky-app/vooky_api/shared"
)

// ErrorHandler is the fiber error handler of the API.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *progress.ValidationError
	if errors.As(err, &validationErr) {
		return shared.WriteJSON(c, fiber.StatusBadRequest, dto.NewValidationErrorResponse(validationErr.Field, validationErr.Field+" "+validationErr.Message))
	}

	if appErr, ok := shared.GetAppError(err); ok {
		if body, ok := appErr.Data.(*dto.InsufficientDataResponse); ok {
			return shared.WriteJSON(c, appErr.StatusCode, body)
		}
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Str("ip", c.IP()).Msg("Unhandled error")
	return shared.ResponseInternalError(c)
}

func idParam(c *fiber.Ctx, name, label string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, shared.NewBadRequestError(err, "Invalid "+label+" id")
	}
	return uint(id), nil
}

func callerID(c *fiber.Ctx) (uint, error) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return 0, shared.NewUnauthorizedError(nil, "Unauthorized")
	}
	return userID, nil
}
