package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSONAPI is shared with fiber as its encoder and decoder.
var JSONAPI = sonic.Config{
	EscapeHTML:       false,
	SortMapKeys:      false,
	CompactMarshaler: true,
}.Froze()

var (
	successResponse       = mustMarshal(Response{Code: 200, Message: "Success"})
	notFoundResponse      = mustMarshal(Response{Code: 404, Message: "Not Found"})
	unauthorizedResponse  = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	badRequestResponse    = mustMarshal(Response{Code: 400, Message: "Bad Request"})
	internalErrorResponse = mustMarshal(Response{Code: 500, Message: "Internal Server Error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := JSONAPI.Marshal(v)
	return b
}

func cached(httpCode int, message string) []byte {
	switch {
	case httpCode == 200 && message == "Success":
		return successResponse
	case httpCode == 400 && message == "Bad Request":
		return badRequestResponse
	case httpCode == 401 && message == "Unauthorized":
		return unauthorizedResponse
	case httpCode == 404 && message == "Not Found":
		return notFoundResponse
	case httpCode == 500 && message == "Internal Server Error":
		return internalErrorResponse
	}
	return nil
}

// ResponseJSON writes the {code,message,data} envelope.
func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	if data == nil {
		if body := cached(httpCode, message); body != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Status(httpCode).Send(body)
		}
	}

	return WriteJSON(c, httpCode, Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
}

// WriteJSON writes v as the whole body, without the envelope.
func WriteJSON(c *fiber.Ctx, httpCode int, v interface{}) error {
	body, err := JSONAPI.Marshal(v)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(body)
}

func ResponseNotFound(c *fiber.Ctx) error {
	return ResponseJSON(c, fiber.StatusNotFound, "Not Found", nil)
}

func ResponseInternalError(c *fiber.Ctx) error {
	return ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
}
