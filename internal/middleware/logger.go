package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"taskboard/pkg/apperr"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Recovery logs every inbound request and converts panics into a 500 envelope.
func Recovery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				errMsg := fmt.Sprintf("Recovered from panic: %v", r)
				logger.ErrorLogger.Error(errMsg, zap.String("stack", string(debug.Stack())))
				c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": errMsg,
					"errors":  []string{},
				})
			}
		}()
		logger.RequestLogger.Info("Incoming request",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
		)
		return c.Next()
	}
}

// ErrorResponder is the app-wide fiber.ErrorHandler. Every error a handler
// returns funnels through here and becomes the failure envelope; anything
// untyped defaults to 500.
func ErrorResponder(devMode bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		statusCode := fiber.StatusInternalServerError
		message := "Internal Server Error"
		details := []string{}

		var apiErr *apperr.ApiError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &apiErr):
			statusCode = apiErr.StatusCode
			message = apiErr.Message
			if apiErr.Errors != nil {
				details = apiErr.Errors
			}
		case errors.As(err, &fiberErr):
			statusCode = fiberErr.Code
			message = fiberErr.Message
		default:
			logger.ErrorLogger.Error("Unhandled error",
				zap.String("url", c.OriginalURL()),
				zap.Error(err),
			)
		}

		body := fiber.Map{
			"success": false,
			"message": message,
			"errors":  details,
		}
		if devMode {
			body["stack"] = err.Error() + "\n" + string(debug.Stack())
		}
		return c.Status(statusCode).JSON(body)
	}
}
