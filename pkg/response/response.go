// Package response renders the uniform success envelope.
package response

import "github.com/gofiber/fiber/v2"

// Success writes {success, statusCode, data, message} with the given status.
func Success(c *fiber.Ctx, statusCode int, data interface{}, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success":    true,
		"statusCode": statusCode,
		"data":       data,
		"message":    message,
	})
}
