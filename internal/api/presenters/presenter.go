package presenters

import "github.com/gofiber/fiber/v2"

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var detail string
	if err != nil {
		detail = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   detail,
	})
}
