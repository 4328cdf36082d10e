package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func JSONMessage(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

// JSONError writes {"error": msg} with the given status.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// JSONValidation answers a rejected payload with 422 and its field errors.
func JSONValidation(c *fiber.Ctx, err error) error {
	var pe *PayloadError
	if !errors.As(err, &pe) {
		pe = &PayloadError{Details: []ValidationError{{Field: "body", Tag: "invalid", Message: err.Error()}}}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": pe.Details})
}

// Attachment sends payload as a downloadable JSON file.
func Attachment(c *fiber.Ctx, filename string, payload interface{}) error {
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.JSON(payload)
}
