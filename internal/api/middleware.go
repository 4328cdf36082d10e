package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// AccessLog writes one line per request.
func AccessLog(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		log.Infow("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
		)
		return err
	}
}

// ErrorHandler logs unexpected failures and answers with a bare 500.
func ErrorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).SendString(fe.Message)
		}
		log.Errorw("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
}
