package handlers

import (
	"errors"
	"log/slog"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// writeError renders err as the error envelope. Internal errors are logged with their
// cause and answered with a generic message.
func writeError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	appErr := apperror.From(err)
	if appErr.Status >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err,
		)
	}

	body := fiber.Map{
		"success": false,
		"message": appErr.Message,
		"error":   appErr.Code,
	}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	return c.Status(appErr.Status).JSON(body)
}

// ErrorHandler renders errors that escape the handlers, such as unknown routes and
// recovered panics, in the same envelope.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := apperror.CodeInvalidRequest
			switch fe.Code {
			case fiber.StatusNotFound:
				code = apperror.CodeNotFound
			case fiber.StatusTooManyRequests:
				code = apperror.CodeTooManyAttempts
			}
			if fe.Code < fiber.StatusInternalServerError {
				return c.Status(fe.Code).JSON(fiber.Map{
					"success": false,
					"message": fe.Message,
					"error":   code,
				})
			}
		}
		return writeError(c, logger, err)
	}
}
