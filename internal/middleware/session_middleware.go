package middleware

import (
	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/session"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// SessionRequired is a Fiber middleware that admits only requests carrying a valid
// session cookie. The user is not looked up: a valid token is enough.
func SessionRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := sessions.Read(c)
		if res.Status != session.StatusValid {
			appErr := apperror.AuthenticationRequired()
			return c.Status(appErr.Status).JSON(fiber.Map{
				"success": false,
				"message": appErr.Message,
				"error":   appErr.Code,
			})
		}

		// Store the user ID in Fiber context for subsequent handlers
		c.Locals(userIDKey, res.UserID)

		return c.Next()
	}
}

// UserID returns the user ID stored by SessionRequired, or 0 outside a guarded route.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}
