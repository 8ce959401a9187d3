package httpserver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid/v5"
)

// userIDKey is the fiber.Ctx locals key holding the authenticated user ID.
const userIDKey = "tb.userID"

// setUserID stores the authenticated user ID on the request context.
func setUserID(c *fiber.Ctx, id uuid.UUID) {
	c.Locals(userIDKey, id)
}

// userIDFromCtx fetches the authenticated user ID set by the auth middleware.
func userIDFromCtx(c *fiber.Ctx) (uuid.UUID, bool) {
	v := c.Locals(userIDKey)
	if v == nil {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
