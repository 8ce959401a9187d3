package httpserver

import (
	"runtime/debug"
	"strings"
	"time"

	"github.com/avbelov/taskboard/internal/token"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logging returns middleware for structured request logging.
// Only metadata is logged, never bodies or tokens.
func Logging(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("http",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("dur", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// Recover returns middleware that converts panics into generic 500 responses.
func Recover(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Path()),
				)
				err = c.Status(fiber.StatusInternalServerError).
					JSON(messageResponse{Message: "Internal server error"})
			}
		}()
		return c.Next()
	}
}

// AuthRequired verifies the bearer token and attaches the resolved user ID
// to the request context. It is the sole place identity is established; the
// reason a token failed is logged but never exposed to the client.
func AuthRequired(tokens *token.Service, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(messageResponse{Message: "Access denied. No token provided."})
		}

		raw := bearerToken(header)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(messageResponse{Message: "Access denied. Invalid token format."})
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			log.Debug("token rejected", zap.Error(err), zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).
				JSON(messageResponse{Message: "Invalid or expired token. Please login again."})
		}

		setUserID(c, userID)
		return c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// value; empty result means the header is malformed.
func bearerToken(header string) string {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(rest)
}
