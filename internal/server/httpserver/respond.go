package httpserver

import (
	"errors"

	"github.com/avbelov/taskboard/internal/errs"
	"github.com/avbelov/taskboard/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// messageResponse is the minimal envelope; every response carries a message.
type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    model.PublicUser `json:"user"`
}

type taskResponse struct {
	Message string      `json:"message"`
	Task    *model.Task `json:"task"`
}

type taskListResponse struct {
	Message    string           `json:"message"`
	Tasks      []model.Task     `json:"tasks"`
	Pagination model.Pagination `json:"pagination"`
}

// fail translates service errors into HTTP responses. This is the only
// boundary where internal errors become client-visible; anything outside
// the taxonomy is logged in full and surfaced as a generic 500.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: "Invalid task ID format"})
	case errors.Is(err, errs.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(messageResponse{Message: "Invalid email or password"})
	case errors.Is(err, errs.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(messageResponse{Message: "Task not found"})
	case errors.Is(err, errs.ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(messageResponse{Message: "User with this email or username already exists"})
	case errors.Is(err, errs.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(messageResponse{Message: "Too many login attempts. Please try again later."})
	default:
		s.log.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		return c.Status(fiber.StatusInternalServerError).JSON(messageResponse{Message: "Internal server error"})
	}
}
