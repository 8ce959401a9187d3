package httpserver

import (
	"time"

	"github.com/avbelov/taskboard/internal/model"
	"github.com/avbelov/taskboard/internal/query"
	"github.com/gofiber/fiber/v2"
)

// taskRequest is shared by create and update. Pointers distinguish absent
// fields from explicitly supplied ones (sparse patch semantics).
type taskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// handleCreateTask stores a new task owned by the authenticated user.
func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(messageResponse{Message: "Access denied. No token provided."})
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(messageResponse{Message: "Invalid request body"})
	}

	draft := model.TaskDraft{
		Title:       deref(req.Title),
		Description: deref(req.Description),
		Status:      deref(req.Status),
		Priority:    deref(req.Priority),
		DueDate:     req.DueDate,
	}
	task, err := s.tasks.Create(c.UserContext(), userID, draft)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(taskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

// handleListTasks returns one page of the user's tasks with filtering and search.
func (s *Server) handleListTasks(c *fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(messageResponse{Message: "Access denied. No token provided."})
	}

	params := query.Params{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	}
	tasks, pg, err := s.tasks.List(c.UserContext(), userID, params)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(taskListResponse{
		Message:    "Tasks retrieved successfully",
		Tasks:      tasks,
		Pagination: pg,
	})
}

// handleGetTask returns a single owned task.
func (s *Server) handleGetTask(c *fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(messageResponse{Message: "Access denied. No token provided."})
	}

	task, err := s.tasks.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(taskResponse{
		Message: "Task retrieved successfully",
		Task:    task,
	})
}

// handleUpdateTask applies a sparse patch to an owned task.
func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(messageResponse{Message: "Access denied. No token provided."})
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(messageResponse{Message: "Invalid request body"})
	}

	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	task, err := s.tasks.Update(c.UserContext(), userID, c.Params("id"), patch)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(taskResponse{
		Message: "Task updated successfully",
		Task:    task,
	})
}

// handleDeleteTask removes an owned task and returns the deleted snapshot.
func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(messageResponse{Message: "Access denied. No token provided."})
	}

	task, err := s.tasks.Delete(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(taskResponse{
		Message: "Task deleted successfully",
		Task:    task,
	})
}
