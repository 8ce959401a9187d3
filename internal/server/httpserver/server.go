// Package httpserver exposes the task manager REST API.
package httpserver

import (
	"time"

	"github.com/avbelov/taskboard/internal/service"
	"github.com/avbelov/taskboard/internal/token"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth    service.AuthService
	tasks   service.TaskService
	tokens  *token.Service
	log     *zap.Logger
	started time.Time
}

// New constructs a server with injected services.
func New(auth service.AuthService, tasks service.TaskService, tokens *token.Service, log *zap.Logger) *Server {
	return &Server{auth: auth, tasks: tasks, tokens: tokens, log: log, started: time.Now()}
}

// App builds the fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "taskboard",
		DisableStartupMessage: true,
	})

	app.Use(Recover(s.log))
	app.Use(Logging(s.log))

	app.Get("/health", s.handleHealth)

	api := app.Group("/api")
	api.Get("/", s.handleInfo)

	auth := api.Group("/auth")
	auth.Post("/register", s.handleRegister)
	auth.Post("/login", s.handleLogin)

	tasks := api.Group("/tasks", AuthRequired(s.tokens, s.log))
	tasks.Post("/", s.handleCreateTask)
	tasks.Get("/", s.handleListTasks)
	tasks.Get("/:id", s.handleGetTask)
	tasks.Put("/:id", s.handleUpdateTask)
	tasks.Delete("/:id", s.handleDeleteTask)

	return app
}

// handleInfo describes the API surface.
func (s *Server) handleInfo(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Task Manager API",
		"status":  "Server is running",
		"endpoints": fiber.Map{
			"auth":  "/api/auth (POST /register, POST /login)",
			"tasks": "/api/tasks (GET, POST, PUT, DELETE)",
		},
	})
}

// handleHealth reports liveness for monitoring.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}
