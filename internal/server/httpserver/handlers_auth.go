package httpserver

import (
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates a new account and returns an issued token.
func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(messageResponse{Message: "Invalid request body"})
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(messageResponse{Message: "Please provide username, email, and password"})
	}

	signed, u, err := s.auth.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{
		Message: "User registered successfully",
		Token:   signed,
		User:    u.Public(),
	})
}

// handleLogin authenticates by email and password.
func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(messageResponse{Message: "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(messageResponse{Message: "Please provide email and password"})
	}

	signed, u, err := s.auth.LoginWithIP(c.UserContext(), req.Email, req.Password, c.IP())
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(authResponse{
		Message: "Login successful",
		Token:   signed,
		User:    u.Public(),
	})
}
