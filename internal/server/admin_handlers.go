package server

import (
	"inkwell/internal/apperr"
	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /admins/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req validation.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.ValidationMsg("Invalid request body"))
	}

	if fields := validation.Check(&req); fields != nil {
		return apperr.Respond(c, apperr.Validation(fields))
	}

	// The signup key gates account creation
	if req.SignUpKey == "" || req.SignUpKey != s.config.SignupSecret {
		return apperr.Respond(c, apperr.ValidationMsg("Your sign up key is missing or incorrect"))
	}

	// Check if username is already taken
	existing, err := s.adminRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if existing != nil {
		return apperr.Respond(c, apperr.Conflict("Username already exist"))
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	admin := &models.Admin{
		FullName: req.FullName,
		Username: req.Username,
		Password: hashed,
	}
	if err := s.adminRepo.Create(c.Context(), admin); err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "Signup success",
		"user": admin,
	})
}

// Login handles POST /admins/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req validation.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.ValidationMsg("Invalid request body"))
	}

	if fields := validation.Check(&req); fields != nil {
		return apperr.Respond(c, apperr.Validation(fields))
	}

	// Unknown username and wrong password are indistinguishable
	admin, err := s.strategies.Local.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if admin == nil {
		return apperr.Respond(c, apperr.InvalidCredentials())
	}

	token, err := s.strategies.Bearer.IssueToken(admin)
	if err != nil {
		return apperr.Respond(c, apperr.Internal(err))
	}

	return c.JSON(fiber.Map{
		"user":  admin,
		"token": token,
	})
}

// Me handles GET /admins/me
func (s *Server) Me(c *fiber.Ctx) error {
	admin, err := s.requireAdmin(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	// Re-fetch with populated posts
	populated, err := s.adminRepo.GetByID(c.Context(), admin.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"user": populated})
}
