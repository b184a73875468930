package handlers

import (
	"errors"

	"github.com/Balu143865/AI-Placement-Predict/internal/dto"
	"github.com/Balu143865/AI-Placement-Predict/internal/middleware"
	"github.com/Balu143865/AI-Placement-Predict/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService      *services.AuthService
	analyticsService *services.AnalyticsService
}

func NewAuthHandler(authService *services.AuthService, analyticsService *services.AnalyticsService) *AuthHandler {
	return &AuthHandler{authService: authService, analyticsService: analyticsService}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	data, err := h.authService.Register(&req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Status:  "error",
				Message: "Please provide name, email, and password",
				Errors:  verr.Fields,
			})
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Server error during registration"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "User registered successfully",
		"data":    data,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Please provide email and password"))
	}

	data, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Server error during login"))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"data":    data,
	})
}

// Profile handles GET /api/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	user, err := h.authService.UserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Error fetching profile"))
	}

	stats, err := h.analyticsService.AveragesFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Error fetching profile"))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user":  user,
			"stats": stats,
		},
	})
}
