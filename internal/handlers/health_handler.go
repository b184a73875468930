package handlers

import (
	"github.com/Balu143865/AI-Placement-Predict/internal/database"
	"github.com/Balu143865/AI-Placement-Predict/internal/mlclient"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ml *mlclient.Client
}

func NewHealthHandler(ml *mlclient.Client) *HealthHandler {
	return &HealthHandler{ml: ml}
}

// Root handles GET /
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Placement AI backend is running",
		"features": []string{
			"user_authentication",
			"prediction_history",
			"analytics_dashboard",
			"readiness_score",
			"skill_gap_analyzer",
			"smart_roadmap",
		},
		"endpoints": fiber.Map{
			"public":    []string{"GET /", "GET /api/health", "POST /api/register", "POST /api/login", "POST /api/analyze"},
			"protected": []string{"POST /api/predict", "GET /api/history", "GET /api/analytics", "GET /api/profile"},
		},
	})
}

// Check handles GET /api/health: reports DB status and probes the ML service.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "connected"
	if err := database.Ping(); err != nil {
		dbStatus = "disconnected"
	}

	mlBody, err := h.ml.Health(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": "Some services are unavailable",
			"ml_api":  "unavailable",
			"database": fiber.Map{
				"status": dbStatus,
				"type":   "PostgreSQL",
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "All services are running",
		"ml_api":  jsonOrString(mlBody),
		"database": fiber.Map{
			"status": dbStatus,
			"type":   "PostgreSQL",
		},
	})
}
