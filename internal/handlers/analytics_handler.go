package handlers

import (
	"github.com/Balu143865/AI-Placement-Predict/internal/dto"
	"github.com/Balu143865/AI-Placement-Predict/internal/middleware"
	"github.com/Balu143865/AI-Placement-Predict/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview handles GET /api/analytics
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	overview, err := h.analytics.OverviewFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Error fetching analytics"))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   overview,
	})
}

// Summary handles GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	summary, err := h.analytics.SummaryFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Error fetching summary"))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   summary,
	})
}
