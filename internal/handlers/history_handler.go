package handlers

import (
	"errors"
	"strconv"

	"github.com/Balu143865/AI-Placement-Predict/internal/dto"
	"github.com/Balu143865/AI-Placement-Predict/internal/middleware"
	"github.com/Balu143865/AI-Placement-Predict/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type HistoryHandler struct {
	predictions *services.PredictionService
}

func NewHistoryHandler(predictions *services.PredictionService) *HistoryHandler {
	return &HistoryHandler{predictions: predictions}
}

// List handles GET /api/history?limit=N
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	history, err := h.predictions.History(userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Error fetching history"))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"count":  len(history),
		"data":   history,
	})
}

// Get handles GET /api/history/:id
func (h *HistoryHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// A malformed id is as unfindable as a foreign one.
		return c.Status(fiber.StatusNotFound).JSON(dto.Error("Prediction not found"))
	}

	pred, err := h.predictions.ByID(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Prediction not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Error fetching prediction details"))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   pred,
	})
}

// Delete handles DELETE /api/history/:id
func (h *HistoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Error("Prediction not found"))
	}

	if err := h.predictions.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Prediction not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Error deleting prediction"))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Prediction deleted successfully",
	})
}
