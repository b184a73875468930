package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Balu143865/AI-Placement-Predict/internal/dto"
	"github.com/Balu143865/AI-Placement-Predict/internal/middleware"
	"github.com/Balu143865/AI-Placement-Predict/internal/mlclient"
	"github.com/Balu143865/AI-Placement-Predict/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PredictionHandler struct {
	ml          *mlclient.Client
	predictions *services.PredictionService
}

func NewPredictionHandler(ml *mlclient.Client, predictions *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{ml: ml, predictions: predictions}
}

// Predict handles POST /api/predict: validate, score via the ML service,
// persist, respond. Validation failures never reach the ML service; ML
// failures never leave an orphan record.
func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("Unauthorized"))
	}

	var req dto.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
	}

	in := mlclient.Inputs{
		CGPA:          *req.CGPA,
		DSAScore:      *req.DSAScore,
		Projects:      *req.Projects,
		Communication: *req.Communication,
		Internships:   *req.Internships,
	}

	score, err := h.ml.Predict(c.UserContext(), in)
	if err != nil {
		return mlError(c, err)
	}

	pred, err := h.predictions.Create(userID, in, score)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Status:  "error",
				Message: "Validation error",
				Errors:  verr.Fields,
			})
		}
		slog.Error("failed to persist prediction", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Internal server error"))
	}

	return c.JSON(enhancedResponse(pred.ID.String(), score))
}

// Analyze handles POST /api/analyze: public pass-through to the ML service,
// no persistence. Missing fields coerce to zero.
func (h *PredictionHandler) Analyze(c *fiber.Ctx) error {
	var req dto.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}

	body, err := h.ml.Analyze(c.UserContext(), mlclient.Inputs{
		CGPA:          deref(req.CGPA),
		DSAScore:      derefInt(req.DSAScore),
		Projects:      derefInt(req.Projects),
		Communication: derefInt(req.Communication),
		Internships:   derefInt(req.Internships),
	})
	if err != nil {
		return mlError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// mlError maps ML client failures onto the gateway taxonomy: a response the
// service sent is forwarded with its status, an unreachable service is 503.
func mlError(c *fiber.Ctx, err error) error {
	var apiErr *mlclient.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{
			"status":  "error",
			"message": "ML API error",
			"error":   jsonOrString(apiErr.Body),
		})
	}
	if errors.Is(err, mlclient.ErrUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Error(
			"ML API is not available. Please ensure the ML service is running."))
	}
	slog.Error("ml call failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Internal server error"))
}

// enhancedResponse republishes the raw ML fields plus convenience summary
// fields computed at the gateway.
func enhancedResponse(predictionID string, score *mlclient.ScoreResult) fiber.Map {
	weakCount := len(score.WeakSkills)

	skillAnalysis := make(map[string]interface{})
	if len(score.SkillAnalysis) > 0 {
		// Best effort: an unparseable payload just means no merge.
		_ = json.Unmarshal(score.SkillAnalysis, &skillAnalysis)
	}
	skillAnalysis["summary"] = fiber.Map{
		"total_skills":        5,
		"weak_skills_count":   weakCount,
		"strong_skills_count": 5 - weakCount,
		"overall_status":      overallStatus(score.ReadinessScore),
	}

	weakSkills := score.WeakSkills
	if weakSkills == nil {
		weakSkills = []string{}
	}

	return fiber.Map{
		"status":        "success",
		"prediction_id": predictionID,
		"prediction": fiber.Map{
			"placement_probability": score.PlacementProbability,
			"confidence":            score.Confidence,
			"will_be_placed":        score.WillBePlaced,
		},
		"placement_probability": score.PlacementProbability,
		"readiness_score":       score.ReadinessScore,
		"recommendation_level":  rawOrObject(score.RecommendationLevel),
		"ai_recommendations":    rawOrArray(score.AIRecommendations),
		"strongest_skill":       score.StrongestSkill,
		"weakest_skill":         score.WeakestSkill,
		"placement_category":    score.PlacementCategory,
		"weak_skills":           weakSkills,
		"skill_analysis":        skillAnalysis,
		"roadmap_tasks":         rawOrArray(score.RoadmapTasks),
		"timestamp":             time.Now().UTC().Format(time.RFC3339),
		"saved_to_history":      true,
	}
}

func overallStatus(readiness float64) string {
	switch {
	case readiness >= 70:
		return "Ready"
	case readiness >= 50:
		return "Needs Improvement"
	default:
		return "At Risk"
	}
}

// jsonOrString keeps a collaborator body raw when it is valid JSON and
// downgrades it to a string otherwise (an HTML error page from a proxy, say),
// so marshaling the envelope cannot fail.
func jsonOrString(body json.RawMessage) interface{} {
	if json.Valid(body) {
		return body
	}
	return string(body)
}

func rawOrObject(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}

func rawOrArray(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("[]")
	}
	return raw
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
