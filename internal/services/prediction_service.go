package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Balu143865/AI-Placement-Predict/internal/mlclient"
	"github.com/Balu143865/AI-Placement-Predict/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 10

// PredictionService is the prediction store: one immutable record per
// scoring request, visible to and deletable by its owner only.
type PredictionService struct {
	db *gorm.DB
}

func NewPredictionService(db *gorm.DB) *PredictionService {
	return &PredictionService{db: db}
}

// Create validates the inputs, then persists them verbatim together with the
// normalized ML outputs. Returns a ValidationError listing every violated
// field when any input is out of range.
func (s *PredictionService) Create(userID uuid.UUID, in mlclient.Inputs, score *mlclient.ScoreResult) (*models.Prediction, error) {
	if err := validateInputs(in); err != nil {
		return nil, err
	}

	pred := models.Prediction{
		ID:     uuid.New(),
		UserID: userID,

		CGPA:          in.CGPA,
		DSAScore:      in.DSAScore,
		Projects:      in.Projects,
		Communication: in.Communication,
		Internships:   in.Internships,

		PlacementProbability: score.PlacementProbability,
		ReadinessScore:       score.ReadinessScore,
		RecommendationLevel:  datatypes.JSON(score.RecommendationLevel),
		PlacementCategory:    defaultString(score.PlacementCategory, "Not Specified"),
		StrongestSkill:       defaultString(score.StrongestSkill, "N/A"),
		WeakestSkill:         defaultString(score.WeakestSkill, "N/A"),
		SkillAnalysis:        datatypes.JSON(score.SkillAnalysis),
		AIRecommendations:    datatypes.JSON(score.AIRecommendations),
		RoadmapTasks:         datatypes.JSON(score.RoadmapTasks),

		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.Create(&pred).Error; err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	return &pred, nil
}

// History returns the owner's predictions, newest first, capped at limit.
func (s *PredictionService) History(userID uuid.UUID, limit int) ([]models.Prediction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var predictions []models.Prediction
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&predictions).Error
	return predictions, err
}

// ByID looks a prediction up by id and owner. A foreign id and a nonexistent
// id both yield ErrNotFound.
func (s *PredictionService) ByID(userID, id uuid.UUID) (*models.Prediction, error) {
	var pred models.Prediction
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&pred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pred, nil
}

// Delete removes an owned prediction. Deleting an already-deleted or foreign
// id yields ErrNotFound, never a different error.
func (s *PredictionService) Delete(userID, id uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Prediction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// validateInputs re-checks the documented ranges at the store boundary and
// reports every violation, not just the first.
func validateInputs(in mlclient.Inputs) error {
	fields := make(map[string]string)

	if in.CGPA < 0 {
		fields["cgpa"] = "CGPA cannot be negative"
	} else if in.CGPA > 10 {
		fields["cgpa"] = "CGPA cannot exceed 10"
	}
	if in.DSAScore < 0 {
		fields["dsa_score"] = "DSA score cannot be negative"
	} else if in.DSAScore > 100 {
		fields["dsa_score"] = "DSA score cannot exceed 100"
	}
	if in.Projects < 0 {
		fields["projects"] = "Projects cannot be negative"
	}
	if in.Communication < 0 {
		fields["communication"] = "Communication score cannot be negative"
	} else if in.Communication > 10 {
		fields["communication"] = "Communication score cannot exceed 10"
	}
	if in.Internships < 0 {
		fields["internships"] = "Internships cannot be negative"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
