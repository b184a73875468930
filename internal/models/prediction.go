package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Prediction is one immutable scoring record per request. Inputs are stored
// exactly as submitted; output payloads are stored verbatim from the ML
// service in JSONB columns and never recomputed locally.
type Prediction struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_predictions_user_created,priority:1" json:"user_id"`

	// Inputs
	CGPA          float64 `gorm:"not null" json:"cgpa"`
	DSAScore      int     `gorm:"not null" json:"dsa_score"`
	Projects      int     `gorm:"not null" json:"projects"`
	Communication int     `gorm:"not null" json:"communication"`
	Internships   int     `gorm:"not null" json:"internships"`

	// Outputs (pass-through from the ML service)
	PlacementProbability float64        `gorm:"not null" json:"placement_probability"`
	ReadinessScore       float64        `gorm:"not null" json:"readiness_score"`
	RecommendationLevel  datatypes.JSON `gorm:"type:jsonb" json:"recommendation_level"`
	PlacementCategory    string         `gorm:"size:100;default:'Not Specified'" json:"placement_category"`
	StrongestSkill       string         `gorm:"size:100;default:'N/A'" json:"strongest_skill"`
	WeakestSkill         string         `gorm:"size:100;default:'N/A'" json:"weakest_skill"`
	SkillAnalysis        datatypes.JSON `gorm:"type:jsonb" json:"skill_analysis"`
	AIRecommendations    datatypes.JSON `gorm:"type:jsonb" json:"ai_recommendations"`
	RoadmapTasks         datatypes.JSON `gorm:"type:jsonb" json:"roadmap_tasks"`

	CreatedAt time.Time `gorm:"index:idx_predictions_user_created,priority:2,sort:desc" json:"created_at"`
}
