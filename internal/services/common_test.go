package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Balu143865/AI-Placement-Predict/internal/database"
	"github.com/Balu143865/AI-Placement-Predict/internal/mlclient"
	"github.com/Balu143865/AI-Placement-Predict/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database. The named shared
// cache keeps all pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func testScore() *mlclient.ScoreResult {
	return &mlclient.ScoreResult{
		PlacementProbability: 68,
		WillBePlaced:         true,
		Confidence:           "High",
		ReadinessScore:       72,
		WeakSkills:           []string{"Projects"},
		RecommendationLevel:  []byte(`{"level":"Moderate","color":"#fbbf24","icon":"up","message":"Good potential.","urgency":"Medium"}`),
		AIRecommendations:    []byte(`["Practice Mock Interviews weekly","Enhance LinkedIn presence"]`),
		StrongestSkill:       "CGPA",
		WeakestSkill:         "Projects",
		PlacementCategory:    "Tier-2 Companies",
		SkillAnalysis:        []byte(`{"scores":{"cgpa":85,"dsa_score":75}}`),
		RoadmapTasks:         []byte(`[{"day":1,"task":"Build 1 Mini React Project","category":"Projects","priority":3,"duration":"2h"}]`),
	}
}

func validInputs() mlclient.Inputs {
	return mlclient.Inputs{CGPA: 8.5, DSAScore: 75, Projects: 3, Communication: 7, Internships: 1}
}

// setCreatedAt rewrites a prediction's timestamp so ordering tests do not
// depend on insertion speed.
func setCreatedAt(t *testing.T, db *gorm.DB, id uuid.UUID, ts time.Time) {
	t.Helper()
	if err := db.Model(&models.Prediction{}).Where("id = ?", id).Update("created_at", ts).Error; err != nil {
		t.Fatalf("failed to set created_at: %v", err)
	}
}
