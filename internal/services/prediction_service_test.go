package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Balu143865/AI-Placement-Predict/internal/models"
	"github.com/google/uuid"
)

func TestCreate_StoresInputsVerbatim(t *testing.T) {
	svc := NewPredictionService(newTestDB(t))
	owner := uuid.New()

	in := validInputs()
	pred, err := svc.Create(owner, in, testScore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}

	got, err := svc.ByID(owner, pred.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CGPA != in.CGPA || got.DSAScore != in.DSAScore || got.Projects != in.Projects ||
		got.Communication != in.Communication || got.Internships != in.Internships {
		t.Fatalf("inputs not stored verbatim: %+v", got)
	}
	if got.PlacementProbability != 68 || got.ReadinessScore != 72 {
		t.Fatalf("outputs not stored: %+v", got)
	}
	if got.PlacementCategory != "Tier-2 Companies" {
		t.Fatalf("unexpected category %q", got.PlacementCategory)
	}
}

func TestCreate_RejectsOutOfRangeListingEveryField(t *testing.T) {
	db := newTestDB(t)
	svc := NewPredictionService(db)
	owner := uuid.New()

	in := validInputs()
	in.CGPA = 11
	in.DSAScore = 150
	in.Internships = -1

	_, err := svc.Create(owner, in, testScore())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"cgpa", "dsa_score", "internships"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected %s listed in %v", field, verr.Fields)
		}
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected exactly 3 violated fields, got %v", verr.Fields)
	}

	var count int64
	db.Model(&models.Prediction{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid input must not be persisted, found %d rows", count)
	}
}

func TestByID_ForeignIDIndistinguishableFromNonexistent(t *testing.T) {
	svc := NewPredictionService(newTestDB(t))
	ownerA := uuid.New()
	ownerB := uuid.New()

	pred, err := svc.Create(ownerB, validInputs(), testScore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, errForeign := svc.ByID(ownerA, pred.ID)
	_, errMissing := svc.ByID(ownerA, uuid.New())

	if !errors.Is(errForeign, ErrNotFound) || !errors.Is(errMissing, ErrNotFound) {
		t.Fatalf("expected ErrNotFound twice, got %v and %v", errForeign, errMissing)
	}
	if errForeign.Error() != errMissing.Error() {
		t.Fatalf("ownership must not leak: %q vs %q", errForeign, errMissing)
	}
}

func TestHistory_NewestFirstAndCapped(t *testing.T) {
	db := newTestDB(t)
	svc := NewPredictionService(db)
	owner := uuid.New()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		pred, err := svc.Create(owner, validInputs(), testScore())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		setCreatedAt(t, db, pred.ID, base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, pred.ID)
	}

	history, err := svc.History(owner, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected cap at 3, got %d", len(history))
	}
	// Newest first: ids[3], ids[2], ids[1]
	for i, want := range []uuid.UUID{ids[3], ids[2], ids[1]} {
		if history[i].ID != want {
			t.Fatalf("wrong order at %d: got %s want %s", i, history[i].ID, want)
		}
	}
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPredictionService(db)
	owner := uuid.New()

	pred, err := svc.Create(owner, validInputs(), testScore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(owner, pred.ID); err != nil {
		t.Fatalf("first delete must succeed: %v", err)
	}

	var before int64
	db.Model(&models.Prediction{}).Count(&before)

	if err := svc.Delete(owner, pred.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete must be ErrNotFound, got %v", err)
	}

	var after int64
	db.Model(&models.Prediction{}).Count(&after)
	if before != after {
		t.Fatalf("store size changed on failed delete: %d -> %d", before, after)
	}
}

func TestDelete_ForeignOwnerIsNotFound(t *testing.T) {
	svc := NewPredictionService(newTestDB(t))
	owner := uuid.New()

	pred, err := svc.Create(owner, validInputs(), testScore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(uuid.New(), pred.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete must be ErrNotFound, got %v", err)
	}
	if _, err := svc.ByID(owner, pred.ID); err != nil {
		t.Fatalf("record must survive a foreign delete: %v", err)
	}
}

func TestRoundTrip_OpaquePayloadsVerbatim(t *testing.T) {
	svc := NewPredictionService(newTestDB(t))
	owner := uuid.New()

	score := testScore()
	pred, err := svc.Create(owner, validInputs(), score)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID, err := svc.ByID(owner, pred.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	history, err := svc.History(owner, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}

	for name, got := range map[string]string{
		"byID roadmap":    string(byID.RoadmapTasks),
		"history roadmap": string(history[0].RoadmapTasks),
	} {
		if got != string(score.RoadmapTasks) {
			t.Fatalf("%s not verbatim:\n got %s\nwant %s", name, got, score.RoadmapTasks)
		}
	}
	if string(byID.AIRecommendations) != string(score.AIRecommendations) {
		t.Fatalf("ai_recommendations not verbatim: %s", byID.AIRecommendations)
	}
	if string(history[0].AIRecommendations) != string(score.AIRecommendations) {
		t.Fatalf("history ai_recommendations not verbatim: %s", history[0].AIRecommendations)
	}
}
