package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// seedPredictions inserts n predictions with the given readiness scores,
// one hour apart, oldest first.
func seedPredictions(t *testing.T, db *gorm.DB, owner uuid.UUID, scores ...float64) []uuid.UUID {
	t.Helper()
	svc := NewPredictionService(db)
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i, score := range scores {
		result := testScore()
		result.ReadinessScore = score
		result.PlacementProbability = score - 10

		pred, err := svc.Create(owner, validInputs(), result)
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		setCreatedAt(t, db, pred.ID, base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, pred.ID)
	}
	return ids
}

func TestTrend_AscendingByCreationTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	owner := uuid.New()
	seedPredictions(t, db, owner, 40, 55, 70)

	trend, err := svc.Trend(owner, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trend) != 3 {
		t.Fatalf("expected 3 points, got %d", len(trend))
	}
	for i, want := range []float64{40, 55, 70} {
		if trend[i].Score != want {
			t.Fatalf("wrong order at %d: got %v want %v", i, trend[i].Score, want)
		}
	}
	if !trend[0].Date.Before(trend[2].Date) {
		t.Fatalf("dates must ascend: %v .. %v", trend[0].Date, trend[2].Date)
	}
}

func TestTrend_IsReverseOfHistory(t *testing.T) {
	db := newTestDB(t)
	analytics := NewAnalyticsService(db)
	predictions := NewPredictionService(db)
	owner := uuid.New()
	seedPredictions(t, db, owner, 30, 45, 60, 75)

	trend, err := analytics.Trend(owner, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	history, err := predictions.History(owner, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trend) != len(history) {
		t.Fatalf("window mismatch: %d vs %d", len(trend), len(history))
	}
	for i := range trend {
		mirror := history[len(history)-1-i]
		if trend[i].Score != mirror.ReadinessScore || !trend[i].Date.Equal(mirror.CreatedAt) {
			t.Fatalf("trend[%d] is not the mirror of history[%d]", i, len(history)-1-i)
		}
	}
}

func TestAverages_NilWithoutPredictions(t *testing.T) {
	svc := NewAnalyticsService(newTestDB(t))

	averages, err := svc.AveragesFor(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if averages != nil {
		t.Fatalf("expected nil averages, got %+v", averages)
	}
}

func TestAverages_MeansOverAllPredictions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	owner := uuid.New()
	other := uuid.New()
	seedPredictions(t, db, owner, 40, 60, 80)
	seedPredictions(t, db, other, 10) // must not leak into owner's averages

	averages, err := svc.AveragesFor(owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if averages == nil {
		t.Fatal("expected averages")
	}
	if averages.TotalPredictions != 3 {
		t.Fatalf("expected 3 predictions, got %d", averages.TotalPredictions)
	}
	if averages.AvgReadinessScore != 60 {
		t.Fatalf("expected mean readiness 60, got %v", averages.AvgReadinessScore)
	}
	if averages.AvgPlacementProbability != 50 {
		t.Fatalf("expected mean probability 50, got %v", averages.AvgPlacementProbability)
	}
	if averages.LatestPredictionDate.IsZero() {
		t.Fatal("expected latest prediction date")
	}
}

func TestImprovement_SinglePointIsStable(t *testing.T) {
	imp := ImprovementOf([]TrendPoint{{Score: 40}})
	if imp.Value != "0.00" || imp.Direction != "stable" {
		t.Fatalf("expected 0.00/stable, got %+v", imp)
	}
}

func TestImprovement_EmptyTrendIsStable(t *testing.T) {
	imp := ImprovementOf(nil)
	if imp.Value != "0.00" || imp.Direction != "stable" {
		t.Fatalf("expected 0.00/stable, got %+v", imp)
	}
}

func TestImprovement_Directions(t *testing.T) {
	cases := []struct {
		scores    []float64
		value     string
		direction string
	}{
		{[]float64{40, 70}, "30.00", "up"},
		{[]float64{70, 40}, "-30.00", "down"},
		{[]float64{50, 80, 50}, "0.00", "stable"},
		{[]float64{33.3, 66.65}, "33.35", "up"},
	}
	for _, tc := range cases {
		trend := make([]TrendPoint, len(tc.scores))
		for i, s := range tc.scores {
			trend[i] = TrendPoint{Score: s}
		}
		imp := ImprovementOf(trend)
		if imp.Value != tc.value || imp.Direction != tc.direction {
			t.Fatalf("scores %v: expected %s/%s, got %+v", tc.scores, tc.value, tc.direction, imp)
		}
	}
}

func TestOverview_ComposesAllParts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	owner := uuid.New()
	seedPredictions(t, db, owner, 20, 30, 40, 50, 60, 70)

	overview, err := svc.OverviewFor(owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview.Trend) != 6 {
		t.Fatalf("expected 6 trend points, got %d", len(overview.Trend))
	}
	if len(overview.Recent) != 5 {
		t.Fatalf("expected 5 recent records, got %d", len(overview.Recent))
	}
	if overview.Recent[0].ReadinessScore != 70 {
		t.Fatalf("recent must be newest first, got %v", overview.Recent[0].ReadinessScore)
	}
	if overview.TotalPredictions != 6 {
		t.Fatalf("expected total 6, got %d", overview.TotalPredictions)
	}
	if overview.Improvement.Value != "50.00" || overview.Improvement.Direction != "up" {
		t.Fatalf("unexpected improvement %+v", overview.Improvement)
	}
	if overview.Averages == nil || overview.Averages.TotalPredictions != 6 {
		t.Fatalf("unexpected averages %+v", overview.Averages)
	}
}

func TestOverview_EmptyOwner(t *testing.T) {
	svc := NewAnalyticsService(newTestDB(t))

	overview, err := svc.OverviewFor(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.Averages != nil {
		t.Fatalf("expected nil averages, got %+v", overview.Averages)
	}
	if overview.TotalPredictions != 0 {
		t.Fatalf("expected total 0, got %d", overview.TotalPredictions)
	}
	if overview.Improvement.Direction != "stable" {
		t.Fatalf("expected stable, got %+v", overview.Improvement)
	}
}

func TestSummary_LatestAndFormattedAverages(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)
	owner := uuid.New()
	seedPredictions(t, db, owner, 40, 70)

	summary, err := svc.SummaryFor(owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalPredictions != 2 {
		t.Fatalf("expected total 2, got %d", summary.TotalPredictions)
	}
	if summary.AverageReadiness != "55.00" {
		t.Fatalf("expected 55.00, got %q", summary.AverageReadiness)
	}
	if summary.LatestPrediction == nil || summary.LatestPrediction.ReadinessScore != 70 {
		t.Fatalf("expected latest readiness 70, got %+v", summary.LatestPrediction)
	}
}

func TestSummary_EmptyOwner(t *testing.T) {
	svc := NewAnalyticsService(newTestDB(t))

	summary, err := svc.SummaryFor(uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalPredictions != 0 || summary.LatestPrediction != nil {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if summary.AverageReadiness != "0.00" {
		t.Fatalf("expected 0.00, got %q", summary.AverageReadiness)
	}
}
