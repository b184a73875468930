package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Balu143865/AI-Placement-Predict/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const trendWindow = 10

// TrendPoint is one reading of the readiness time series.
type TrendPoint struct {
	Score float64   `json:"score"`
	Date  time.Time `json:"date"`
}

// Averages are arithmetic means over ALL of the owner's predictions, not
// just the trend window.
type Averages struct {
	AvgPlacementProbability float64   `json:"avgPlacementProbability"`
	AvgReadinessScore       float64   `json:"avgReadinessScore"`
	TotalPredictions        int64     `json:"totalPredictions"`
	LatestPredictionDate    time.Time `json:"latestPredictionDate"`
}

// Improvement is the signed delta between the last and first trend scores.
// Value keeps two decimal places, matching the dashboard contract.
type Improvement struct {
	Value     string `json:"value"`
	Direction string `json:"direction"`
}

// Overview is the full analytics payload for the dashboard.
type Overview struct {
	Trend            []TrendPoint        `json:"trend"`
	Averages         *Averages           `json:"averages"`
	Recent           []models.Prediction `json:"recent"`
	Improvement      Improvement         `json:"improvement"`
	TotalPredictions int64               `json:"total_predictions"`
}

// LatestPrediction is the condensed latest-record view in the summary.
type LatestPrediction struct {
	ReadinessScore       float64   `json:"readiness_score"`
	PlacementProbability float64   `json:"placement_probability"`
	Date                 time.Time `json:"date"`
}

// Summary is the condensed single-record dashboard view.
type Summary struct {
	TotalPredictions   int64             `json:"total_predictions"`
	AverageReadiness   string            `json:"average_readiness"`
	AverageProbability string            `json:"average_probability"`
	LatestPrediction   *LatestPrediction `json:"latest_prediction"`
}

// AnalyticsService derives trend, averages and improvement direction from
// the prediction store. Reads are best-effort snapshots; no lock is taken
// against concurrent writes.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Trend returns readiness scores ascending by creation time (oldest first),
// the opposite order from history, because it feeds a left-to-right chart.
func (s *AnalyticsService) Trend(userID uuid.UUID, limit int) ([]TrendPoint, error) {
	if limit <= 0 {
		limit = trendWindow
	}

	var predictions []models.Prediction
	err := s.db.
		Select("readiness_score", "created_at").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}

	trend := make([]TrendPoint, 0, len(predictions))
	for _, p := range predictions {
		trend = append(trend, TrendPoint{Score: p.ReadinessScore, Date: p.CreatedAt})
	}
	return trend, nil
}

// AveragesFor returns the owner's aggregate stats, or nil when the owner has
// no predictions at all.
func (s *AnalyticsService) AveragesFor(userID uuid.UUID) (*Averages, error) {
	var stats struct {
		AvgPlacementProbability float64
		AvgReadinessScore       float64
		TotalPredictions        int64
	}
	err := s.db.Model(&models.Prediction{}).
		Select("AVG(placement_probability) AS avg_placement_probability, AVG(readiness_score) AS avg_readiness_score, COUNT(*) AS total_predictions").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	if stats.TotalPredictions == 0 {
		return nil, nil
	}

	var latest models.Prediction
	err = s.db.
		Select("created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &Averages{
		AvgPlacementProbability: stats.AvgPlacementProbability,
		AvgReadinessScore:       stats.AvgReadinessScore,
		TotalPredictions:        stats.TotalPredictions,
		LatestPredictionDate:    latest.CreatedAt,
	}, nil
}

// ImprovementOf computes last minus first over the trend. With fewer than two
// points no delta is computable, so the result is pinned to 0/"stable".
func ImprovementOf(trend []TrendPoint) Improvement {
	if len(trend) < 2 {
		return Improvement{Value: "0.00", Direction: "stable"}
	}

	delta := trend[len(trend)-1].Score - trend[0].Score
	direction := "stable"
	if delta > 0 {
		direction = "up"
	} else if delta < 0 {
		direction = "down"
	}
	return Improvement{Value: fmt.Sprintf("%.2f", delta), Direction: direction}
}

// OverviewFor composes trend, averages, the 5 most recent full records and
// the improvement tuple.
func (s *AnalyticsService) OverviewFor(userID uuid.UUID) (*Overview, error) {
	trend, err := s.Trend(userID, trendWindow)
	if err != nil {
		return nil, err
	}

	averages, err := s.AveragesFor(userID)
	if err != nil {
		return nil, err
	}

	var recent []models.Prediction
	err = s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	var total int64
	if averages != nil {
		total = averages.TotalPredictions
	}

	return &Overview{
		Trend:            trend,
		Averages:         averages,
		Recent:           recent,
		Improvement:      ImprovementOf(trend),
		TotalPredictions: total,
	}, nil
}

// SummaryFor builds the condensed dashboard view.
func (s *AnalyticsService) SummaryFor(userID uuid.UUID) (*Summary, error) {
	averages, err := s.AveragesFor(userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		AverageReadiness:   "0.00",
		AverageProbability: "0.00",
	}
	if averages == nil {
		return summary, nil
	}

	summary.TotalPredictions = averages.TotalPredictions
	summary.AverageReadiness = fmt.Sprintf("%.2f", averages.AvgReadinessScore)
	summary.AverageProbability = fmt.Sprintf("%.2f", averages.AvgPlacementProbability)

	var latest models.Prediction
	err = s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, nil
		}
		return nil, err
	}

	summary.LatestPrediction = &LatestPrediction{
		ReadinessScore:       latest.ReadinessScore,
		PlacementProbability: latest.PlacementProbability,
		Date:                 latest.CreatedAt,
	}
	return summary, nil
}
