package mlclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnavailable reports that the ML service could not be reached at all
// (connection refused, DNS failure, timeout). Distinct from APIError, which
// is a response the service did send.
var ErrUnavailable = errors.New("ml service unavailable")

// APIError carries a non-2xx response from the ML service so the gateway can
// forward its status and body verbatim.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ml service returned %d", e.StatusCode)
}

// Inputs is the five-metric quintuple every scoring call accepts.
type Inputs struct {
	CGPA          float64 `json:"cgpa"`
	DSAScore      int     `json:"dsa_score"`
	Projects      int     `json:"projects"`
	Communication int     `json:"communication"`
	Internships   int     `json:"internships"`
}

// predictionBlock is the nested shape newer ML service versions return.
type predictionBlock struct {
	PlacementProbability *float64 `json:"placement_probability"`
	WillBePlaced         *bool    `json:"will_be_placed"`
	Confidence           string   `json:"confidence"`
}

// scoreEnvelope tolerates both response shapes of the evolving ML contract:
// a nested prediction.placement_probability or a top-level one.
type scoreEnvelope struct {
	Status               string           `json:"status"`
	Prediction           *predictionBlock `json:"prediction"`
	PlacementProbability *float64         `json:"placement_probability"`
	ReadinessScore       float64          `json:"readiness_score"`
	WeakSkills           []string         `json:"weak_skills"`
	RecommendationLevel  json.RawMessage  `json:"recommendation_level"`
	AIRecommendations    json.RawMessage  `json:"ai_recommendations"`
	StrongestSkill       string           `json:"strongest_skill"`
	WeakestSkill         string           `json:"weakest_skill"`
	PlacementCategory    string           `json:"placement_category"`
	SkillAnalysis        json.RawMessage  `json:"skill_analysis"`
	RoadmapTasks         json.RawMessage  `json:"roadmap_tasks"`
}

// ScoreResult is the normalized scoring output. Opaque payloads stay raw so
// they round-trip byte for byte through storage and responses.
type ScoreResult struct {
	PlacementProbability float64
	WillBePlaced         bool
	Confidence           string
	ReadinessScore       float64
	WeakSkills           []string
	RecommendationLevel  json.RawMessage
	AIRecommendations    json.RawMessage
	StrongestSkill       string
	WeakestSkill         string
	PlacementCategory    string
	SkillAnalysis        json.RawMessage
	RoadmapTasks         json.RawMessage
}

// Client talks to the external ML scoring service. One call per request,
// no retry; a timeout fails the whole request.
type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// Predict forwards the metrics to POST /predict and normalizes the response
// at the boundary.
func (c *Client) Predict(ctx context.Context, in Inputs) (*ScoreResult, error) {
	body, err := c.post(ctx, "/predict", in)
	if err != nil {
		return nil, err
	}

	var env scoreEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed ml response: %w", err)
	}
	return env.normalize(), nil
}

// Analyze forwards the metrics to POST /analyze and returns the body as-is.
func (c *Client) Analyze(ctx context.Context, in Inputs) (json.RawMessage, error) {
	return c.post(ctx, "/analyze", in)
}

// Health probes the ML service root endpoint.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: append([]byte(nil), resp.Body()...)}
	}
	return append([]byte(nil), resp.Body()...), nil
}

func (c *Client) post(ctx context.Context, path string, in Inputs) (json.RawMessage, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(in).Post(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: append([]byte(nil), resp.Body()...)}
	}
	return append([]byte(nil), resp.Body()...), nil
}

func (e *scoreEnvelope) normalize() *ScoreResult {
	r := &ScoreResult{
		WillBePlaced:        true,
		Confidence:          "High",
		ReadinessScore:      e.ReadinessScore,
		WeakSkills:          e.WeakSkills,
		RecommendationLevel: e.RecommendationLevel,
		AIRecommendations:   e.AIRecommendations,
		StrongestSkill:      e.StrongestSkill,
		WeakestSkill:        e.WeakestSkill,
		PlacementCategory:   e.PlacementCategory,
		SkillAnalysis:       e.SkillAnalysis,
		RoadmapTasks:        e.RoadmapTasks,
	}

	// Nested shape takes precedence; neither present means 0.
	switch {
	case e.Prediction != nil && e.Prediction.PlacementProbability != nil:
		r.PlacementProbability = *e.Prediction.PlacementProbability
	case e.PlacementProbability != nil:
		r.PlacementProbability = *e.PlacementProbability
	}

	if e.Prediction != nil {
		if e.Prediction.WillBePlaced != nil {
			r.WillBePlaced = *e.Prediction.WillBePlaced
		}
		if e.Prediction.Confidence != "" {
			r.Confidence = e.Prediction.Confidence
		}
	}
	return r
}
