package entity

import (
	"time"

	"github.com/damiloju/startup-analyst/constants"
)

// Factor is a named strength or risk with the feature value that triggered it.
type Factor struct {
	Label    string  `json:"label"`
	Evidence float64 `json:"evidence"`
}

// ConfidenceInterval is a heuristic band around the success probability,
// derived from the spread of base-model outputs. Not a calibrated interval.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PredictionResult is the full output of one ensemble prediction.
// Constructed fresh per request; never cached.
type PredictionResult struct {
	SuccessProbability       float64                   `json:"success_probability"`
	ConfidenceInterval       ConfidenceInterval        `json:"confidence_interval"`
	SuccessCategory          constants.SuccessCategory `json:"success_category"`
	InvestmentRecommendation constants.Recommendation  `json:"investment_recommendation"`

	// Sub-scores, 0-100. RiskScore is the only one where higher is worse.
	MarketScore        float64 `json:"market_score"`
	TeamScore          float64 `json:"team_score"`
	ProductScore       float64 `json:"product_score"`
	BusinessModelScore float64 `json:"business_model_score"`
	FinancialScore     float64 `json:"financial_score"`
	RiskScore          float64 `json:"risk_score"`

	KeyStrengths     []Factor `json:"key_strengths"`
	KeyRisks         []Factor `json:"key_risks"`
	ImprovementAreas []string `json:"improvement_areas"`

	ModelConfidence     float64   `json:"model_confidence"`
	PredictionTimestamp time.Time `json:"prediction_timestamp"`
	ModelVersion        string    `json:"model_version"`
	FeatureCount        int       `json:"feature_count"`
}
