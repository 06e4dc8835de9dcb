package constants

// SuccessCategory is the coarse verdict bucket attached to a prediction.
type SuccessCategory string

// Stable values (these exact strings appear in stored results).
const (
	CategoryHighPotential   SuccessCategory = "High Potential"
	CategoryMediumPotential SuccessCategory = "Medium Potential"
	CategoryLowPotential    SuccessCategory = "Low Potential"
	CategorySkipped         SuccessCategory = "Analysis Skipped" // ML step disabled by caller
	CategoryUnknown         SuccessCategory = "Unknown"          // ML step failed, degraded default
)

// Recommendation is the investment call derived from the success probability.
type Recommendation string

const (
	RecommendInvest Recommendation = "INVEST"
	RecommendWatch  Recommendation = "WATCH"
	RecommendPass   Recommendation = "PASS"
)

// Probability thresholds for category/recommendation mapping. Policy
// constants; changing them changes every stored verdict's meaning.
const (
	HighPotentialThreshold   = 0.70
	MediumPotentialThreshold = 0.40
)

// Verdict maps a success probability onto its category and recommendation.
func Verdict(probability float64) (SuccessCategory, Recommendation) {
	switch {
	case probability >= HighPotentialThreshold:
		return CategoryHighPotential, RecommendInvest
	case probability >= MediumPotentialThreshold:
		return CategoryMediumPotential, RecommendWatch
	default:
		return CategoryLowPotential, RecommendPass
	}
}

// Pipeline component names recorded in AnalysisResult.ComponentsUsed.
const (
	ComponentPDFExtraction = "PDF_EXTRACTION"
	ComponentAIAgents      = "AI_AGENTS"
	ComponentMLPrediction  = "ML_PREDICTION"
)
