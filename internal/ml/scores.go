package ml

import (
	"math"

	"github.com/damiloju/startup-analyst/internal/features"
)

// SubScores are rubric-based 0-100 component scores computed directly from
// the raw feature vector. They explain a prediction along investor-facing
// axes; the model probability does not feed into them.
type SubScores struct {
	Market    float64
	Team      float64
	Product   float64
	Business  float64
	Financial float64
	Risk      float64 // higher = more risk
}

func computeSubScores(v features.Vector) SubScores {
	market := ratio(v[features.MarketSizeBillions]/10)*30 +
		ratio(v[features.MarketGrowthRate]/20)*25 +
		ratio((5-v[features.CompetitionLevel])/4)*20 +
		ratio(v[features.CompetitiveAdvantageScore])*25

	team := ratio(v[features.FounderExperienceYears]/10)*30 +
		ratio(v[features.TeamTechnicalScore])*25 +
		ratio(v[features.TeamBusinessScore])*25 +
		ratio(v[features.AdvisorQualityScore])*20

	product := ratio(v[features.ProductReadinessScore])*30 +
		ratio(v[features.TechDifferentiationScore])*25 +
		ratio(v[features.UserTractionScore])*25 +
		ratio(v[features.ProductMarketFitScore])*20

	business := ratio(v[features.BusinessModelClarity])*25 +
		ratio(v[features.RevenueModelStrength])*25 +
		ratio(v[features.ScalabilityScore])*25 +
		ratio(v[features.GoToMarketScore])*25

	growthRatio := 0.0
	if rev := v[features.CurrentRevenueUSD]; rev > 0 {
		growthRatio = v[features.ProjectedRevenueY1] / rev / 3
	}
	financial := ratio(v[features.CurrentRevenueUSD]/1_000_000)*25 +
		ratio(growthRatio)*25 +
		ratio(v[features.RunwayMonths]/24)*25 +
		ratio(v[features.GrossMarginPercent]/100)*25

	risk := (ratio(v[features.MarketRiskScore]) +
		ratio(v[features.TechnicalRiskScore]) +
		ratio(v[features.TeamRiskScore]) +
		ratio(v[features.FinancialRiskScore]) +
		ratio(v[features.RegulatoryRiskScore])) * 20

	return SubScores{
		Market:    market,
		Team:      team,
		Product:   product,
		Business:  business,
		Financial: financial,
		Risk:      risk,
	}
}

// ratio clamps a normalized term to [0,1] so negative inputs (shrinking
// markets, saturated competition) bottom out instead of going negative.
func ratio(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}
