// Package features defines the canonical numeric feature schema shared by
// training and inference. The field list, ordering, and default constants
// are declared exactly once; a feature vector can never contain a null or
// NaN — missing inputs fall back to the documented defaults.
package features

// Feature indices. The order here IS the column order of every training
// sample and every inference vector; append-only.
const (
	// Financial
	FundingTotalUSD = iota
	FundingRounds
	TeamSize
	FoundedYear
	CurrentRevenueUSD
	ProjectedRevenueY1
	ProjectedRevenueY3
	BurnRateMonthly
	RunwayMonths
	GrossMarginPercent

	// Market
	MarketSizeBillions
	AddressableMarketBillions
	MarketGrowthRate
	CompetitionLevel
	CompetitiveAdvantageScore

	// Team
	FounderExperienceYears
	TeamTechnicalScore
	TeamBusinessScore
	AdvisorQualityScore

	// Product
	ProductReadinessScore
	TechDifferentiationScore
	UserTractionScore
	ProductMarketFitScore

	// Business model
	BusinessModelClarity
	RevenueModelStrength
	ScalabilityScore
	GoToMarketScore

	// Risk (higher = more risk)
	MarketRiskScore
	TechnicalRiskScore
	TeamRiskScore
	FinancialRiskScore
	RegulatoryRiskScore

	// External
	IndustryTrendScore
	EconomicEnvironmentScore
	VCFundingClimateScore

	// Pitch quality
	PitchClarityScore
	FinancialProjectionsRealism
	PresentationQualityScore

	NumFeatures
)

// Vector is one fixed-schema feature row.
type Vector [NumFeatures]float64

// column describes one schema slot: its canonical name, its default for a
// typical early-stage company, and the alias keys accepted from manual or
// extracted input maps.
type column struct {
	name    string
	def     float64
	aliases []string
}

var schema = [NumFeatures]column{
	FundingTotalUSD:             {name: "funding_total_usd", def: 0, aliases: []string{"funding_total", "funding"}},
	FundingRounds:               {name: "funding_rounds", def: 0},
	TeamSize:                    {name: "team_size", def: 5},
	FoundedYear:                 {name: "founded_year", def: 2020},
	CurrentRevenueUSD:           {name: "current_revenue_usd", def: 0, aliases: []string{"revenue"}},
	ProjectedRevenueY1:          {name: "projected_revenue_y1", def: 0},
	ProjectedRevenueY3:          {name: "projected_revenue_y3", def: 0},
	BurnRateMonthly:             {name: "burn_rate_monthly", def: 50_000, aliases: []string{"burn_rate"}},
	RunwayMonths:                {name: "runway_months", def: 12},
	GrossMarginPercent:          {name: "gross_margin_percent", def: 70, aliases: []string{"gross_margin"}},
	MarketSizeBillions:          {name: "market_size_billions", def: 1, aliases: []string{"market_size"}},
	AddressableMarketBillions:   {name: "addressable_market_billions", def: 0.1, aliases: []string{"sam"}},
	MarketGrowthRate:            {name: "market_growth_rate", def: 10},
	CompetitionLevel:            {name: "competition_level", def: 3}, // 1-5 scale
	CompetitiveAdvantageScore:   {name: "competitive_advantage_score", def: 0.5, aliases: []string{"competitive_advantage"}},
	FounderExperienceYears:      {name: "founder_experience_years", def: 5, aliases: []string{"founder_experience"}},
	TeamTechnicalScore:          {name: "team_technical_score", def: 0.6},
	TeamBusinessScore:           {name: "team_business_score", def: 0.6},
	AdvisorQualityScore:         {name: "advisor_quality_score", def: 0.5, aliases: []string{"advisor_quality"}},
	ProductReadinessScore:       {name: "product_readiness_score", def: 0.6, aliases: []string{"product_readiness"}},
	TechDifferentiationScore:    {name: "tech_differentiation_score", def: 0.5, aliases: []string{"tech_differentiation"}},
	UserTractionScore:           {name: "user_traction_score", def: 0.3, aliases: []string{"user_traction"}},
	ProductMarketFitScore:       {name: "product_market_fit_score", def: 0.4, aliases: []string{"pmf_score"}},
	BusinessModelClarity:        {name: "business_model_clarity", def: 0.6},
	RevenueModelStrength:        {name: "revenue_model_strength", def: 0.6},
	ScalabilityScore:            {name: "scalability_score", def: 0.6, aliases: []string{"scalability"}},
	GoToMarketScore:             {name: "go_to_market_score", def: 0.5, aliases: []string{"gtm_score"}},
	MarketRiskScore:             {name: "market_risk_score", def: 0.4, aliases: []string{"market_risk"}},
	TechnicalRiskScore:          {name: "technical_risk_score", def: 0.4, aliases: []string{"tech_risk"}},
	TeamRiskScore:               {name: "team_risk_score", def: 0.3, aliases: []string{"team_risk"}},
	FinancialRiskScore:          {name: "financial_risk_score", def: 0.5, aliases: []string{"financial_risk"}},
	RegulatoryRiskScore:         {name: "regulatory_risk_score", def: 0.3, aliases: []string{"regulatory_risk"}},
	IndustryTrendScore:          {name: "industry_trend_score", def: 0.6, aliases: []string{"industry_trend"}},
	EconomicEnvironmentScore:    {name: "economic_environment_score", def: 0.5, aliases: []string{"economic_environment"}},
	VCFundingClimateScore:       {name: "vc_funding_climate_score", def: 0.6, aliases: []string{"vc_climate"}},
	PitchClarityScore:           {name: "pitch_clarity_score", def: 0.6, aliases: []string{"pitch_clarity"}},
	FinancialProjectionsRealism: {name: "financial_projections_realism", def: 0.6, aliases: []string{"projections_realism"}},
	PresentationQualityScore:    {name: "presentation_quality_score", def: 0.6, aliases: []string{"presentation_quality"}},
}

// nameIndex resolves canonical names and aliases to feature indices.
var nameIndex = func() map[string]int {
	m := make(map[string]int, NumFeatures*2)
	for i, c := range schema {
		m[c.name] = i
		for _, a := range c.aliases {
			m[a] = i
		}
	}
	return m
}()

// Columns returns the canonical ordered column names.
func Columns() []string {
	out := make([]string, NumFeatures)
	for i, c := range schema {
		out[i] = c.name
	}
	return out
}

// Defaults returns a vector describing a typical early-stage company.
func Defaults() Vector {
	var v Vector
	for i, c := range schema {
		v[i] = c.def
	}
	return v
}

// Name returns the canonical column name for a feature index.
func Name(i int) string { return schema[i].name }

// Index resolves a canonical name or alias; ok is false for unknown keys.
func Index(key string) (int, bool) {
	i, ok := nameIndex[key]
	return i, ok
}
