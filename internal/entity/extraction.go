package entity

// TableRecord is one table pulled out of a PDF, tagged with its source page.
type TableRecord struct {
	Page    int        `json:"page"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ExtractedFinancialData carries everything the document extractor could
// recover from a pitch document. All numerics are optional; nil means the
// field was not found, never zero.
type ExtractedFinancialData struct {
	// Revenue
	CurrentRevenue     *float64 `json:"current_revenue,omitempty"`
	ProjectedRevenueY1 *float64 `json:"projected_revenue_y1,omitempty"`
	ProjectedRevenueY3 *float64 `json:"projected_revenue_y3,omitempty"`
	RevenueGrowthRate  *float64 `json:"revenue_growth_rate,omitempty"` // decimal, 0.4 == 40%

	// Funding
	FundingRequested *float64 `json:"funding_requested,omitempty"`
	Valuation        *float64 `json:"valuation,omitempty"`

	// Financial health (table-derived when present)
	GrossMargin  *float64 `json:"gross_margin,omitempty"` // percent
	BurnRate     *float64 `json:"burn_rate,omitempty"`    // monthly USD
	RunwayMonths *float64 `json:"runway_months,omitempty"`

	// Market
	MarketSizeTAM *float64 `json:"market_size_tam,omitempty"` // USD

	// Business
	TeamSize  *int `json:"team_size,omitempty"`
	Customers *int `json:"customers,omitempty"`

	// Qualitative
	BusinessModel string `json:"business_model,omitempty"`

	// Scoring. Completeness measures coverage of the key-field checklist,
	// confidence measures how much we trust what was found. They are
	// deliberately independent.
	ExtractionConfidence float64 `json:"extraction_confidence"`
	CompletenessScore    float64 `json:"completeness_score"`
}

// Empty reports whether nothing useful was extracted.
func (d *ExtractedFinancialData) Empty() bool {
	return d.CurrentRevenue == nil &&
		d.ProjectedRevenueY1 == nil &&
		d.FundingRequested == nil &&
		d.Valuation == nil &&
		d.MarketSizeTAM == nil &&
		d.TeamSize == nil &&
		d.Customers == nil &&
		d.BusinessModel == ""
}
