package constants

// MetricType identifies one of the fixed financial metrics the document
// extractor looks for.
type MetricType string

const (
	MetricRevenue    MetricType = "revenue"
	MetricFunding    MetricType = "funding"
	MetricValuation  MetricType = "valuation"
	MetricMarketSize MetricType = "market_size"
	MetricCustomers  MetricType = "customers"
	MetricTeamSize   MetricType = "team_size"
	MetricGrowthRate MetricType = "growth_rate"
)

// MetricTypes is the canonical extraction order.
var MetricTypes = []MetricType{
	MetricRevenue,
	MetricFunding,
	MetricValuation,
	MetricMarketSize,
	MetricCustomers,
	MetricTeamSize,
	MetricGrowthRate,
}

// TableKeywords are the header substrings that mark a table column as
// financially interesting.
var TableKeywords = []string{"revenue", "margin", "cost", "profit", "expense", "cash", "burn"}
