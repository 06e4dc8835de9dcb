package features

import (
	"math"

	"github.com/damiloju/startup-analyst/internal/entity"
)

// customersKey is accepted in input maps even though raw customer counts are
// not a schema column; the count only enters the model through the derived
// traction score.
const customersKey = "customers"

// Synthesize builds the full feature vector from the extracted metrics and
// the caller's manual overrides. Precedence per field: manual > extracted >
// schema default. Unknown keys are dropped and reported so the caller can
// log them; they never reach the model.
func Synthesize(manual, extracted map[string]float64) (Vector, []string) {
	v := Defaults()
	var dropped []string

	explicit := make(map[int]bool)
	customers := 0.0
	haveCustomers := false

	apply := func(m map[string]float64) {
		for key, val := range m {
			if key == customersKey {
				customers = val
				haveCustomers = true
				continue
			}
			idx, ok := Index(key)
			if !ok {
				dropped = append(dropped, key)
				continue
			}
			v[idx] = val
			explicit[idx] = true
		}
	}
	// lower precedence first; manual wins on conflicts
	apply(extracted)
	apply(manual)

	// Derived: traction from raw customer count, saturating at 10k.
	if haveCustomers && !explicit[UserTractionScore] {
		v[UserTractionScore] = math.Min(customers/10_000, 1.0)
	}

	// Derived: readiness from hard evidence unless explicitly scored.
	if !explicit[ProductReadinessScore] {
		switch {
		case v[CurrentRevenueUSD] > 0:
			v[ProductReadinessScore] = 0.8
		case haveCustomers && customers > 0:
			v[ProductReadinessScore] = 0.6
		default:
			v[ProductReadinessScore] = 0.4
		}
	}

	return v, dropped
}

// FromExtraction converts extractor output into feature-map form (canonical
// keys only). Nil fields stay absent so schema defaults apply downstream.
func FromExtraction(d *entity.ExtractedFinancialData) map[string]float64 {
	if d == nil {
		return nil
	}
	m := make(map[string]float64)

	if d.CurrentRevenue != nil {
		m["current_revenue_usd"] = *d.CurrentRevenue
	}
	if d.ProjectedRevenueY1 != nil {
		m["projected_revenue_y1"] = *d.ProjectedRevenueY1
	}
	if d.ProjectedRevenueY3 != nil {
		m["projected_revenue_y3"] = *d.ProjectedRevenueY3
	}
	if d.FundingRequested != nil {
		m["funding_total_usd"] = *d.FundingRequested
	}
	if d.MarketSizeTAM != nil {
		m["market_size_billions"] = *d.MarketSizeTAM / 1e9
	}
	if d.GrossMargin != nil {
		m["gross_margin_percent"] = *d.GrossMargin
	}
	if d.BurnRate != nil {
		m["burn_rate_monthly"] = *d.BurnRate
	}
	if d.RunwayMonths != nil {
		m["runway_months"] = *d.RunwayMonths
	}
	if d.TeamSize != nil {
		m["team_size"] = float64(*d.TeamSize)
	}
	if d.Customers != nil {
		m[customersKey] = float64(*d.Customers)
	}
	if d.BusinessModel != "" {
		// longer descriptions read as clearer models, saturating at 100 chars
		m["business_model_clarity"] = math.Min(float64(len(d.BusinessModel))/100, 1.0)
	}
	return m
}
