package extract

import "github.com/damiloju/startup-analyst/internal/entity"

// Per-field trust weights. These are heuristics tuned against pitch decks:
// an explicit revenue figure is nearly always real, a market-size figure is
// more often aspirational, free-text business models the least reliable.
const (
	weightRevenue       = 0.9
	weightFunding       = 0.85
	weightMarketSize    = 0.8
	weightBusinessModel = 0.7

	// floor when nothing at all was found
	confidenceFloor = 0.3
)

// Score computes extraction confidence and completeness for the extracted
// data. Completeness is coverage of a fixed 6-field checklist; confidence is
// the mean trust weight of the fields that are actually populated. The two
// are deliberately independent measures.
func Score(d *entity.ExtractedFinancialData) (confidence, completeness float64) {
	populated := 0
	checklist := []bool{
		d.CurrentRevenue != nil,
		d.ProjectedRevenueY1 != nil,
		d.FundingRequested != nil,
		d.MarketSizeTAM != nil,
		d.TeamSize != nil,
		d.BusinessModel != "",
	}
	for _, ok := range checklist {
		if ok {
			populated++
		}
	}
	completeness = float64(populated) / float64(len(checklist))

	var weights []float64
	if d.CurrentRevenue != nil {
		weights = append(weights, weightRevenue)
	}
	if d.FundingRequested != nil {
		weights = append(weights, weightFunding)
	}
	if d.MarketSizeTAM != nil {
		weights = append(weights, weightMarketSize)
	}
	if d.BusinessModel != "" {
		weights = append(weights, weightBusinessModel)
	}
	if len(weights) == 0 {
		return confidenceFloor, completeness
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return sum / float64(len(weights)), completeness
}
