package ml

import (
	"testing"

	"github.com/damiloju/startup-analyst/internal/features"
)

func TestSubScoresRange(t *testing.T) {
	// worst case: every term floored
	var v features.Vector
	v[features.MarketGrowthRate] = -20
	v[features.CompetitionLevel] = 5
	s := computeSubScores(v)
	for _, sc := range []float64{s.Market, s.Team, s.Product, s.Business, s.Financial, s.Risk} {
		if sc < 0 || sc > 100 {
			t.Errorf("sub-score %v outside [0,100]", sc)
		}
	}

	// best case: every term saturated
	for i := 0; i < features.NumFeatures; i++ {
		v[i] = 1
	}
	v[features.MarketSizeBillions] = 50
	v[features.MarketGrowthRate] = 40
	v[features.CompetitionLevel] = 1
	v[features.FounderExperienceYears] = 20
	v[features.CurrentRevenueUSD] = 5_000_000
	v[features.ProjectedRevenueY1] = 50_000_000
	v[features.RunwayMonths] = 36
	v[features.GrossMarginPercent] = 100
	s = computeSubScores(v)
	if s.Market != 100 || s.Team != 100 || s.Product != 100 ||
		s.Business != 100 || s.Financial != 100 || s.Risk != 100 {
		t.Errorf("saturated scores = %+v, want all 100", s)
	}
}

func TestMarketScoreMonotonicInMarketSize(t *testing.T) {
	base, _ := features.Synthesize(nil, nil)
	prev := -1.0
	for _, size := range []float64{0.5, 2, 5, 10, 20} {
		v := base
		v[features.MarketSizeBillions] = size
		s := computeSubScores(v)
		if s.Market < prev {
			t.Fatalf("market score dropped from %v to %v at size %v", prev, s.Market, size)
		}
		prev = s.Market
	}
}

func TestFinancialScorePreRevenueGetsNoGrowthCredit(t *testing.T) {
	base, _ := features.Synthesize(nil, nil)

	pre := base
	pre[features.CurrentRevenueUSD] = 0
	pre[features.ProjectedRevenueY1] = 10_000_000

	post := pre
	post[features.CurrentRevenueUSD] = 1_000_000

	// projections without any current revenue earn nothing on the growth
	// term; the same projections on top of real revenue do
	if computeSubScores(pre).Financial >= computeSubScores(post).Financial {
		t.Errorf("pre-revenue financial %v >= funded %v",
			computeSubScores(pre).Financial, computeSubScores(post).Financial)
	}
}

func TestKeyStrengthsThresholds(t *testing.T) {
	v, _ := features.Synthesize(nil, nil)
	if got := keyStrengths(v); len(got) != 0 {
		t.Errorf("default vector has strengths: %v", got)
	}

	v[features.MarketSizeBillions] = 8
	v[features.TeamTechnicalScore] = 0.9
	v[features.CompetitiveAdvantageScore] = 0.8
	v[features.UserTractionScore] = 0.7
	got := keyStrengths(v)
	if len(got) != maxFactors {
		t.Fatalf("got %d strengths, want cap %d", len(got), maxFactors)
	}
	if got[0].Label != "Large market opportunity" || got[0].Evidence != 8 {
		t.Errorf("first strength = %+v", got[0])
	}
}

func TestKeyRisksThresholds(t *testing.T) {
	v, _ := features.Synthesize(nil, nil)
	if got := keyRisks(v); len(got) != 0 {
		t.Errorf("default vector has risks: %v", got)
	}

	v[features.RunwayMonths] = 4
	v[features.CompetitionLevel] = 5
	got := keyRisks(v)
	if len(got) != 2 {
		t.Fatalf("risks = %+v", got)
	}
	if got[0].Label != "Short runway" {
		t.Errorf("first risk = %+v", got[0])
	}
}

func TestImprovementAreas(t *testing.T) {
	v, _ := features.Synthesize(nil, nil)
	// defaults: traction 0.3, gtm 0.5, runway 12, business 0.6
	got := improvementAreas(v)
	if len(got) != 1 || got[0] != "Increase user traction and engagement" {
		t.Errorf("areas = %v", got)
	}

	v[features.RunwayMonths] = 3
	v[features.GoToMarketScore] = 0.2
	v[features.TeamBusinessScore] = 0.1
	if got := improvementAreas(v); len(got) != 4 {
		t.Errorf("areas = %v, want all four", got)
	}
}
