package extract

import (
	"testing"

	"github.com/damiloju/startup-analyst/internal/entity"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestScoreCompletenessMonotonic(t *testing.T) {
	var d entity.ExtractedFinancialData
	prev := -1.0

	steps := []func(){
		func() { d.CurrentRevenue = fp(1_000_000) },
		func() { d.ProjectedRevenueY1 = fp(2_000_000) },
		func() { d.FundingRequested = fp(500_000) },
		func() { d.MarketSizeTAM = fp(5e9) },
		func() { d.TeamSize = ip(8) },
		func() { d.BusinessModel = "subscription SaaS" },
	}

	// empty record first
	_, completeness := Score(&d)
	if completeness != 0 {
		t.Fatalf("empty completeness = %v, want 0", completeness)
	}
	prev = completeness

	for i, step := range steps {
		step()
		_, completeness := Score(&d)
		if completeness < prev {
			t.Errorf("step %d: completeness %v < previous %v", i, completeness, prev)
		}
		if completeness < 0 || completeness > 1 {
			t.Errorf("step %d: completeness %v out of [0,1]", i, completeness)
		}
		prev = completeness
	}
	if prev != 1.0 {
		t.Errorf("full checklist completeness = %v, want 1.0", prev)
	}
}

func TestScoreConfidence(t *testing.T) {
	var empty entity.ExtractedFinancialData
	conf, _ := Score(&empty)
	if conf != 0.3 {
		t.Errorf("empty confidence = %v, want floor 0.3", conf)
	}

	revOnly := entity.ExtractedFinancialData{CurrentRevenue: fp(1_000_000)}
	conf, _ = Score(&revOnly)
	if conf != 0.9 {
		t.Errorf("revenue-only confidence = %v, want 0.9", conf)
	}

	both := entity.ExtractedFinancialData{
		CurrentRevenue: fp(1_000_000),
		BusinessModel:  "marketplace take rate",
	}
	conf, _ = Score(&both)
	if want := (0.9 + 0.7) / 2; !almostEqual(conf, want) {
		t.Errorf("revenue+model confidence = %v, want %v", conf, want)
	}

	// confidence is about trust, not coverage: adding a checklist field the
	// trust table ignores must not move it
	both.TeamSize = ip(4)
	conf2, _ := Score(&both)
	if conf2 != conf {
		t.Errorf("team size changed confidence: %v -> %v", conf, conf2)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
