package features

import (
	"testing"

	"github.com/damiloju/startup-analyst/internal/entity"
)

func TestSchemaShape(t *testing.T) {
	cols := Columns()
	if len(cols) != NumFeatures {
		t.Fatalf("Columns() = %d entries, want %d", len(cols), NumFeatures)
	}
	seen := map[string]bool{}
	for _, c := range cols {
		if c == "" {
			t.Fatal("empty column name in schema")
		}
		if seen[c] {
			t.Fatalf("duplicate column %q", c)
		}
		seen[c] = true
	}
	if cols[MarketSizeBillions] != "market_size_billions" {
		t.Errorf("column order broken: %v", cols[MarketSizeBillions])
	}
}

func TestSynthesizeDefaults(t *testing.T) {
	v, dropped := Synthesize(nil, nil)
	if len(dropped) != 0 {
		t.Errorf("dropped = %v", dropped)
	}
	if v[TeamSize] != 5 {
		t.Errorf("team_size default = %v, want 5", v[TeamSize])
	}
	if v[GrossMarginPercent] != 70 {
		t.Errorf("gross_margin default = %v, want 70", v[GrossMarginPercent])
	}
	if v[CompetitionLevel] != 3 {
		t.Errorf("competition default = %v, want 3", v[CompetitionLevel])
	}
	// no evidence of revenue or customers
	if v[ProductReadinessScore] != 0.4 {
		t.Errorf("readiness default = %v, want 0.4", v[ProductReadinessScore])
	}
}

func TestSynthesizePrecedence(t *testing.T) {
	extracted := map[string]float64{
		"current_revenue_usd": 1_000_000,
		"team_size":           20,
	}
	manual := map[string]float64{
		"team_size": 10, // manual wins
		"revenue":   2_000_000,
	}
	v, _ := Synthesize(manual, extracted)
	if v[TeamSize] != 10 {
		t.Errorf("team_size = %v, want manual 10", v[TeamSize])
	}
	if v[CurrentRevenueUSD] != 2_000_000 {
		t.Errorf("revenue = %v, want manual alias 2000000", v[CurrentRevenueUSD])
	}
}

func TestSynthesizeDerived(t *testing.T) {
	v, _ := Synthesize(map[string]float64{"customers": 5000}, nil)
	if v[UserTractionScore] != 0.5 {
		t.Errorf("traction = %v, want 0.5", v[UserTractionScore])
	}
	if v[ProductReadinessScore] != 0.6 {
		t.Errorf("readiness = %v, want 0.6 (customers, no revenue)", v[ProductReadinessScore])
	}

	v, _ = Synthesize(map[string]float64{"customers": 50_000}, nil)
	if v[UserTractionScore] != 1.0 {
		t.Errorf("traction = %v, want saturation at 1.0", v[UserTractionScore])
	}

	v, _ = Synthesize(map[string]float64{"revenue": 100_000}, nil)
	if v[ProductReadinessScore] != 0.8 {
		t.Errorf("readiness = %v, want 0.8 with revenue", v[ProductReadinessScore])
	}

	// explicit score beats derivation
	v, _ = Synthesize(map[string]float64{"revenue": 100_000, "product_readiness": 0.95}, nil)
	if v[ProductReadinessScore] != 0.95 {
		t.Errorf("readiness = %v, want explicit 0.95", v[ProductReadinessScore])
	}
}

func TestSynthesizeDropsUnknownKeys(t *testing.T) {
	v, dropped := Synthesize(map[string]float64{"no_such_feature": 1}, nil)
	if len(dropped) != 1 || dropped[0] != "no_such_feature" {
		t.Errorf("dropped = %v", dropped)
	}
	base, _ := Synthesize(nil, nil)
	if v != base {
		t.Errorf("unknown key changed the vector: %v != %v", v, base)
	}
}

func TestFromExtraction(t *testing.T) {
	rev := 1_200_000.0
	tam := 8e9
	team := 12
	cust := 3000
	d := &entity.ExtractedFinancialData{
		CurrentRevenue: &rev,
		MarketSizeTAM:  &tam,
		TeamSize:       &team,
		Customers:      &cust,
		BusinessModel:  "usage-based pricing for industrial robots",
	}
	m := FromExtraction(d)
	if m["current_revenue_usd"] != rev {
		t.Errorf("revenue = %v", m["current_revenue_usd"])
	}
	if m["market_size_billions"] != 8 {
		t.Errorf("tam billions = %v, want 8", m["market_size_billions"])
	}
	if m["team_size"] != 12 {
		t.Errorf("team = %v", m["team_size"])
	}
	if m["customers"] != 3000 {
		t.Errorf("customers = %v", m["customers"])
	}
	clarity := m["business_model_clarity"]
	if clarity <= 0 || clarity > 1 {
		t.Errorf("clarity = %v", clarity)
	}

	if FromExtraction(nil) != nil {
		t.Error("nil extraction should produce nil map")
	}
}
