package ml

import (
	"github.com/damiloju/startup-analyst/internal/entity"
	"github.com/damiloju/startup-analyst/internal/features"
)

const maxFactors = 3

// keyStrengths returns up to three threshold-triggered strengths, in fixed
// rule order, each carrying the feature value that fired the rule.
func keyStrengths(v features.Vector) []entity.Factor {
	var out []entity.Factor
	add := func(label string, evidence float64) {
		if len(out) < maxFactors {
			out = append(out, entity.Factor{Label: label, Evidence: evidence})
		}
	}

	if ms := v[features.MarketSizeBillions]; ms > 5 {
		add("Large market opportunity", ms)
	}
	if ts := v[features.TeamTechnicalScore]; ts > 0.7 {
		add("Strong technical team", ts)
	}
	if ca := v[features.CompetitiveAdvantageScore]; ca > 0.7 {
		add("Clear competitive advantage", ca)
	}
	if tr := v[features.UserTractionScore]; tr > 0.6 {
		add("Strong user traction", tr)
	}
	return out
}

// keyRisks returns up to three threshold-triggered risks.
func keyRisks(v features.Vector) []entity.Factor {
	var out []entity.Factor
	add := func(label string, evidence float64) {
		if len(out) < maxFactors {
			out = append(out, entity.Factor{Label: label, Evidence: evidence})
		}
	}

	if mr := v[features.MarketRiskScore]; mr > 0.6 {
		add("High market risk", mr)
	}
	if rw := v[features.RunwayMonths]; rw < 6 {
		add("Short runway", rw)
	}
	if cl := v[features.CompetitionLevel]; cl >= 4 {
		add("High competition", cl)
	}
	if tr := v[features.TeamRiskScore]; tr > 0.6 {
		add("Team execution risk", tr)
	}
	return out
}

// improvementAreas lists concrete gaps worth closing before the next raise.
func improvementAreas(v features.Vector) []string {
	var out []string
	if v[features.UserTractionScore] < 0.4 {
		out = append(out, "Increase user traction and engagement")
	}
	if v[features.GoToMarketScore] < 0.5 {
		out = append(out, "Strengthen go-to-market strategy")
	}
	if v[features.RunwayMonths] < 12 {
		out = append(out, "Extend financial runway")
	}
	if v[features.TeamBusinessScore] < 0.6 {
		out = append(out, "Strengthen business expertise on team")
	}
	return out
}
