package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/damiloju/startup-analyst/constants"
	"github.com/damiloju/startup-analyst/internal/numparse"
)

// Fixed regex alternatives per metric type. Every capture group feeds the
// canonical numeric parser; unparseable matches are discarded.
var metricPatterns = map[constants.MetricType][]*regexp.Regexp{
	constants.MetricRevenue: {
		regexp.MustCompile(`(?i)revenue.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)sales.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)income.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)(\$?[\d,]+\.?\d*[KMB]?)\s*revenue`),
		regexp.MustCompile(`(?i)annual\s+revenue.*?(\$?[\d,]+\.?\d*[KMB]?)`),
	},
	constants.MetricFunding: {
		regexp.MustCompile(`(?i)raising.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)funding.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)investment.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)(\$?[\d,]+\.?\d*[KMB]?)\s*raise`),
		regexp.MustCompile(`(?i)seeking.*?(\$?[\d,]+\.?\d*[KMB]?)`),
	},
	constants.MetricValuation: {
		regexp.MustCompile(`(?i)valuation.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)valued\s+at.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)worth.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)(\$?[\d,]+\.?\d*[KMB]?)\s*valuation`),
	},
	constants.MetricMarketSize: {
		regexp.MustCompile(`(?i)market\s+size.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)TAM.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)SAM.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)SOM.*?(\$?[\d,]+\.?\d*[KMB]?)`),
		regexp.MustCompile(`(?i)total\s+addressable\s+market.*?(\$?[\d,]+\.?\d*[KMB]?)`),
	},
	constants.MetricCustomers: {
		regexp.MustCompile(`(?i)(\d+[,\d]*)\s*customers`),
		regexp.MustCompile(`(?i)(\d+[,\d]*)\s*users`),
		regexp.MustCompile(`(?i)(\d+[,\d]*)\s*clients`),
		regexp.MustCompile(`(?i)user\s+base.*?(\d+[,\d]*)`),
	},
	constants.MetricTeamSize: {
		regexp.MustCompile(`(?i)team.*?(\d+)\s*people`),
		regexp.MustCompile(`(?i)(\d+)\s*employees`),
		regexp.MustCompile(`(?i)(\d+)\s*team\s+members`),
		regexp.MustCompile(`(?i)founded\s+by.*?(\d+)`),
	},
	constants.MetricGrowthRate: {
		regexp.MustCompile(`(?i)(\d+\.?\d*)%\s*growth`),
		regexp.MustCompile(`(?i)growing.*?(\d+\.?\d*)%`),
		regexp.MustCompile(`(?i)(\d+\.?\d*)%\s*increase`),
		regexp.MustCompile(`(?i)growth\s+rate.*?(\d+\.?\d*)%`),
	},
}

// ExtractMetrics runs every pattern alternative for every metric type over
// the full text and keeps the median of all parseable matches per type.
// Median, not mean: a single boilerplate number ("$1B opportunity" in a
// footer) must not drag the estimate.
func ExtractMetrics(text string) Metrics {
	out := make(Metrics)
	for _, mt := range constants.MetricTypes {
		var values []float64
		for _, re := range metricPatterns[mt] {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if len(m) < 2 {
					continue
				}
				v, ok := numparse.ParseValue(m[1])
				if !ok || v == 0 {
					continue
				}
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			out[mt] = median(values)
		}
	}
	return out
}

// median mutates its argument's order; callers pass freshly built slices.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

var businessModelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)business\s+model[:\s]+([^.]{10,100})`),
	regexp.MustCompile(`(?i)revenue\s+model[:\s]+([^.]{10,100})`),
	regexp.MustCompile(`(?i)how\s+we\s+make\s+money[:\s]+([^.]{10,100})`),
}

// ExtractBusinessModel pulls a short business-model description out of the
// text, or "" when none of the patterns hit.
func ExtractBusinessModel(text string) string {
	for _, re := range businessModelPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
