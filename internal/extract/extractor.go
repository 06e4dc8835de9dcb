package extract

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/damiloju/startup-analyst/constants"
	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/entity"
)

// Service is the production DocumentExtractor: text extraction, table
// parsing, regex metric matching and scoring behind one call.
type Service struct {
	text   TextExtractor
	logger *slog.Logger
}

func NewService(text TextExtractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{text: text, logger: logger}
}

// ExtractFinancialData extracts everything it can from the PDF at path.
// An error means the document was unreadable; anything short of that is a
// success whose quality is reflected in the confidence scores.
func (s *Service) ExtractFinancialData(ctx context.Context, path string) (*entity.ExtractedFinancialData, error) {
	start := time.Now()

	pages, err := s.text.ExtractPages(ctx, path)
	if err != nil {
		return nil, common.NewAppError("EXTRACT_UNREADABLE", err.Error(), common.ErrExtraction)
	}
	fullText := strings.Join(pages, "\n")

	metrics := ExtractMetrics(fullText)
	tables := TablesFromPages(pages)
	tableValues := AnalyzeTables(tables, constants.TableKeywords)

	data := combine(metrics, tableValues, fullText)
	data.ExtractionConfidence, data.CompletenessScore = Score(&data)

	s.logger.Info("extract.document.ok",
		"path", path,
		"pages", len(pages),
		"tables", len(tables),
		"metrics", len(metrics),
		"confidence", data.ExtractionConfidence,
		"completeness", data.CompletenessScore,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &data, nil
}

// combine merges the extraction sources onto the output record. For any
// single field the first non-null source wins, in order: regex match, table
// value, qualitative text. Sources are never blended.
func combine(metrics Metrics, tableValues map[string][]float64, fullText string) entity.ExtractedFinancialData {
	var d entity.ExtractedFinancialData

	if v, ok := metrics[constants.MetricRevenue]; ok {
		d.CurrentRevenue = f64(v)
	} else if vals := tableValues["revenue"]; len(vals) > 0 {
		d.CurrentRevenue = f64(median(append([]float64(nil), vals...)))
	}

	if v, ok := metrics[constants.MetricFunding]; ok {
		d.FundingRequested = f64(v)
	}
	if v, ok := metrics[constants.MetricValuation]; ok {
		d.Valuation = f64(v)
	}
	if v, ok := metrics[constants.MetricMarketSize]; ok {
		d.MarketSizeTAM = f64(v)
	}
	if v, ok := metrics[constants.MetricTeamSize]; ok {
		d.TeamSize = intp(v)
	}
	if v, ok := metrics[constants.MetricCustomers]; ok {
		d.Customers = intp(v)
	}
	if v, ok := metrics[constants.MetricGrowthRate]; ok {
		d.RevenueGrowthRate = f64(v / 100) // regex captures percent figures
	}

	if vals := tableValues["margin"]; len(vals) > 0 {
		d.GrossMargin = f64(median(append([]float64(nil), vals...)))
	}
	if vals := tableValues["burn"]; len(vals) > 0 {
		d.BurnRate = f64(median(append([]float64(nil), vals...)))
	}

	d.BusinessModel = ExtractBusinessModel(fullText)

	// Projections follow directly when both revenue and growth are known.
	if d.CurrentRevenue != nil && d.RevenueGrowthRate != nil {
		g := *d.RevenueGrowthRate
		d.ProjectedRevenueY1 = f64(*d.CurrentRevenue * (1 + g))
		d.ProjectedRevenueY3 = f64(*d.CurrentRevenue * math.Pow(1+g, 3))
	}

	return d
}

func f64(v float64) *float64 { return &v }

func intp(v float64) *int {
	n := int(v)
	return &n
}
