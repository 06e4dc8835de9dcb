package extract

import (
	"context"

	"github.com/damiloju/startup-analyst/constants"
	"github.com/damiloju/startup-analyst/internal/entity"
)

// TextExtractor is stage 1: PDF path -> plain text, one entry per page.
type TextExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}

// DocumentExtractor is the full extraction surface the pipeline depends on.
type DocumentExtractor interface {
	// ExtractFinancialData runs text + table + regex extraction and scores
	// the result. It returns an error only when the document is unreadable;
	// partial extraction is a success with low confidence.
	ExtractFinancialData(ctx context.Context, path string) (*entity.ExtractedFinancialData, error)
}

// Metrics is the regex-extraction output: one median value per metric type
// that had at least one parseable match.
type Metrics map[constants.MetricType]float64
