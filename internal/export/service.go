package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/store"
)

// HistoryLister is the slice of the store this service needs.
type HistoryLister interface {
	List(ctx context.Context, company string, limit int) ([]store.AnalysisRecord, error)
}

// Service produces XLSX bytes from the analysis history.
type Service struct {
	history HistoryLister
	logger  *slog.Logger
}

func NewService(history HistoryLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{history: history, logger: logger}
}

// ExportHistoryXLSX returns an XLSX workbook (as bytes) of stored analyses,
// newest first. company filters exact matches when non-empty.
func (s *Service) ExportHistoryXLSX(ctx context.Context, company string, limit int) ([]byte, error) {
	start := time.Now()

	recs, err := s.history.List(ctx, company, limit)
	if err != nil {
		return nil, common.WrapError(err, "query history")
	}

	f := excelize.NewFile()
	const sheet = "Analyses"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Analyzed At",
		"Company",
		"Success Probability",
		"Category",
		"Recommendation",
		"Overall Confidence",
		"Data Completeness",
		"Components",
		"Pipeline Version",
		"Analysis ID",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.CreatedAt.Format("2006-01-02 15:04"))
		write(2, r.CompanyName)
		write(3, fmt.Sprintf("%.1f%%", r.SuccessProbability*100))
		write(4, r.SuccessCategory)
		write(5, r.Recommendation)
		write(6, fmt.Sprintf("%.2f", r.OverallConfidence))
		write(7, fmt.Sprintf("%.2f", r.DataCompleteness))
		write(8, r.ComponentsUsed)
		write(9, r.PipelineVersion)
		write(10, r.ID)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 18) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 28) // company
	_ = f.SetColWidth(sheet, "C", "E", 18) // verdict fields
	_ = f.SetColWidth(sheet, "H", "H", 40) // components
	_ = f.SetColWidth(sheet, "J", "J", 38) // id

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"company", company,
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
