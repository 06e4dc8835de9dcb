package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/damiloju/startup-analyst/internal/store"
)

type stubHistory struct {
	recs []store.AnalysisRecord
	err  error
}

func (s stubHistory) List(context.Context, string, int) ([]store.AnalysisRecord, error) {
	return s.recs, s.err
}

func TestExportHistoryXLSX(t *testing.T) {
	svc := NewService(stubHistory{recs: []store.AnalysisRecord{
		{
			ID:                 "a1",
			CompanyName:        "Acme",
			CreatedAt:          time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
			SuccessProbability: 0.82,
			SuccessCategory:    "High Potential",
			Recommendation:     "INVEST",
			OverallConfidence:  0.9,
			DataCompleteness:   0.5,
			ComponentsUsed:     "PDF_EXTRACTION,ML_PREDICTION",
			PipelineVersion:    "2.0-go",
		},
	}}, nil)

	raw, err := svc.ExportHistoryXLSX(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("ExportHistoryXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Analyses")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][1] != "Company" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "Acme" || rows[1][2] != "82.0%" || rows[1][4] != "INVEST" {
		t.Errorf("data row = %v", rows[1])
	}
}

func TestExportHistoryError(t *testing.T) {
	svc := NewService(stubHistory{err: errors.New("db closed")}, nil)
	if _, err := svc.ExportHistoryXLSX(context.Background(), "", 0); err == nil {
		t.Fatal("expected error")
	}
}
