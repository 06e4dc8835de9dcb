package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/damiloju/startup-analyst/internal/common"
)

type stubText struct {
	pages []string
	err   error
}

func (s stubText) ExtractPages(context.Context, string) ([]string, error) {
	return s.pages, s.err
}

func TestExtractFinancialDataUnreadable(t *testing.T) {
	svc := NewService(stubText{err: errors.New("pdftotext: no such file")}, nil)
	_, err := svc.ExtractFinancialData(context.Background(), "missing.pdf")
	if err == nil {
		t.Fatal("expected error for unreadable document")
	}
	if !errors.Is(err, common.ErrExtraction) {
		t.Errorf("err = %v, want ErrExtraction", err)
	}
}

func TestExtractFinancialDataFromText(t *testing.T) {
	svc := NewService(stubText{pages: []string{
		"Acme Inc pitch deck\nAnnual revenue of $2.5M\nRaising $4M seed round",
	}}, nil)
	data, err := svc.ExtractFinancialData(context.Background(), "deck.pdf")
	if err != nil {
		t.Fatalf("ExtractFinancialData: %v", err)
	}
	if data.CurrentRevenue == nil || *data.CurrentRevenue != 2_500_000 {
		t.Errorf("revenue = %v", data.CurrentRevenue)
	}
	if data.FundingRequested == nil || *data.FundingRequested != 4_000_000 {
		t.Errorf("funding = %v", data.FundingRequested)
	}
	if data.ExtractionConfidence <= 0 || data.CompletenessScore <= 0 {
		t.Errorf("scores = %v / %v", data.ExtractionConfidence, data.CompletenessScore)
	}
}
