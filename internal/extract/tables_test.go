package extract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/damiloju/startup-analyst/constants"
)

const layoutPage = `
Financial Plan

Year          Revenue         Monthly Burn
2023          $1,200,000      $100,000
2024          $2,000,000      $80,000
2025          $3,500,000      $60,000

Contact us at hello@example.com
`

func TestTablesFromPages(t *testing.T) {
	tables := TablesFromPages([]string{layoutPage})
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1: %+v", len(tables), tables)
	}
	tab := tables[0]
	if tab.Page != 1 {
		t.Errorf("page = %d, want 1", tab.Page)
	}
	if len(tab.Headers) != 3 || tab.Headers[1] != "Revenue" {
		t.Errorf("headers = %v", tab.Headers)
	}
	if len(tab.Rows) != 3 {
		t.Errorf("rows = %d, want 3", len(tab.Rows))
	}
}

func TestAnalyzeTables(t *testing.T) {
	tables := TablesFromPages([]string{layoutPage})
	values := AnalyzeTables(tables, constants.TableKeywords)

	rev := values["revenue"]
	if len(rev) != 3 || rev[0] != 1_200_000 || rev[2] != 3_500_000 {
		t.Errorf("revenue column = %v", rev)
	}
	burn := values["burn"]
	if len(burn) != 3 || burn[1] != 80_000 {
		t.Errorf("burn column = %v", burn)
	}
	if _, ok := values["profit"]; ok {
		t.Error("unexpected profit values")
	}
}

// fakeRunner stands in for the pdftotext binary.
type fakeRunner struct {
	out string
	err error
}

func (f fakeRunner) Run(context.Context, string, ...string) ([]byte, []byte, error) {
	return []byte(f.out), nil, f.err
}

func TestPDFTextPagesSplitOnFormFeed(t *testing.T) {
	e := NewPDFText(TextConfig{}, nil)
	e.runner = fakeRunner{out: "page one\fpage two\fpage three"}

	pages, err := e.ExtractPages(context.Background(), "deck.pdf")
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(pages) != 3 || pages[1] != "page two" {
		t.Errorf("pages = %q", pages)
	}
}

func TestPDFTextMaxPages(t *testing.T) {
	e := NewPDFText(TextConfig{MaxPages: 2}, nil)
	e.runner = fakeRunner{out: "one\ftwo\fthree\ffour"}

	pages, err := e.ExtractPages(context.Background(), "deck.pdf")
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("pages = %d, want 2", len(pages))
	}
}

func TestPDFTextUnreadable(t *testing.T) {
	e := NewPDFText(TextConfig{}, nil)
	e.runner = fakeRunner{err: errors.New("exit status 1")}

	// primary fails, fallback cannot open a nonexistent file
	_, err := e.ExtractPages(context.Background(), "/does/not/exist.pdf")
	if err == nil {
		t.Fatal("expected error for unreadable document")
	}
}

func TestExtractFinancialDataEndToEnd(t *testing.T) {
	page := "Acme Robotics pitch\n" +
		"Annual revenue $1.2M and growing.\n" +
		"We are raising $3M.\n" +
		"TAM $8B.\n" +
		"Our team has 12 employees.\n" +
		"Business model: usage-based pricing for industrial robots\n"

	e := NewPDFText(TextConfig{}, nil)
	e.runner = fakeRunner{out: page}
	svc := NewService(e, nil)

	data, err := svc.ExtractFinancialData(context.Background(), "deck.pdf")
	if err != nil {
		t.Fatalf("ExtractFinancialData: %v", err)
	}
	if data.CurrentRevenue == nil || *data.CurrentRevenue != 1_200_000 {
		t.Errorf("current revenue = %v", fmtPtr(data.CurrentRevenue))
	}
	if data.FundingRequested == nil || *data.FundingRequested != 3_000_000 {
		t.Errorf("funding = %v", fmtPtr(data.FundingRequested))
	}
	if data.MarketSizeTAM == nil || *data.MarketSizeTAM != 8e9 {
		t.Errorf("tam = %v", fmtPtr(data.MarketSizeTAM))
	}
	if data.TeamSize == nil || *data.TeamSize != 12 {
		t.Errorf("team size = %v", data.TeamSize)
	}
	if data.BusinessModel == "" {
		t.Error("business model not extracted")
	}
	if data.ExtractionConfidence <= 0 || data.ExtractionConfidence > 1 {
		t.Errorf("confidence = %v", data.ExtractionConfidence)
	}
	if data.CompletenessScore <= 0 || data.CompletenessScore > 1 {
		t.Errorf("completeness = %v", data.CompletenessScore)
	}
}

func fmtPtr(p *float64) string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", *p)
}
