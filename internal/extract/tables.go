package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/damiloju/startup-analyst/internal/entity"
)

// Columns in layout-preserved text are separated by runs of 2+ spaces.
var cellSplit = regexp.MustCompile(`\s{2,}`)

// nonNumeric strips everything but digits and dots before coercion.
var nonNumeric = regexp.MustCompile(`[^\d.]`)

// TablesFromPages scans layout-preserved page text for tabular blocks: two or
// more consecutive lines that each split into the same-ish number of cells.
// The first line of a block is treated as the header row.
func TablesFromPages(pages []string) []entity.TableRecord {
	var tables []entity.TableRecord
	for pageNum, page := range pages {
		lines := strings.Split(page, "\n")
		var block [][]string
		flush := func() {
			if len(block) >= 2 {
				tables = append(tables, entity.TableRecord{
					Page:    pageNum + 1,
					Headers: block[0],
					Rows:    block[1:],
				})
			}
			block = nil
		}
		for _, line := range lines {
			cells := splitCells(line)
			if len(cells) >= 2 {
				block = append(block, cells)
				continue
			}
			flush()
		}
		flush()
	}
	return tables
}

func splitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	parts := cellSplit.Split(trimmed, -1)
	cells := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// AnalyzeTables scans table headers for the financial keywords and collects
// every numeric value found under a matching column, keyed by keyword. The
// full value list is kept so callers can apply the same median discipline as
// regex extraction.
func AnalyzeTables(tables []entity.TableRecord, keywords []string) map[string][]float64 {
	out := make(map[string][]float64)
	for _, table := range tables {
		for col, header := range table.Headers {
			h := strings.ToLower(header)
			for _, kw := range keywords {
				if !strings.Contains(h, kw) {
					continue
				}
				for _, row := range table.Rows {
					if col >= len(row) {
						continue
					}
					if v, ok := coerceNumeric(row[col]); ok {
						out[kw] = append(out[kw], v)
					}
				}
			}
		}
	}
	return out
}

func coerceNumeric(cell string) (float64, bool) {
	s := nonNumeric.ReplaceAllString(cell, "")
	if s == "" || s == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
