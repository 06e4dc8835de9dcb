package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextConfig configures the two-stage text extraction.
type TextConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// PDFText extracts plain text from a PDF. Primary strategy is
// `pdftotext -layout` (keeps column alignment, which table parsing needs);
// when the binary is missing or produces nothing it falls back to a pure-Go
// page-by-page reader.
type PDFText struct {
	cfg    TextConfig
	runner Runner
	logger *slog.Logger
}

func NewPDFText(cfg TextConfig, logger *slog.Logger) *PDFText {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &PDFText{cfg: cfg, runner: execRunner{}, logger: logger}
}

// ExtractPages returns one text blob per page. An error means neither
// strategy could read the document.
func (e *PDFText) ExtractPages(ctx context.Context, path string) ([]string, error) {
	pages, err := e.layoutPages(ctx, path)
	if err == nil && nonEmpty(pages) {
		e.logger.Debug("extract.text.ok", "path", path, "method", "pdftotext", "pages", len(pages))
		return pages, nil
	}
	if err != nil {
		e.logger.Warn("extract.text.primary_failed", "path", path, "error", err)
	}

	pages, ferr := e.fallbackPages(path)
	if ferr != nil || !nonEmpty(pages) {
		if ferr == nil {
			ferr = fmt.Errorf("no text content")
		}
		e.logger.Error("extract.text.failed", "path", path, "error", ferr)
		return nil, fmt.Errorf("extract text from %q: %w", path, ferr)
	}
	e.logger.Debug("extract.text.ok", "path", path, "method", "go-pdf", "pages", len(pages))
	return pages, nil
}

func (e *PDFText) layoutPages(ctx context.Context, path string) ([]string, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 256))
	}
	// A form-feed \f is the page separator by default.
	pages := strings.Split(string(out), "\f")
	return capPages(pages, e.cfg.MaxPages), nil
}

func (e *PDFText) fallbackPages(path string) (pages []string, err error) {
	defer func() {
		// the pdf package panics on some malformed files
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("extract.text.close_error", "path", path, "error", cerr)
		}
	}()

	n := r.NumPage()
	for i := 1; i <= n; i++ {
		if e.cfg.MaxPages > 0 && i > e.cfg.MaxPages {
			break
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		txt, perr := p.GetPlainText(nil)
		if perr != nil {
			e.logger.Warn("extract.text.page_failed", "path", path, "page", i, "error", perr)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, txt)
	}
	return pages, nil
}

func capPages(pages []string, max int) []string {
	if max > 0 && len(pages) > max {
		return pages[:max]
	}
	return pages
}

func nonEmpty(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}
