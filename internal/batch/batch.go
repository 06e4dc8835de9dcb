// Package batch runs the analysis pipeline over a directory of pitch
// documents with a bounded worker pool.
package batch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/damiloju/startup-analyst/internal/entity"
	"github.com/damiloju/startup-analyst/internal/pipeline"
	"github.com/damiloju/startup-analyst/internal/store"
)

// FileResult is the per-document outcome of a batch run.
type FileResult struct {
	Path           string  `json:"path"`
	AnalysisID     string  `json:"analysis_id,omitempty"`
	Company        string  `json:"company"`
	Probability    float64 `json:"probability,omitempty"`
	Recommendation string  `json:"recommendation,omitempty"`
	Err            string  `json:"error,omitempty"`
}

// Stats aggregates one batch run.
type Stats struct {
	Scanned   uint32 `json:"scanned"`
	Matched   uint32 `json:"matched"`
	Succeeded uint32 `json:"succeeded"`
	Failed    uint32 `json:"failed"`
}

// Runner fans analysis jobs out to workers. History is optional; when set,
// every successful analysis is recorded.
type Runner struct {
	orc     *pipeline.Orchestrator
	history *store.Store
	logger  *slog.Logger
	workers int
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithHistory(h *store.Store) Option {
	return func(r *Runner) { r.history = h }
}

func NewRunner(orc *pipeline.Orchestrator, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{orc: orc, logger: logger, workers: 4}
	for _, o := range opts {
		o(r)
	}
	return r
}

// AnalyzeDirectory walks root, analyzes every PDF found, and returns
// per-file results plus aggregate stats. Hidden files and directories are
// skipped. The company name defaults to the file name without extension.
func (r *Runner) AnalyzeDirectory(ctx context.Context, root string) ([]FileResult, Stats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, Stats{}, errors.New("root path is required")
	}

	var stats Stats
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			return walkErr
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	results := make([]FileResult, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.analyzeOne(ctx, paths[i])
				if results[i].Err != "" {
					r.logger.Error("batch.file.failed",
						"worker_id", workerID, "path", paths[i], "err", results[i].Err)
				} else {
					r.logger.Info("batch.file.ok",
						"worker_id", workerID, "path", paths[i],
						"probability", results[i].Probability)
				}
			}
		}(w + 1)
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, res := range results {
		if res.Err == "" {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	return results, stats, nil
}

func (r *Runner) analyzeOne(ctx context.Context, path string) FileResult {
	company := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := FileResult{Path: path, Company: company}

	res, err := r.orc.Analyze(ctx, entity.AnalysisInput{
		CompanyName:      company,
		PDFPath:          path,
		UsePDFExtraction: true,
		UseMLPrediction:  true,
	})
	if err != nil {
		out.Err = err.Error()
		return out
	}

	out.AnalysisID = res.AnalysisID
	out.Probability = res.Prediction.SuccessProbability
	out.Recommendation = string(res.Prediction.InvestmentRecommendation)
	if r.history != nil {
		if err := r.history.Save(ctx, res); err != nil {
			out.Err = err.Error()
		}
	}
	return out
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
