package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/damiloju/startup-analyst/internal/ml"
	"github.com/damiloju/startup-analyst/internal/pipeline"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not a real pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "acme.pdf"))
	writeFile(t, filepath.Join(root, "sub", "globex.PDF"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, ".hidden", "secret.pdf"))

	// no extractor wired: extraction silently unavailable, prediction runs
	orc := pipeline.New(pipeline.Options{
		Predictor: ml.NewPredictor(ml.Config{Samples: 300, Seed: 42, CVFolds: 2}, nil),
	})
	r := NewRunner(orc, nil, WithWorkers(2))

	results, stats, err := r.AnalyzeDirectory(context.Background(), root)
	if err != nil {
		t.Fatalf("AnalyzeDirectory: %v", err)
	}
	if stats.Matched != 2 {
		t.Errorf("matched = %d, want 2 (txt and hidden skipped)", stats.Matched)
	}
	if stats.Succeeded != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}

	companies := map[string]bool{}
	for _, res := range results {
		companies[res.Company] = true
		if res.Err != "" {
			t.Errorf("%s: %s", res.Path, res.Err)
		}
		if res.AnalysisID == "" || res.Recommendation == "" {
			t.Errorf("incomplete result: %+v", res)
		}
	}
	if !companies["acme"] || !companies["globex"] {
		t.Errorf("companies = %v", companies)
	}
}

func TestAnalyzeDirectoryEmptyRoot(t *testing.T) {
	orc := pipeline.New(pipeline.Options{})
	r := NewRunner(orc, nil)
	if _, _, err := r.AnalyzeDirectory(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty root")
	}
}
