package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/damiloju/startup-analyst/internal/batch"
	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/extract"
	"github.com/damiloju/startup-analyst/internal/ml"
	"github.com/damiloju/startup-analyst/internal/pipeline"
	"github.com/damiloju/startup-analyst/internal/store"
)

func newAnalyzeDirCmd() *cobra.Command {
	var args struct {
		dir     string
		workers int
		dbPath  string
	}

	cmd := &cobra.Command{
		Use:   "analyze-dir",
		Short: "Analyze every PDF under a directory",
		RunE: func(cmd *cobra.Command, argv []string) error {
			cfg := common.LoadConfig()

			text := extract.NewPDFText(extract.TextConfig{
				Pdftotext: cfg.Extractor.Pdftotext,
				MaxPages:  cfg.Extractor.MaxPages,
			}, nil)
			predictor := ml.NewPredictor(ml.Config{
				ModelVersion: cfg.Model.Version,
				Samples:      cfg.Model.Samples,
				Seed:         cfg.Model.Seed,
			}, nil)
			if cfg.Model.Path != "" {
				if err := predictor.Load(cfg.Model.Path); err != nil {
					fmt.Fprintf(os.Stderr, "no saved model (%v), training from scratch\n", err)
				}
			}
			orchestrator := pipeline.New(pipeline.Options{
				Extractor:      extract.NewService(text, nil),
				Predictor:      predictor,
				ExtractTimeout: cfg.Extractor.Timeout,
				Version:        cfg.Model.Version,
			})

			opts := []batch.Option{batch.WithWorkers(args.workers)}
			if args.dbPath != "" {
				history, err := store.Open(args.dbPath, nil)
				if err != nil {
					return err
				}
				defer history.Close()
				opts = append(opts, batch.WithHistory(history))
			}

			results, stats, err := batch.NewRunner(orchestrator, nil, opts...).
				AnalyzeDirectory(cmd.Context(), args.dir)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "scanned %d, matched %d, succeeded %d, failed %d\n",
				stats.Scanned, stats.Matched, stats.Succeeded, stats.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&args.dir, "dir", "", "directory of pitch PDFs (required)")
	cmd.Flags().IntVar(&args.workers, "workers", 4, "concurrent analyses")
	cmd.Flags().StringVar(&args.dbPath, "db", "", "record results in this history database")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
