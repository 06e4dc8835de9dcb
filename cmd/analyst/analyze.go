package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/damiloju/startup-analyst/internal/agents"
	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/entity"
	"github.com/damiloju/startup-analyst/internal/extract"
	"github.com/damiloju/startup-analyst/internal/ml"
	"github.com/damiloju/startup-analyst/internal/pipeline"
	"github.com/damiloju/startup-analyst/internal/store"
)

func newAnalyzeCmd() *cobra.Command {
	var args struct {
		company     string
		industry    string
		description string
		pdf         string
		manual      []string
		noML        bool
		useAgents   bool
		dbPath      string
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one company and print the result as JSON",
		RunE: func(cmd *cobra.Command, argv []string) error {
			cfg := common.LoadConfig()

			manual, err := parseManual(args.manual)
			if err != nil {
				return err
			}

			text := extract.NewPDFText(extract.TextConfig{
				Pdftotext: cfg.Extractor.Pdftotext,
				MaxPages:  cfg.Extractor.MaxPages,
			}, nil)

			var collaborator agents.Collaborator
			if c := agents.NewClient(agents.ClientConfig{
				BaseURL: cfg.Agents.BaseURL,
				APIKey:  cfg.Agents.APIKey,
				Timeout: cfg.Agents.Timeout,
			}, nil); c != nil {
				collaborator = c
			}

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
				Agents:         collaborator,
				Predictor:      predictor,
				ExtractTimeout: cfg.Extractor.Timeout,
				Version:        cfg.Model.Version,
			})

			res, err := orchestrator.Analyze(cmd.Context(), entity.AnalysisInput{
				CompanyName:      args.company,
				Industry:         args.industry,
				Description:      args.description,
				PDFPath:          args.pdf,
				ManualData:       manual,
				UsePDFExtraction: args.pdf != "",
				UseAIAgents:      args.useAgents,
				UseMLPrediction:  !args.noML,
			})
			if err != nil {
				return err
			}

			if args.dbPath != "" {
				history, err := store.Open(args.dbPath, nil)
				if err != nil {
					return err
				}
				defer history.Close()
				if err := history.Save(cmd.Context(), res); err != nil {
					return err
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&args.company, "company", "", "company name (required)")
	cmd.Flags().StringVar(&args.industry, "industry", "", "industry label")
	cmd.Flags().StringVar(&args.description, "description", "", "short company description")
	cmd.Flags().StringVar(&args.pdf, "pdf", "", "pitch deck PDF to extract financials from")
	cmd.Flags().StringArrayVar(&args.manual, "set", nil, "manual feature value, key=number (repeatable)")
	cmd.Flags().BoolVar(&args.noML, "no-ml", false, "skip the prediction step")
	cmd.Flags().BoolVar(&args.useAgents, "agents", false, "run the qualitative analysis collaborator")
	cmd.Flags().StringVar(&args.dbPath, "db", "", "record the result in this history database")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func parseManual(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want key=number", p)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", p, err)
		}
		out[strings.TrimSpace(key)] = f
	}
	return out, nil
}
