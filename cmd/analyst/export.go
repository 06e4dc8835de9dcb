package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/damiloju/startup-analyst/internal/export"
	"github.com/damiloju/startup-analyst/internal/store"
)

func newExportCmd() *cobra.Command {
	var args struct {
		dbPath  string
		out     string
		company string
		limit   int
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the analysis history to an XLSX workbook",
		RunE: func(cmd *cobra.Command, argv []string) error {
			history, err := store.Open(args.dbPath, nil)
			if err != nil {
				return err
			}
			defer history.Close()

			raw, err := export.NewService(history, nil).
				ExportHistoryXLSX(cmd.Context(), args.company, args.limit)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args.out, raw, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args.out, err)
			}
			fmt.Printf("wrote %s (%d bytes)\n", args.out, len(raw))
			return nil
		},
	}

	cmd.Flags().StringVar(&args.dbPath, "db", "./analyst.db", "history database path")
	cmd.Flags().StringVar(&args.out, "out", "analyses.xlsx", "output workbook path")
	cmd.Flags().StringVar(&args.company, "company", "", "filter by exact company name")
	cmd.Flags().IntVar(&args.limit, "limit", 0, "max rows (0 = all)")
	return cmd
}
