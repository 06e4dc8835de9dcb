package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/damiloju/startup-analyst/internal/ml"
)

func newTrainCmd() *cobra.Command {
	var args struct {
		out     string
		samples int
		seed    uint64
		version string
	}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the ensemble on synthetic data and save the model",
		RunE: func(cmd *cobra.Command, argv []string) error {
			predictor := ml.NewPredictor(ml.Config{
				ModelVersion: args.version,
				Samples:      args.samples,
				Seed:         args.seed,
			}, nil)

			perf, err := predictor.Train(cmd.Context())
			if err != nil {
				return err
			}
			if err := predictor.Save(args.out); err != nil {
				return err
			}

			names := make([]string, 0, len(perf))
			for name := range perf {
				names = append(names, name)
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tACCURACY\tAUC\tCV MEAN\tCV STD")
			for _, name := range names {
				m := perf[name]
				fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\n",
					name, m.Accuracy, m.AUC, m.CVMean, m.CVStd)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("model saved to %s\n", args.out)
			return nil
		},
	}

	cmd.Flags().StringVar(&args.out, "out", "analyst-model.gob", "output model path")
	cmd.Flags().IntVar(&args.samples, "samples", 2000, "synthetic training samples")
	cmd.Flags().Uint64Var(&args.seed, "seed", 42, "random seed")
	cmd.Flags().StringVar(&args.version, "version", "2.0-go", "model version tag")
	return cmd
}
