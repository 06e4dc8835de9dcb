// Command analyst runs the analysis pipeline from the terminal: one-off
// company analyses, model training, and history export.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "analyst",
		Long:         "Startup success-likelihood analysis from pitch documents and manual metrics",
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newAnalyzeDirCmd(), newTrainCmd(), newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
