package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sustainabot/src/controller"
)

// selfSource is the estimator's own source, relative to the repository root
const selfSource = "src/service/estimator/golang.go"

func (h *Handler) selfAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-analyze",
		Short: "Show analysis of sustainabot itself",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer h.exportMetrics()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "SustainaBot Self-Analysis")
			fmt.Fprintln(out, "=========================")
			fmt.Fprintln(out)

			if _, err := os.Stat(selfSource); err != nil {
				fmt.Fprintln(out, "Run from sustainabot repository root.")
				return nil
			}

			records, err := controller.NewAnalysisController(h.cfg, h.metrics).AnalyzeFile(cmd.Context(), selfSource)
			if err != nil {
				return err
			}

			output, err := controller.NewReportController(h.cfg).RenderRecords(records, "text")
			if err != nil {
				return err
			}
			fmt.Fprint(out, output)
			return nil
		},
	}
}
