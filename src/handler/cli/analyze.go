package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sustainabot/src/controller"
	"sustainabot/src/service/report"
	"sustainabot/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		format    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a single file",
		Long:  "Estimates energy, time, carbon and memory for every function in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer h.exportMetrics()
			file := args[0]
			if format == "" {
				format = h.cfg.Output.Format
			}

			analysisCtrl := controller.NewAnalysisController(h.cfg, h.metrics)
			records, err := analysisCtrl.AnalyzeFile(cmd.Context(), file)
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return err
			}

			reportCtrl := controller.NewReportController(h.cfg)
			if outputDir != "" {
				h.cfg.Output.OutputDir = outputDir
				path, err := reportCtrl.WriteRecords(records, file, format)
				if err != nil {
					return fmt.Errorf("generating report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			output, err := reportCtrl.RenderRecords(records, format)
			if errors.Is(err, report.ErrUnsupportedFormat) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Unsupported format: %s (showing json)\n", format)
			} else if err != nil {
				return fmt.Errorf("generating report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, sarif, markdown)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the report to this directory")

	return cmd
}
