package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sustainabot/src/controller"
	"sustainabot/src/service/report"
	"sustainabot/src/util"
)

func (h *Handler) checkCmd() *cobra.Command {
	var (
		ecoThreshold float64
		format       string
		outputDir    string
	)

	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "Analyze a directory recursively",
		Long:  "Fails when any function's eco score is below the threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer h.exportMetrics()
			if !cmd.Flags().Changed("eco-threshold") {
				ecoThreshold = h.cfg.Thresholds.EcoThreshold
			}
			if ecoThreshold < 0 || ecoThreshold > 100 {
				return fmt.Errorf("--eco-threshold must be within 0-100, got %v", ecoThreshold)
			}
			if format == "" || format == "sarif" {
				format = "text"
			}

			analysisCtrl := controller.NewAnalysisController(h.cfg, h.metrics)
			checkReport, err := analysisCtrl.Check(cmd.Context(), controller.CheckRequest{
				Root:         args[0],
				EcoThreshold: ecoThreshold,
			})
			if err != nil {
				return err
			}

			// the verdict alone decides the exit code from here on
			reportCtrl := controller.NewReportController(h.cfg)
			output, err := reportCtrl.RenderCheck(checkReport, format)
			if errors.Is(err, report.ErrUnsupportedFormat) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Unsupported format: %s (showing text)\n", format)
				format = "text"
			} else if err != nil {
				util.Error("Rendering check report: %v", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), output)

			if outputDir != "" {
				h.cfg.Output.OutputDir = outputDir
				if path, err := reportCtrl.WriteCheck(checkReport, args[0], format); err != nil {
					util.Error("Writing check report: %v", err)
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
				}
			}

			if !checkReport.Passed {
				return ErrCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&ecoThreshold, "eco-threshold", 50, "Minimum eco score threshold (0-100)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Also write the report to this directory")

	return cmd
}
