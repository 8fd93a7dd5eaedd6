package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sustainabot/src/controller"
)

func (h *Handler) publishCmd() *cobra.Command {
	var (
		sink   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "publish <dir>",
		Short: "Publish findings to the fleet shared context",
		Long:  "Scans a directory and appends pattern, threshold and rating findings to the shared context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer h.exportMetrics()
			if sink != "" {
				h.cfg.Fleet.Sink = sink
			}
			if format != "json" {
				format = "text"
			}

			analysisCtrl := controller.NewAnalysisController(h.cfg, h.metrics)
			result, err := analysisCtrl.Publish(cmd.Context(), controller.PublishRequest{
				Root:       args[0],
				Thresholds: h.cfg.Thresholds,
			})
			if result != nil {
				output, rerr := controller.NewReportController(h.cfg).Generator().GenerateFindings(result.Findings, format)
				if rerr != nil {
					return fmt.Errorf("generating report: %w", rerr)
				}
				fmt.Fprint(cmd.OutOrStdout(), output)
				fmt.Fprintf(cmd.ErrOrStderr(), "\nRun %s: %d findings, efficiency rating %s\n",
					result.RunID, len(result.Findings), result.Rating)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&sink, "sink", "", "Shared context sink (memory, file, http, postgres)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json)")

	return cmd
}
