package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sustainabot/src/service/estimator"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", h.cfg.Agent.Name, h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List detectable code patterns",
		Run: func(cmd *cobra.Command, args []string) {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Pattern", "Severity", "Enabled", "Description"})
			for _, d := range estimator.NewDetectors(h.cfg.Estimator) {
				t.AppendRow(table.Row{d.Name(), d.Severity(), d.IsEnabled(), d.Description()})
			}
			t.Render()
		},
	}
}
