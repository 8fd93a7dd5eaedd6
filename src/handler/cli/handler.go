package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sustainabot/src/config"
	"sustainabot/src/service/telemetry"
	"sustainabot/src/util"
)

// ErrCheckFailed signals that at least one function is below the eco threshold
var ErrCheckFailed = errors.New("eco threshold check failed")

// Handler handles CLI commands
type Handler struct {
	cfg        *config.Config
	configPath string
	verbose    bool
	rootCmd    *cobra.Command
	metrics    *telemetry.Metrics
}

// New creates a new CLI handler
func New() *Handler {
	h := &Handler{}
	h.setupCommands()
	return h
}

func (h *Handler) setupCommands() {
	h.rootCmd = &cobra.Command{
		Use:           "sustainabot",
		Short:         "Ecological & economic code analysis",
		Long:          "Estimates the resource footprint of functions and gates it on ecological thresholds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return h.loadConfig()
		},
	}

	// Global flags
	h.rootCmd.PersistentFlags().StringVarP(&h.configPath, "config", "c", "",
		"Path to configuration file")
	h.rootCmd.PersistentFlags().BoolVarP(&h.verbose, "verbose", "v", false,
		"Enable verbose logging")

	// Add subcommands
	h.rootCmd.AddCommand(h.analyzeCmd())
	h.rootCmd.AddCommand(h.checkCmd())
	h.rootCmd.AddCommand(h.publishCmd())
	h.rootCmd.AddCommand(h.selfAnalyzeCmd())
	h.rootCmd.AddCommand(h.versionCmd())
	h.rootCmd.AddCommand(h.patternsCmd())
}

func (h *Handler) loadConfig() error {
	loader := config.NewLoader()
	cfg, err := loader.Load(h.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	h.cfg = cfg

	if h.verbose {
		cfg.Logging.Level = "debug"
	}

	util.SetDefaultLogger(cfg.Logging)
	util.Debug("Configuration loaded successfully")
	util.Debug("Log level set to: %s", cfg.Logging.Level)

	h.metrics = telemetry.New()
	return nil
}

// exportMetrics writes run metrics; failures only warn
func (h *Handler) exportMetrics() {
	if h.metrics == nil || h.cfg == nil {
		return
	}
	if err := h.metrics.Export(h.cfg.Metrics); err != nil {
		util.Warn("Exporting metrics: %v", err)
	}
}

// SetOutput redirects command output, mainly for tests
func (h *Handler) SetOutput(stdout, stderr io.Writer) {
	h.rootCmd.SetOut(stdout)
	h.rootCmd.SetErr(stderr)
}

// SetArgs overrides the command line arguments
func (h *Handler) SetArgs(args []string) {
	h.rootCmd.SetArgs(args)
}

// Execute runs the CLI
func (h *Handler) Execute() error {
	return h.rootCmd.Execute()
}

// Run is the main entry point
func Run() {
	handler := New()
	if err := handler.Execute(); err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
