package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/moralreport/pkg/config"
	"github.com/benjaminschreck/moralreport/pkg/export"
	"github.com/benjaminschreck/moralreport/pkg/logging"
	"github.com/benjaminschreck/moralreport/pkg/metrics"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moralreport",
		Short: "Generate Word reports from moral intelligence test results",
		Long: `moralreport turns a moral intelligence test result (overall score,
category, interpretation and per-aspect scores) into a .docx report.

It runs as an HTTP service (serve) or renders single payloads from the
command line (render). inspect validates and prints an existing report.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file (default $"+config.EnvConfigFile+")")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error, off")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration named by the persistent flags and
// installs the configured logger as the global one.
func loadConfig(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, nil, err
	}
	if level != "" {
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	log := cfg.Logger()
	logging.SetLogger(log)
	return cfg, log, nil
}

// newService builds the export service described by cfg
func newService(cfg *config.Config, log *logging.Logger, m *metrics.Manager) (*export.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return export.New(
		export.WithLocation(loc),
		export.WithLogger(log),
		export.WithMetrics(m),
		export.WithSpoolDir(cfg.SpoolDir),
		export.WithLabelCase(cfg.LabelCase()),
	), nil
}
