package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/moralreport/pkg/metrics"
	"github.com/benjaminschreck/moralreport/pkg/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP export service",
		Long: `Serve exposes POST /api/export-word, GET /healthz and GET /metrics.

Examples:
  moralreport serve
  moralreport serve --addr 127.0.0.1:9000`,
		RunE: runServeCmd,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides config addr)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	m := metrics.NewManager(metrics.WithProcessCollectors())
	svc, err := newService(cfg, log, m)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, svc, log, server.WithMetrics(m)).Run(ctx)
}
