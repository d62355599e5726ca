package handlers

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ecocubano/internal/analysis"
	"ecocubano/internal/config"
	"ecocubano/internal/ingest"
	"ecocubano/internal/logger"
	"ecocubano/internal/server"
	"ecocubano/internal/store"
)

// NewServeCmd creates the serve command for starting the HTTP API
func NewServeCmd() *cobra.Command {
	var (
		port     int
		host     string
		input    string
		politics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API for dashboard frontends",
		Long: `Start the HTTP server exposing every analysis as JSON.

The server provides:
  • Per-section endpoints under /api (daily, weekdays, peaks, narratives, ...)
  • A full report at /api/report
  • POST /api/upload to replace the backing export wholesale

Examples:
  # Serve the configured export on the default port
  ecocubano serve

  # Serve a specific file on a custom port
  ecocubano serve --input comentarios.json --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), host, port, input, politics)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the JSON export (default from config)")
	cmd.Flags().BoolVar(&politics, "politics", false, "politics-only pipeline: restrict to 'politica' and drop undated comments")

	return cmd
}

func runServe(ctx context.Context, host string, port int, input string, politics bool) error {
	cfg := config.Get()

	serverCfg := cfg.Server
	if host != "" {
		serverCfg.Host = host
	}
	if port != 0 {
		serverCfg.Port = port
	}
	if input == "" {
		input = cfg.Data.File
	}

	ingestOpts := ingest.Options{Category: cfg.Data.Category, StrictDates: cfg.Data.StrictDates}
	if politics {
		ingestOpts = ingest.Options{Category: "politica", StrictDates: true}
	}

	st := store.New(input, ingestOpts)
	pipeline := analysis.New(cfg.Analysis.Locale)
	srv := server.New(st, pipeline, serverCfg, cfg.Analysis)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", err)
		return err
	}
	return nil
}
