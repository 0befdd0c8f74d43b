package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mmynk/agenda/internal/config"
	"github.com/mmynk/agenda/internal/metrics"
	"github.com/mmynk/agenda/internal/repository"
	"github.com/mmynk/agenda/internal/storage/sqlite"
	"github.com/mmynk/agenda/internal/ui"
	"github.com/mmynk/agenda/internal/viewmodel"
	"github.com/mmynk/agenda/internal/worker"
	"github.com/mmynk/agenda/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dbPath      string
		logLevel    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:           "agenda",
		Short:         "Register names and phone numbers in a local database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}

			// Flags override the environment.
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (env AGENDA_DB_PATH)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env AGENDA_LOG_LEVEL)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (env AGENDA_METRICS_ADDR)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer logFile.Close()
	logging.Setup(logFile, cfg.Level())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStore(reg)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg)
		defer shutdown(srv)
	}

	pool := worker.New(ctx, worker.Options{
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
		OnError: func(err error) {
			slog.Debug("Background task failed", "error", err)
		},
	})
	// Drain pending writes before the store closes.
	defer pool.Close()

	vm := viewmodel.New(repository.New(store, storeMetrics), pool, storeMetrics)
	if err := vm.Start(ctx); err != nil {
		slog.Error("Failed to start view-model", "error", err)
		return err
	}
	defer vm.Close()

	updates, err := vm.Updates(ctx)
	if err != nil {
		return err
	}

	model := ui.New(vm, ui.Options{
		Updates:        updates,
		Errors:         vm.Errors(),
		BannerDuration: cfg.BannerDuration,
	})

	slog.Info("Screen starting")
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		slog.Error("Screen failed", "error", err)
		return err
	}
	slog.Info("Screen closed")
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Metrics server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("Metrics server shutdown failed", "error", err)
	}
}
