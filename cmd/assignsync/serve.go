package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osse101/AssignmentSync_Go/internal/bootstrap"
	"github.com/osse101/AssignmentSync_Go/internal/runlog"
	"github.com/osse101/AssignmentSync_Go/internal/scheduler"
	"github.com/osse101/AssignmentSync_Go/internal/server"
	"github.com/osse101/AssignmentSync_Go/internal/worker"
)

// NewServeCommand creates the serve command
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sync on a schedule and expose an HTTP API",
		Long: `Run a sync immediately and then every SYNC_INTERVAL, and serve:

  GET  /healthz            liveness
  GET  /readyz             readiness, pings the run history database
  GET  /metrics            Prometheus metrics
  POST /api/v1/sync        queue a run (202, or 409 while one is pending)
  GET  /api/v1/runs        recorded runs
  GET  /api/v1/runs/last   summary of the last run in this process

API routes require the X-API-Key header to match API_KEY. Runs never
overlap; a trigger or tick that finds one pending is dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	cfg, logCloser, err := opts.loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()
	if err := cfg.ValidateServe(); err != nil {
		return WrapExitError(ExitCommandError, ErrMsgLoadConfig, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{WithHistory: true, WithNotifier: true})
	if err != nil {
		return WrapExitError(ExitCommandError, ErrMsgWire, err)
	}

	syncPool := worker.NewPool(worker.SyncWorkers, worker.SyncQueueSize)
	syncPool.Start()
	job := worker.NewSyncJob(app.Driver)
	sched := scheduler.New(syncPool)
	sched.Schedule(cfg.SyncInterval, job, true)

	components := bootstrap.ShutdownComponents{
		App:        app,
		Schedulers: []bootstrap.Stoppable{sched},
		Workers:    []bootstrap.Stoppable{syncPool},
	}

	deps := server.Deps{Sync: worker.NewDispatcher(syncPool, job)}
	if app.History != nil {
		deps.History = app.History
		deps.DB = app.DB

		maintenance := worker.NewPool(maintenanceWorkers, maintenanceWorkers)
		maintenance.Start()
		cleanup := scheduler.New(maintenance)
		cleanup.Schedule(runlog.CleanupInterval, runlog.NewCleanupJob(app.History, runlog.DefaultRetentionDays), true)
		components.Schedulers = append(components.Schedulers, cleanup)
		components.Workers = append(components.Workers, maintenance)
		slog.Info(LogMsgCleanupEnabled, "interval", runlog.CleanupInterval, "retention_days", runlog.DefaultRetentionDays)
	}

	go func() {
		if err := app.FieldMaps.Watch(ctx); err != nil {
			slog.Warn(LogMsgWatcherFailed, "error", err)
		}
	}()

	srv := server.NewServer(server.Config{Port: cfg.Port, APIKey: cfg.APIKey}, deps)
	components.Server = srv

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	slog.Info(LogMsgServing, "port", cfg.Port, "interval", cfg.SyncInterval)

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info(LogMsgSignal)
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, components)

	if serveErr != nil {
		return WrapExitError(ExitFailure, ErrMsgServe, serveErr)
	}
	return nil
}
