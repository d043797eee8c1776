package bootstrap

import (
	"context"
	"log/slog"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server     StoppableServer
	Schedulers []Stoppable
	Workers    []Stoppable
	App        *App
}

// StoppableServer drains within the shutdown deadline
type StoppableServer interface {
	Stop(ctx context.Context) error
}

// Stoppable is a component stopped without a deadline
type Stoppable interface {
	Stop()
}

// GracefulShutdown stops components in order:
// 1. HTTP server (stop accepting triggers)
// 2. Scheduler (no new ticks)
// 3. Workers (cancel the in-flight run)
// 4. Run history (close the pool)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		} else {
			slog.Info(LogMsgServerStopped)
		}
	}

	for _, s := range c.Schedulers {
		s.Stop()
	}

	for _, w := range c.Workers {
		w.Stop()
	}
	if len(c.Workers) > 0 {
		slog.Info(LogMsgWorkersStopped)
	}

	if c.App != nil && c.App.DB != nil {
		c.App.Close()
		slog.Info(LogMsgHistoryClosed)
	}
}
