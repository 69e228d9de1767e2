package lockout

import (
	"context"
	"log/slog"
	"time"

	"showreel/config"
	"showreel/internal/domain/repository"

	"go.uber.org/fx"
)

// PruneWorkerParams defines the required parameters
type PruneWorkerParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Store  repository.LockoutStore
	Logger *slog.Logger
}

// RegisterPruneWorker starts a background sweep that drops expired lockout
// entries, keeping the table bounded during long uptimes. The sweep stops
// when the application shuts down.
func RegisterPruneWorker(params PruneWorkerParams) {
	interval := params.Config.Auth.Lockout.PruneInterval
	if interval <= 0 {
		return
	}

	pruneCtx, cancel := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go runPruneLoop(pruneCtx, params.Store, params.Logger, interval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()

			return nil
		},
	})
}

func runPruneLoop(ctx context.Context, store repository.LockoutStore, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Prune()
			logger.LogAttrs(ctx, slog.LevelDebug, "Lockout table pruned")
		}
	}
}
