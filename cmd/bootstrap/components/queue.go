package components

import (
	"context"
	"log/slog"

	"cargo-backoffice/internal/infra/queuestore"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/pkg/config"
	"cargo-backoffice/internal/usecase/scanqueue"

	"go.uber.org/fx"
)

var QueueModule = fx.Module("scanqueue",
	fx.Provide(
		fx.Annotate(
			NewQueueStore,
			fx.As(new(scanqueue.Store)),
		),
		NewScanQueue,
	),
	fx.Invoke(StartQueueAutoRetry),
)

func NewQueueStore(cfg config.Config) *queuestore.FileStore {
	return queuestore.NewFileStore(cfg.Scan.QueuePath)
}

func NewScanQueue(store scanqueue.Store, syncer scanqueue.Syncer, clk clock.Clock, logger *slog.Logger) (*scanqueue.Queue, error) {
	return scanqueue.NewQueue(store, syncer, clk, logger)
}

// StartQueueAutoRetry runs the periodic sync loop for the lifetime of
// the app.
func StartQueueAutoRetry(lc fx.Lifecycle, queue *scanqueue.Queue, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go queue.StartAutoRetry(ctx, cfg.Scan.QueueRetryInterval)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
