package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PersistenceWorker periodically rewrites collections whose immediate write failed
type PersistenceWorker struct {
	registry *Registry
	interval time.Duration
	logger   *zap.Logger
}

func NewPersistenceWorker(registry *Registry, interval time.Duration, logger *zap.Logger) *PersistenceWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PersistenceWorker{
		registry: registry,
		interval: interval,
		logger:   logger.Named("persistence_worker"),
	}
}

// Start runs until ctx is cancelled. Pending dirty collections are flushed once more on shutdown.
func (w *PersistenceWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Persistence worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.flushOnShutdown()
			w.logger.Info("Persistence worker stopped")
			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *PersistenceWorker) flush(ctx context.Context) {
	dirty := w.registry.Dirty()
	if len(dirty) == 0 {
		return
	}
	if err := w.registry.Flush(ctx); err != nil {
		w.logger.Warn("Retry of dirty collections failed",
			zap.Int("dirty", len(dirty)),
			zap.Error(err),
		)
	}
}

func (w *PersistenceWorker) flushOnShutdown() {
	if len(w.registry.Dirty()) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w.flush(ctx)
}
