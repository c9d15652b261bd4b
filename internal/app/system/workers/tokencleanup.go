// internal/app/system/workers/tokencleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper deletes expired single-use tokens (password resets, OAuth states).
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenCleanup periodically runs each named sweeper.
type TokenCleanup struct {
	sweepers map[string]Sweeper
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTokenCleanup creates the worker. Names appear in log entries.
func NewTokenCleanup(sweepers map[string]Sweeper, logger *zap.Logger, interval time.Duration) *TokenCleanup {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &TokenCleanup{
		sweepers: sweepers,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *TokenCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("token cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the loop and waits for it to finish.
func (w *TokenCleanup) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("token cleanup worker stopped")
}

func (w *TokenCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce(context.Background())
		}
	}
}

// RunOnce sweeps every store once.
func (w *TokenCleanup) RunOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	for name, s := range w.sweepers {
		n, err := s.DeleteExpired(ctx)
		if err != nil {
			w.log.Error("token cleanup failed", zap.String("store", name), zap.Error(err))
			continue
		}
		if n > 0 {
			w.log.Info("expired tokens removed", zap.String("store", name), zap.Int64("count", n))
		}
	}
}
