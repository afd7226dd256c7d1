package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper removes stale public dashboard entries.
type Sweeper interface {
	SweepStaleIndex(ctx context.Context) (int, error)
}

// IndexSweeper periodically cleans the public share index.
type IndexSweeper struct {
	sweeper  Sweeper
	interval time.Duration
	log      *zap.Logger
}

// NewIndexSweeper creates a new index sweeper.
func NewIndexSweeper(sweeper Sweeper, interval time.Duration, log *zap.Logger) *IndexSweeper {
	return &IndexSweeper{
		sweeper:  sweeper,
		interval: interval,
		log:      log,
	}
}

// Start runs a sweep immediately and then every interval until ctx is done.
func (s *IndexSweeper) Start(ctx context.Context) {
	s.log.Info("index sweeper started", zap.Duration("interval", s.interval))

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("index sweeper stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep, logging the outcome.
func (s *IndexSweeper) RunOnce(ctx context.Context) {
	removed, err := s.sweeper.SweepStaleIndex(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error("index sweep failed", zap.Int("removed", removed), zap.Error(err))
		}
		return
	}
	if removed > 0 {
		s.log.Info("index sweep finished", zap.Int("removed", removed))
	}
}
