// Package worker runs background jobs for the service binaries.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/cryptopulse/newsfeed/internal/aggregator"
)

// CrawlWorker runs the aggregation pipeline on a fixed interval with an
// immediate initial run, stopping when its context is cancelled.
type CrawlWorker struct {
	Aggregator *aggregator.Aggregator
	Interval   time.Duration
}

func (w *CrawlWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}

	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *CrawlWorker) runOnce(ctx context.Context) {
	if err := w.Aggregator.Run(ctx); err != nil {
		slog.Error("crawl-worker: aggregation run failed", "error", err)
	}
}
