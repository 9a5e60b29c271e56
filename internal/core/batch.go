package core

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one report in a batch.
type Outcome struct {
	Path   string
	Result *Result
	Err    error
}

// BatchStats summarises a batch.
type BatchStats struct {
	Total     int
	Succeeded int
	Failed    int
}

// Batch processes paths with up to workers reports in flight. Every report
// gets its own timeout; a failed report never stops the others. Outcomes
// keep the order of paths.
func (p *Processor) Batch(ctx context.Context, paths []string, workers int, timeout time.Duration) ([]Outcome, BatchStats) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]Outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	stats := BatchStats{Total: len(paths)}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			rctx := gctx
			if timeout > 0 {
				var cancel context.CancelFunc
				rctx, cancel = context.WithTimeout(gctx, timeout)
				defer cancel()
			}
			res, err := p.ProcessFile(rctx, path)
			out[i] = Outcome{Path: path, Result: res, Err: err}

			mu.Lock()
			if err != nil {
				stats.Failed++
			} else {
				stats.Succeeded++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	p.logger.Info("processor.batch.done",
		"total", stats.Total,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return out, stats
}

// Failed lists the source paths of failed outcomes.
func Failed(outcomes []Outcome) []string {
	var paths []string
	for _, o := range outcomes {
		if o.Err != nil {
			paths = append(paths, filepath.Clean(o.Path))
		}
	}
	return paths
}
