package analyzer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/profilescan/internal/model"
)

// defaultBatchConcurrency bounds parallel analyses when no option is given.
const defaultBatchConcurrency = 4

// BatchItem is one named record queued for analysis. Name is typically the
// source file path and serves reporting only.
type BatchItem struct {
	Name   string
	Record *model.ProfileRecord
}

// BatchResult pairs a batch item with its outcome. Exactly one of Report
// and Err is set.
type BatchResult struct {
	Name   string
	Report *model.AnalysisReport
	Err    error
}

// BatchProcessor analyzes multiple records concurrently.
//
// Design decision: analysis is stateless, so all goroutines share a single
// Analyzer instead of constructing one per record. errgroup.SetLimit bounds
// the concurrency without a hand-rolled worker pool.
type BatchProcessor struct {
	analyzer    *Analyzer
	concurrency int
	logger      *slog.Logger

	// results are stored by input index so output order matches input order.
	results []BatchResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(bp *BatchProcessor) {
		bp.logger = logger
	}
}

// WithConcurrency caps the number of records analyzed at once. Values below
// one are ignored.
func WithConcurrency(n int) BatchOption {
	return func(bp *BatchProcessor) {
		if n > 0 {
			bp.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor on top of the given Analyzer.
func NewBatchProcessor(analyzer *Analyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// Process analyzes every item at the given mode and returns results in
// input order. Individual failures are recorded per item rather than
// aborting the batch; the error return reports cancellation only.
func (bp *BatchProcessor) Process(ctx context.Context, items []BatchItem, mode model.Mode) ([]BatchResult, error) {
	bp.logger.Info("starting batch analysis",
		"total_records", len(items),
		"mode", mode.String(),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	bp.results = make([]BatchResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, item := range items {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report, err := bp.analyzer.Analyze(item.Record, mode)

			bp.mu.Lock()
			bp.results[i] = BatchResult{Name: item.Name, Report: report, Err: err}
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("analysis failed",
					"record", item.Name,
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch analysis complete",
		"total_records", len(items),
		"elapsed", time.Since(startTime).String(),
	)
	return bp.results, err
}
