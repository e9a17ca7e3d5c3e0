package classifier

import (
	"context"
	"runtime"

	"fjacquet/cashflow-classifier/internal/logging"
	"fjacquet/cashflow-classifier/internal/models"

	"golang.org/x/sync/errgroup"
)

// ConcurrencyThreshold is the entry count below which the worker pool is not
// worth its overhead.
const ConcurrencyThreshold = 100

// ConcurrentProcessor classifies large ledgers with a pool of workers.
// Output order always matches input order.
type ConcurrentProcessor struct {
	logger      logging.Logger
	workerCount int
}

// NewConcurrentProcessor creates a processor. workers <= 0 means one per CPU.
func NewConcurrentProcessor(workers int, logger logging.Logger) *ConcurrentProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ConcurrentProcessor{logger: logger, workerCount: workers}
}

// Workers returns the pool size.
func (cp *ConcurrentProcessor) Workers() int { return cp.workerCount }

// Classify classifies entries, in parallel when there are enough of them and
// more than one worker. It only fails if ctx is cancelled.
func (cp *ConcurrentProcessor) Classify(ctx context.Context, entries []models.LedgerEntry, idx Lookup) ([]models.ClassifiedEntry, []models.UnmatchedWarning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(entries) < ConcurrencyThreshold || cp.workerCount < 2 {
		classified, warnings := Classify(entries, idx)
		return classified, warnings, nil
	}
	return cp.classifyConcurrent(ctx, entries, idx)
}

func (cp *ConcurrentProcessor) classifyConcurrent(ctx context.Context, entries []models.LedgerEntry, idx Lookup) ([]models.ClassifiedEntry, []models.UnmatchedWarning, error) {
	classified := make([]models.ClassifiedEntry, len(entries))
	perRow := make([]*models.UnmatchedWarning, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int, cp.workerCount)

	g.Go(func() error {
		defer close(jobs)
		for i := range entries {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < cp.workerCount; w++ {
		g.Go(func() error {
			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				// each index is written by exactly one worker
				classified[i], perRow[i] = ClassifyEntry(entries[i], idx)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var warnings []models.UnmatchedWarning
	for _, w := range perRow {
		if w != nil {
			warnings = append(warnings, *w)
		}
	}
	SortWarnings(warnings)

	cp.logger.Debug("Concurrent classification completed",
		logging.F(logging.FieldCount, len(entries)),
		logging.F(logging.FieldWorkers, cp.workerCount))

	return classified, warnings, nil
}
