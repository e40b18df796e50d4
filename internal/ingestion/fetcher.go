package ingestion

import (
	"context"
	"log"
	"time"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/observability"
)

// DefaultBatchSize is the page size used when none is configured.
const DefaultBatchSize = 1000

// Fetcher exhaustively drains a cursor-paginated behavioral source in
// bounded batches.
type Fetcher struct {
	source    BehavioralSource
	batchSize int
	logger    *log.Logger
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	Source    BehavioralSource
	BatchSize int // default DefaultBatchSize
	Logger    *log.Logger
}

// NewFetcher creates a paginated source fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{source: opts.Source, batchSize: batchSize, logger: logger}
}

// FetchAll drains the source for the given action types. A positive limit
// caps the total number of records; limit <= 0 drains to the end. Batches
// are requested strictly sequentially after the last-seen cursor; the drain
// stops when a page comes back short (end of data) or the limit is reached.
// On a fetch error the accumulated records are returned together with the
// error, without retrying the failed page.
func (f *Fetcher) FetchAll(ctx context.Context, actionTypes []string, limit int) ([]*domain.RawBehavioralEvent, error) {
	var all []*domain.RawBehavioralEvent
	cursor := ""

	for {
		batchSize := f.batchSize
		if limit > 0 {
			remaining := limit - len(all)
			if remaining <= 0 {
				break
			}
			if remaining < batchSize {
				batchSize = remaining
			}
		}

		start := time.Now()
		page, err := f.source.FetchPage(ctx, actionTypes, cursor, batchSize)
		observability.RecordFetchPage("behavioral", time.Since(start).Seconds())
		if err != nil {
			f.logger.Printf("[fetch] aborting after %d records: %v", len(all), err)
			return all, err
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		cursor = page[len(page)-1].ID

		// A short page means the source is exhausted.
		if len(page) < batchSize {
			break
		}
	}

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
