// Package orchestrator sequences the export pipeline:
// source fetch → normalize → score → merge, across the three interaction
// sources, plus the independent catalog export.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"

	"recsys-export-lab/internal/catalog"
	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/ingestion"
	"recsys-export-lab/internal/normalization"
	"recsys-export-lab/internal/observability"
	"recsys-export-lab/internal/storage"
)

// Source names used in result reporting, in merge order.
const (
	sourceBehavioral = "behavioral"
	sourcePurchase   = "purchase"
	sourceReview     = "review"
)

// reviewTargetType selects product reviews from the feedback store.
const reviewTargetType = "Product"

// Orchestrator coordinates the interaction and catalog exports.
type Orchestrator struct {
	behavioralSource ingestion.BehavioralSource
	purchaseStore    storage.PurchaseStore
	feedbackStore    storage.FeedbackStore

	productStore  storage.ProductStore
	shopStore     storage.ShopStore
	categoryStore storage.CategoryStore

	interactionSink storage.InteractionDatasetStore
	productSink     storage.ProductDatasetStore

	normalizer      *normalization.Runner
	batchSize       int
	behavioralLimit int
	logger          *log.Logger
	verbose         bool
}

// Options for creating an Orchestrator.
type Options struct {
	// Interaction sources
	BehavioralSource ingestion.BehavioralSource
	PurchaseStore    storage.PurchaseStore
	FeedbackStore    storage.FeedbackStore

	// Catalog stores
	ProductStore  storage.ProductStore
	ShopStore     storage.ShopStore
	CategoryStore storage.CategoryStore

	// Optional dataset sinks
	InteractionSink storage.InteractionDatasetStore
	ProductSink     storage.ProductDatasetStore

	// Normalization
	Normalizer *normalization.Runner

	// Options
	BatchSize       int // behavioral page size, default ingestion.DefaultBatchSize
	BehavioralLimit int // cap on behavioral records, 0 = all
	Logger          *log.Logger
	Verbose         bool
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	normalizer := opts.Normalizer
	if normalizer == nil {
		normalizer = normalization.NewRunner(normalization.RunnerOptions{Logger: opts.Logger})
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		behavioralSource: opts.BehavioralSource,
		purchaseStore:    opts.PurchaseStore,
		feedbackStore:    opts.FeedbackStore,
		productStore:     opts.ProductStore,
		shopStore:        opts.ShopStore,
		categoryStore:    opts.CategoryStore,
		interactionSink:  opts.InteractionSink,
		productSink:      opts.ProductSink,
		normalizer:       normalizer,
		batchSize:        opts.BatchSize,
		behavioralLimit:  opts.BehavioralLimit,
		logger:           logger,
		verbose:          opts.Verbose,
	}
}

// RunResult aggregates the outcome of one pipeline run. Partial output is
// always preserved: a failed source contributes its error string and
// whatever records were collected before the failure.
type RunResult struct {
	Processed int // raw records consumed across all sources
	Emitted   int // interaction events produced
	Skipped   int // malformed records dropped
	Defaulted int // purchases scored with the fallback weight
	Errors    []string
}

// sourceOutcome is the per-source result slot used for deterministic merge.
type sourceOutcome struct {
	name   string
	events []*domain.InteractionEvent
	stats  normalization.BatchStats
	err    error
}

// NormalizeInteractions fetches and normalizes the three interaction
// sources. Sources run concurrently; results merge by concatenation in
// fixed order (behavioral, purchase, review) so output ordering is
// reproducible. A failed source does not fail the run.
func (o *Orchestrator) NormalizeInteractions(ctx context.Context) ([]*domain.InteractionEvent, *RunResult, error) {
	outcomes := [3]sourceOutcome{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		outcomes[0] = o.runBehavioral(ctx)
	}()
	go func() {
		defer wg.Done()
		outcomes[1] = o.runPurchases(ctx)
	}()
	go func() {
		defer wg.Done()
		outcomes[2] = o.runReviews(ctx)
	}()
	wg.Wait()

	result := &RunResult{}
	var merged []*domain.InteractionEvent
	for _, out := range outcomes {
		if out.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", out.name, out.err))
		}
		merged = append(merged, out.events...)
		result.Processed += out.stats.Processed
		result.Emitted += out.stats.Emitted
		result.Skipped += out.stats.Skipped
		result.Defaulted += out.stats.Defaulted
		observability.RecordNormalization(out.name, out.stats.Processed, out.stats.Emitted, out.stats.Skipped)
		o.log("source %s: %d raw, %d emitted, %d skipped", out.name, out.stats.Processed, out.stats.Emitted, out.stats.Skipped)
	}
	observability.RecordPurchaseValuesDefaulted(result.Defaulted)

	if o.interactionSink != nil && len(merged) > 0 {
		if err := o.interactionSink.InsertBulk(ctx, merged); err != nil {
			return merged, result, fmt.Errorf("write interaction dataset: %w", err)
		}
	}

	return merged, result, nil
}

// ExportProducts runs the independent catalog export for up to limit rows
// (0 = all).
func (o *Orchestrator) ExportProducts(ctx context.Context, limit int) ([]*domain.ProductRecord, *catalog.ExportResult, error) {
	runner := catalog.NewRunner(o.productStore, o.shopStore, o.categoryStore, o.logger)
	records, result, err := runner.Export(ctx, limit)
	if err != nil {
		return nil, nil, err
	}

	if o.productSink != nil && len(records) > 0 {
		if err := o.productSink.InsertBulk(ctx, records); err != nil {
			return records, result, fmt.Errorf("write product dataset: %w", err)
		}
	}

	return records, result, nil
}

// runBehavioral drains the paginated telemetry source and fans it out.
// Records accumulated before a fetch failure are still normalized.
func (o *Orchestrator) runBehavioral(ctx context.Context) sourceOutcome {
	out := sourceOutcome{name: sourceBehavioral}
	if o.behavioralSource == nil {
		return out
	}

	fetcher := ingestion.NewFetcher(ingestion.FetcherOptions{
		Source:    o.behavioralSource,
		BatchSize: o.batchSize,
		Logger:    o.logger,
	})

	raws, err := fetcher.FetchAll(ctx, ingestion.TrackedActionTypes, o.behavioralLimit)
	if err != nil {
		out.err = fmt.Errorf("%w: %v", storage.ErrSourceUnavailable, err)
	}
	out.events, out.stats = o.normalizer.NormalizeBehavioral(raws)
	return out
}

func (o *Orchestrator) runPurchases(ctx context.Context) sourceOutcome {
	out := sourceOutcome{name: sourcePurchase}
	if o.purchaseStore == nil {
		return out
	}

	raws, err := o.purchaseStore.GetAll(ctx)
	if err != nil {
		out.err = fmt.Errorf("%w: %v", storage.ErrSourceUnavailable, err)
		return out
	}
	out.events, out.stats = o.normalizer.NormalizePurchases(raws)
	return out
}

func (o *Orchestrator) runReviews(ctx context.Context) sourceOutcome {
	out := sourceOutcome{name: sourceReview}
	if o.feedbackStore == nil {
		return out
	}

	raws, err := o.feedbackStore.GetByTargetType(ctx, reviewTargetType)
	if err != nil {
		out.err = fmt.Errorf("%w: %v", storage.ErrSourceUnavailable, err)
		return out
	}
	out.events, out.stats = o.normalizer.NormalizeReviews(raws)
	return out
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		o.logger.Printf("[orchestrator] "+format, args...)
	}
}
