package normalization

import (
	"errors"
	"log"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/scoring"
)

// errMalformed marks a raw record that cannot be normalized. Such records
// are skipped and counted, never aborting the batch.
var errMalformed = errors.New("malformed record")

// DefaultPurchaseValue is the weight applied to purchase records whose
// (shipping, payment) combination the scoring matrix leaves undefined.
const DefaultPurchaseValue = 0.0

// Runner applies the per-source transforms over raw record batches.
type Runner struct {
	scorer       *scoring.Scorer
	defaultValue float64
	logger       *log.Logger
}

// RunnerOptions configures a normalization Runner.
type RunnerOptions struct {
	Scorer       *scoring.Scorer
	DefaultValue *float64 // weight for unscored purchases, DefaultPurchaseValue if nil
	Logger       *log.Logger
}

// NewRunner creates a normalization runner.
func NewRunner(opts RunnerOptions) *Runner {
	scorer := opts.Scorer
	if scorer == nil {
		scorer = scoring.NewScorer(nil)
	}
	defaultValue := DefaultPurchaseValue
	if opts.DefaultValue != nil {
		defaultValue = *opts.DefaultValue
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{scorer: scorer, defaultValue: defaultValue, logger: logger}
}

// BatchStats counts the outcome of normalizing one raw batch.
type BatchStats struct {
	Processed int // raw records consumed
	Emitted   int // interaction events produced
	Skipped   int // malformed records dropped
	Defaulted int // purchases falling back to the default weight
}

// NormalizeBehavioral fans out a batch of raw behavioral records.
func (r *Runner) NormalizeBehavioral(raws []*domain.RawBehavioralEvent) ([]*domain.InteractionEvent, BatchStats) {
	stats := BatchStats{Processed: len(raws)}
	var events []*domain.InteractionEvent
	for _, raw := range raws {
		if raw == nil || raw.TargetID == "" {
			stats.Skipped++
			r.logger.Printf("[normalize] skipping behavioral event without target")
			continue
		}
		expanded := BehavioralToEvents(raw)
		if len(expanded) == 0 {
			stats.Skipped++
			r.logger.Printf("[normalize] behavioral event %s has no usable timestamp", raw.ID)
			continue
		}
		events = append(events, expanded...)
		stats.Emitted += len(expanded)
	}
	return events, stats
}

// NormalizePurchases transforms a batch of purchase snapshots.
func (r *Runner) NormalizePurchases(raws []*domain.RawPurchaseContext) ([]*domain.InteractionEvent, BatchStats) {
	stats := BatchStats{Processed: len(raws)}
	var events []*domain.InteractionEvent
	for _, raw := range raws {
		event, defaulted, err := PurchaseToEvent(raw, r.scorer, r.defaultValue)
		if err != nil {
			stats.Skipped++
			r.logger.Printf("[normalize] %v", err)
			continue
		}
		if defaulted {
			stats.Defaulted++
			r.logger.Printf("[normalize] purchase %s has no defined weight for (%s, %s), using %v",
				raw.OrderItemID, raw.ShippingStatus, raw.PaymentStatus, r.defaultValue)
		}
		events = append(events, event)
		stats.Emitted++
	}
	return events, stats
}

// NormalizeReviews transforms a batch of review records.
func (r *Runner) NormalizeReviews(raws []*domain.RawReviewRecord) ([]*domain.InteractionEvent, BatchStats) {
	stats := BatchStats{Processed: len(raws)}
	var events []*domain.InteractionEvent
	for _, raw := range raws {
		if raw == nil || raw.TargetID == "" || raw.CreatedAt == 0 {
			stats.Skipped++
			r.logger.Printf("[normalize] skipping malformed review record")
			continue
		}
		events = append(events, ReviewToEvent(raw))
		stats.Emitted++
	}
	return events, stats
}
