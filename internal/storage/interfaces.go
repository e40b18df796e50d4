package storage

import (
	"context"

	"recsys-export-lab/internal/domain"
)

// BehavioralEventStore provides access to raw telemetry event storage.
type BehavioralEventStore interface {
	// Insert adds a new event. Returns ErrDuplicateKey if the event ID exists.
	Insert(ctx context.Context, e *domain.RawBehavioralEvent) error

	// InsertBulk adds multiple events atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, events []*domain.RawBehavioralEvent) error

	// FetchPage returns up to limit events matching the action types,
	// strictly after the cursor (an event ID, empty for the first page),
	// ordered by (created_at, id) ASC.
	FetchPage(ctx context.Context, actionTypes []string, afterCursor string, limit int) ([]*domain.RawBehavioralEvent, error)
}

// PurchaseStore provides access to order lines joined with their parent
// orders.
type PurchaseStore interface {
	// GetAll retrieves every purchase snapshot, ordered by (created_at, order_item_id) ASC.
	GetAll(ctx context.Context) ([]*domain.RawPurchaseContext, error)
}

// FeedbackStore provides access to review records.
type FeedbackStore interface {
	// GetByTargetType retrieves reviews for a target entity kind
	// (e.g. "Product"), ordered by (created_at, user_id) ASC.
	GetByTargetType(ctx context.Context, targetType string) ([]*domain.RawReviewRecord, error)
}

// CategoryStore provides access to the flat category taxonomy.
type CategoryStore interface {
	// GetAll retrieves every category row.
	GetAll(ctx context.Context) ([]*domain.FlatCategory, error)
}

// ShopStore provides access to shop activity state.
type ShopStore interface {
	// GetActiveIDs retrieves the IDs of shops that are approved and not paused.
	GetActiveIDs(ctx context.Context) ([]string, error)
}

// ProductStore provides access to raw catalog rows with variant, detail,
// and category sub-documents already joined.
type ProductStore interface {
	// GetForExport retrieves up to limit catalog rows (0 = all), ordered by ID ASC.
	GetForExport(ctx context.Context, limit int) ([]*domain.RawProduct, error)
}

// InteractionDatasetStore is a sink for normalized interaction events.
type InteractionDatasetStore interface {
	// InsertBulk appends a batch of interaction events to the dataset.
	InsertBulk(ctx context.Context, events []*domain.InteractionEvent) error
}

// ProductDatasetStore is a sink for extracted product records.
type ProductDatasetStore interface {
	// InsertBulk appends a batch of product records to the dataset.
	InsertBulk(ctx context.Context, records []*domain.ProductRecord) error
}
