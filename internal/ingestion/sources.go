// Package ingestion retrieves raw records from external event sources:
// exhaustive cursor-paginated draining and a live WebSocket telemetry tap.
package ingestion

import (
	"context"

	"recsys-export-lab/internal/domain"
)

// BehavioralSource provides cursor-paginated access to raw behavioral
// events. Pages are strictly sequential: each page's cursor depends on the
// previous page's last record.
type BehavioralSource interface {
	// FetchPage returns up to limit events matching the action types,
	// strictly after the cursor (empty for the first page), ordered by
	// (created_at, id) ASC.
	FetchPage(ctx context.Context, actionTypes []string, afterCursor string, limit int) ([]*domain.RawBehavioralEvent, error)
}

// TrackedActionTypes are the behavioral action types exported to the
// interactions dataset.
var TrackedActionTypes = []string{
	domain.ActionViewProduct,
	domain.ActionAddCart,
	domain.ActionAddFavorite,
}
