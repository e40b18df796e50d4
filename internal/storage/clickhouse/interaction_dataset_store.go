package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// InteractionDatasetStore implements storage.InteractionDatasetStore using
// ClickHouse. The dataset is append-only; dedup across export runs is left to
// the ReplacingMergeTree engine.
type InteractionDatasetStore struct {
	conn *Conn
}

// NewInteractionDatasetStore creates a new InteractionDatasetStore.
func NewInteractionDatasetStore(conn *Conn) *InteractionDatasetStore {
	return &InteractionDatasetStore{conn: conn}
}

// Compile-time interface check.
var _ storage.InteractionDatasetStore = (*InteractionDatasetStore)(nil)

// InsertBulk appends a batch of interaction events to the dataset.
func (s *InteractionDatasetStore) InsertBulk(ctx context.Context, events []*domain.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO interaction_dataset (
			actor_id, target_id, event_type, timestamp, shop_id,
			event_value, order_value, basket_size, payment_method, delivery_location
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		if e == nil {
			return storage.ErrInvalidInput
		}
		err = batch.Append(
			e.ActorID, e.TargetID, string(e.EventType), e.Timestamp, e.ShopID,
			e.EventValue, e.OrderValue, int32(e.BasketSize), e.PaymentMethod, e.DeliveryLocation,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByActorID retrieves all events of one actor, ordered by timestamp ASC.
func (s *InteractionDatasetStore) GetByActorID(ctx context.Context, actorID string) ([]*domain.InteractionEvent, error) {
	query := `
		SELECT actor_id, target_id, event_type, timestamp, shop_id,
		       event_value, order_value, basket_size, payment_method, delivery_location
		FROM interaction_dataset
		WHERE actor_id = ?
		ORDER BY timestamp ASC, target_id ASC, event_type ASC
	`

	rows, err := s.conn.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("query by actor id: %w", err)
	}
	defer rows.Close()

	return scanInteractionEvents(rows)
}

func scanInteractionEvents(rows driver.Rows) ([]*domain.InteractionEvent, error) {
	var events []*domain.InteractionEvent
	for rows.Next() {
		var (
			e          domain.InteractionEvent
			eventType  string
			basketSize int32
		)
		err := rows.Scan(
			&e.ActorID, &e.TargetID, &eventType, &e.Timestamp, &e.ShopID,
			&e.EventValue, &e.OrderValue, &basketSize, &e.PaymentMethod, &e.DeliveryLocation,
		)
		if err != nil {
			return nil, fmt.Errorf("scan interaction event: %w", err)
		}
		e.EventType = domain.EventType(eventType)
		e.BasketSize = int(basketSize)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction events: %w", err)
	}
	return events, nil
}
