package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// BehavioralEventStore implements storage.BehavioralEventStore using PostgreSQL.
type BehavioralEventStore struct {
	pool *Pool
}

// NewBehavioralEventStore creates a new BehavioralEventStore.
func NewBehavioralEventStore(pool *Pool) *BehavioralEventStore {
	return &BehavioralEventStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BehavioralEventStore = (*BehavioralEventStore)(nil)

// Insert adds a new event. Returns ErrDuplicateKey if the event ID exists.
func (s *BehavioralEventStore) Insert(ctx context.Context, e *domain.RawBehavioralEvent) error {
	if e == nil || e.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO behavioral_events (
			id, actor_id, target_id, shop_id, action_type, target_type, created_at, visited_ats
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		e.ID,
		e.ActorID,
		e.TargetID,
		e.ShopID,
		e.ActionType,
		e.TargetType,
		e.CreatedAt,
		e.VisitedAts,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert behavioral event: %w", err)
	}
	return nil
}

// InsertBulk adds multiple events atomically. Fails entire batch on any duplicate.
func (s *BehavioralEventStore) InsertBulk(ctx context.Context, events []*domain.RawBehavioralEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO behavioral_events (
			id, actor_id, target_id, shop_id, action_type, target_type, created_at, visited_ats
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, e := range events {
		if e == nil || e.ID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			e.ID,
			e.ActorID,
			e.TargetID,
			e.ShopID,
			e.ActionType,
			e.TargetType,
			e.CreatedAt,
			e.VisitedAts,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert behavioral event in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// FetchPage returns up to limit events matching the action types, strictly
// after the cursor, ordered by (created_at, id) ASC. The cursor is the ID of
// the last event of the previous page; empty means the first page.
func (s *BehavioralEventStore) FetchPage(ctx context.Context, actionTypes []string, afterCursor string, limit int) ([]*domain.RawBehavioralEvent, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	var (
		rows pgx.Rows
		err  error
	)
	if afterCursor == "" {
		query := `
			SELECT id, actor_id, target_id, shop_id, action_type, target_type, created_at, visited_ats
			FROM behavioral_events
			WHERE cardinality($1::text[]) = 0 OR action_type = ANY($1)
			ORDER BY created_at ASC, id ASC
			LIMIT $2
		`
		rows, err = s.pool.Query(ctx, query, actionTypes, limit)
	} else {
		// Keyset pagination: resume strictly after the cursor row so pages
		// stay stable while new events arrive.
		query := `
			SELECT id, actor_id, target_id, shop_id, action_type, target_type, created_at, visited_ats
			FROM behavioral_events
			WHERE (cardinality($1::text[]) = 0 OR action_type = ANY($1))
			  AND (created_at, id) > (
				SELECT created_at, id FROM behavioral_events WHERE id = $2
			  )
			ORDER BY created_at ASC, id ASC
			LIMIT $3
		`
		rows, err = s.pool.Query(ctx, query, actionTypes, afterCursor, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch behavioral event page: %w", err)
	}
	defer rows.Close()

	return scanBehavioralEvents(rows)
}

func scanBehavioralEvents(rows pgx.Rows) ([]*domain.RawBehavioralEvent, error) {
	var events []*domain.RawBehavioralEvent
	for rows.Next() {
		var e domain.RawBehavioralEvent
		err := rows.Scan(
			&e.ID,
			&e.ActorID,
			&e.TargetID,
			&e.ShopID,
			&e.ActionType,
			&e.TargetType,
			&e.CreatedAt,
			&e.VisitedAts,
		)
		if err != nil {
			return nil, fmt.Errorf("scan behavioral event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate behavioral events: %w", err)
	}
	return events, nil
}
