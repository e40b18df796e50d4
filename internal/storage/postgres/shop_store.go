package postgres

import (
	"context"
	"fmt"

	"recsys-export-lab/internal/storage"
)

// ShopStore implements storage.ShopStore using PostgreSQL.
type ShopStore struct {
	pool *Pool
}

// NewShopStore creates a new ShopStore.
func NewShopStore(pool *Pool) *ShopStore {
	return &ShopStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ShopStore = (*ShopStore)(nil)

// Insert adds a shop. Returns ErrDuplicateKey if the ID exists.
func (s *ShopStore) Insert(ctx context.Context, id string, approved, pauseMode bool) error {
	if id == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO shops (id, is_approved, pause_mode)
		VALUES ($1, $2, $3)
	`

	_, err := s.pool.Exec(ctx, query, id, approved, pauseMode)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetActiveIDs retrieves the IDs of shops that are approved and not paused,
// ordered ASC.
func (s *ShopStore) GetActiveIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT id
		FROM shops
		WHERE is_approved AND NOT pause_mode
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get active shop ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan shop id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shop ids: %w", err)
	}
	return ids, nil
}
