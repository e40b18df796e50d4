package postgres

import (
	"context"
	"fmt"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// CategoryStore implements storage.CategoryStore using PostgreSQL.
type CategoryStore struct {
	pool *Pool
}

// NewCategoryStore creates a new CategoryStore.
func NewCategoryStore(pool *Pool) *CategoryStore {
	return &CategoryStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CategoryStore = (*CategoryStore)(nil)

// Insert adds a category row. Returns ErrDuplicateKey if the ID exists.
func (s *CategoryStore) Insert(ctx context.Context, c *domain.FlatCategory) error {
	if c == nil || c.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO ecategories (id, name, parent_id, level)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query, c.ID, c.Name, c.ParentID, c.Level)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetAll retrieves every category row, ordered by ID ASC.
func (s *CategoryStore) GetAll(ctx context.Context) ([]*domain.FlatCategory, error) {
	query := `
		SELECT id, name, parent_id, level
		FROM ecategories
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.FlatCategory
	for rows.Next() {
		var c domain.FlatCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Level); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
