package clickhouse

import (
	"context"
	"fmt"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// ProductDatasetStore implements storage.ProductDatasetStore using ClickHouse.
// Re-exported item rows replace earlier versions via ReplacingMergeTree.
type ProductDatasetStore struct {
	conn *Conn
}

// NewProductDatasetStore creates a new ProductDatasetStore.
func NewProductDatasetStore(conn *Conn) *ProductDatasetStore {
	return &ProductDatasetStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ProductDatasetStore = (*ProductDatasetStore)(nil)

// InsertBulk appends a batch of product records to the dataset.
func (s *ProductDatasetStore) InsertBulk(ctx context.Context, records []*domain.ProductRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO product_dataset (
			item_id, status, gender, origin, style, seasons,
			price_min, price_max, category_l1, category_l2, category_l3, category_l4,
			creation_timestamp
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range records {
		if r == nil {
			return storage.ErrInvalidInput
		}
		err = batch.Append(
			r.ItemID, r.Status.String(), r.Gender, r.Origin, r.Style, r.Seasons,
			r.PriceMin, r.PriceMax,
			r.Categories[0], r.Categories[1], r.Categories[2], r.Categories[3],
			r.CreationTimestamp,
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

// GetByItemID retrieves the record of one item. Returns ErrNotFound when the
// item was never exported.
func (s *ProductDatasetStore) GetByItemID(ctx context.Context, itemID string) (*domain.ProductRecord, error) {
	query := `
		SELECT item_id, status, gender, origin, style, seasons,
		       price_min, price_max, category_l1, category_l2, category_l3, category_l4,
		       creation_timestamp
		FROM product_dataset FINAL
		WHERE item_id = ?
	`

	rows, err := s.conn.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("query by item id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate product records: %w", err)
		}
		return nil, storage.ErrNotFound
	}

	var (
		r      domain.ProductRecord
		status string
	)
	err = rows.Scan(
		&r.ItemID, &status, &r.Gender, &r.Origin, &r.Style, &r.Seasons,
		&r.PriceMin, &r.PriceMax,
		&r.Categories[0], &r.Categories[1], &r.Categories[2], &r.Categories[3],
		&r.CreationTimestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("scan product record: %w", err)
	}
	r.Status = domain.ProductStatus(status)

	return &r, nil
}
