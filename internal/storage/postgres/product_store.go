package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// ProductStore implements storage.ProductStore using PostgreSQL. Variant and
// detail sub-documents are stored as JSONB.
type ProductStore struct {
	pool *Pool
}

// NewProductStore creates a new ProductStore.
func NewProductStore(pool *Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ProductStore = (*ProductStore)(nil)

// Insert adds a catalog row. Returns ErrDuplicateKey if the ID exists.
func (s *ProductStore) Insert(ctx context.Context, p *domain.RawProduct) error {
	if p == nil || p.ID == "" {
		return storage.ErrInvalidInput
	}

	variants, err := json.Marshal(p.Variants)
	if err != nil {
		return fmt.Errorf("marshal variants: %w", err)
	}
	details, err := json.Marshal(p.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}

	query := `
		INSERT INTO products (
			id, shop_id, deleted_at, is_approved, allow_to_sell, is_sold_out,
			before_sale_price, variants, details, category_ids, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = s.pool.Exec(ctx, query,
		p.ID,
		p.ShopID,
		p.DeletedAt,
		p.IsApproved,
		p.AllowToSell,
		p.IsSoldOut,
		p.BeforeSalePrice,
		variants,
		details,
		p.CategoryIDs,
		p.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetForExport retrieves up to limit catalog rows (0 = all), ordered by ID ASC.
func (s *ProductStore) GetForExport(ctx context.Context, limit int) ([]*domain.RawProduct, error) {
	query := `
		SELECT id, shop_id, deleted_at, is_approved, allow_to_sell, is_sold_out,
		       before_sale_price, variants, details, category_ids, created_at
		FROM products
		ORDER BY id ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get products for export: %w", err)
	}
	defer rows.Close()

	var products []*domain.RawProduct
	for rows.Next() {
		var (
			p        domain.RawProduct
			variants []byte
			details  []byte
		)
		err := rows.Scan(
			&p.ID,
			&p.ShopID,
			&p.DeletedAt,
			&p.IsApproved,
			&p.AllowToSell,
			&p.IsSoldOut,
			&p.BeforeSalePrice,
			&variants,
			&details,
			&p.CategoryIDs,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("unmarshal variants for %s: %w", p.ID, err)
		}
		if err := json.Unmarshal(details, &p.Details); err != nil {
			return nil, fmt.Errorf("unmarshal details for %s: %w", p.ID, err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
