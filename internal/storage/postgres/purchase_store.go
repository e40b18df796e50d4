package postgres

import (
	"context"
	"fmt"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

// OrderRow is one row of the orders table.
type OrderRow struct {
	ID              string
	UserID          string
	ShopID          string
	PaymentMethodID string
	ShippingStatus  string
	PaymentStatus   string
	Address         domain.Address
	CreatedAt       int64
}

// OrderItemRow is one row of the order_items table.
type OrderItemRow struct {
	ID           string
	OrderID      string
	ProductID    string
	Quantity     int
	CreatedAt    int64
	VariantPrice *float64
	ProductPrice *float64
}

// PurchaseStore implements storage.PurchaseStore using PostgreSQL.
type PurchaseStore struct {
	pool *Pool
}

// NewPurchaseStore creates a new PurchaseStore.
func NewPurchaseStore(pool *Pool) *PurchaseStore {
	return &PurchaseStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PurchaseStore = (*PurchaseStore)(nil)

// InsertOrder adds an order. Returns ErrDuplicateKey if the ID exists.
func (s *PurchaseStore) InsertOrder(ctx context.Context, o *OrderRow) error {
	if o == nil || o.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO orders (
			id, user_id, shop_id, payment_method_id, shipping_status, payment_status,
			address_country, address_state_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		o.ID,
		o.UserID,
		o.ShopID,
		o.PaymentMethodID,
		o.ShippingStatus,
		o.PaymentStatus,
		o.Address.Country,
		o.Address.StateName,
		o.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// InsertOrderItem adds an order line. Returns ErrDuplicateKey if the ID exists.
func (s *PurchaseStore) InsertOrderItem(ctx context.Context, item *OrderItemRow) error {
	if item == nil || item.ID == "" || item.OrderID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO order_items (
			id, order_id, product_id, quantity, created_at, variant_price, product_price
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		item.ID,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt,
		item.VariantPrice,
		item.ProductPrice,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetAll retrieves every order line joined with its parent order, ordered by
// (created_at, order_item_id) ASC.
func (s *PurchaseStore) GetAll(ctx context.Context) ([]*domain.RawPurchaseContext, error) {
	query := `
		SELECT
			oi.id, oi.product_id, oi.quantity, oi.created_at, oi.variant_price, oi.product_price,
			o.user_id, o.shop_id, o.payment_method_id, o.shipping_status, o.payment_status,
			o.address_country, o.address_state_name
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		ORDER BY oi.created_at ASC, oi.id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*domain.RawPurchaseContext
	for rows.Next() {
		var p domain.RawPurchaseContext
		err := rows.Scan(
			&p.OrderItemID,
			&p.ProductID,
			&p.Quantity,
			&p.CreatedAt,
			&p.VariantPrice,
			&p.ProductPrice,
			&p.UserID,
			&p.ShopID,
			&p.PaymentMethodID,
			&p.ShippingStatus,
			&p.PaymentStatus,
			&p.Address.Country,
			&p.Address.StateName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return purchases, nil
}
