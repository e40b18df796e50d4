package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

func TestPurchaseStore_GetAllJoinsOrders(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPurchaseStore(pool)

	order := &OrderRow{
		ID:              "order-1",
		UserID:          "user-1",
		ShopID:          "shop-1",
		PaymentMethodID: "6080f987ca33c1913de1be38",
		ShippingStatus:  domain.ShippingShipped,
		PaymentStatus:   domain.PaymentPaid,
		Address:         domain.Address{Country: "VN", StateName: "Hà Nội"},
		CreatedAt:       1700000000,
	}
	require.NoError(t, store.InsertOrder(ctx, order))

	items := []*OrderItemRow{
		{
			ID:           "item-2",
			OrderID:      "order-1",
			ProductID:    "product-b",
			Quantity:     1,
			CreatedAt:    1700000100,
			VariantPrice: ptr(19.9),
		},
		{
			ID:           "item-1",
			OrderID:      "order-1",
			ProductID:    "product-a",
			Quantity:     3,
			CreatedAt:    1700000000,
			ProductPrice: ptr(5.0),
		},
	}
	for _, item := range items {
		require.NoError(t, store.InsertOrderItem(ctx, item))
	}

	purchases, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 2)

	// Ordered by (created_at, id).
	first := purchases[0]
	assert.Equal(t, "item-1", first.OrderItemID)
	assert.Equal(t, "product-a", first.ProductID)
	assert.Equal(t, 3, first.Quantity)
	assert.Nil(t, first.VariantPrice)
	require.NotNil(t, first.ProductPrice)
	assert.InDelta(t, 5.0, *first.ProductPrice, 0.0001)

	// Order context is carried onto every line.
	for _, p := range purchases {
		assert.Equal(t, "user-1", p.UserID)
		assert.Equal(t, "shop-1", p.ShopID)
		assert.Equal(t, order.PaymentMethodID, p.PaymentMethodID)
		assert.Equal(t, domain.ShippingShipped, p.ShippingStatus)
		assert.Equal(t, domain.PaymentPaid, p.PaymentStatus)
		assert.Equal(t, "VN", p.Address.Country)
		assert.Equal(t, "Hà Nội", p.Address.StateName)
	}

	second := purchases[1]
	require.NotNil(t, second.VariantPrice)
	assert.InDelta(t, 19.9, *second.VariantPrice, 0.0001)
}

func TestPurchaseStore_InsertOrderDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewPurchaseStore(pool)

	order := &OrderRow{ID: "order-dup", UserID: "u", ShopID: "s"}
	require.NoError(t, store.InsertOrder(ctx, order))

	err := store.InsertOrder(ctx, order)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestPurchaseStore_InsertOrderItemMissingOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewPurchaseStore(pool)

	err := store.InsertOrderItem(context.Background(), &OrderItemRow{
		ID:        "orphan",
		OrderID:   "no-such-order",
		ProductID: "p",
		Quantity:  1,
	})
	assert.Error(t, err)
}
