package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage"
)

func TestInteractionDatasetStore_InsertBulkAndGetByActorID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewInteractionDatasetStore(conn)

	events := []*domain.InteractionEvent{
		{
			ActorID:          "user-1",
			TargetID:         "product-2",
			EventType:        domain.EventTypePurchase,
			Timestamp:        1700000100,
			ShopID:           "shop-1",
			EventValue:       1.0,
			OrderValue:       59.8,
			BasketSize:       2,
			PaymentMethod:    domain.PaymentMethodCash,
			DeliveryLocation: "hà nội",
		},
		{
			ActorID:          "user-1",
			TargetID:         "product-1",
			EventType:        domain.EventTypeView,
			Timestamp:        1700000000,
			ShopID:           "shop-1",
			EventValue:       1.0,
			PaymentMethod:    domain.Unknown,
			DeliveryLocation: domain.Unknown,
		},
		{
			ActorID:          "user-2",
			TargetID:         "product-1",
			EventType:        domain.EventTypeReview,
			Timestamp:        1700000200,
			ShopID:           "shop-1",
			EventValue:       4.0,
			PaymentMethod:    domain.Unknown,
			DeliveryLocation: domain.Unknown,
		},
	}
	require.NoError(t, store.InsertBulk(ctx, events))

	got, err := store.GetByActorID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by timestamp.
	assert.Equal(t, domain.EventTypeView, got[0].EventType)
	assert.Equal(t, "product-1", got[0].TargetID)

	purchase := got[1]
	assert.Equal(t, domain.EventTypePurchase, purchase.EventType)
	assert.InDelta(t, 59.8, purchase.OrderValue, 0.0001)
	assert.Equal(t, 2, purchase.BasketSize)
	assert.Equal(t, domain.PaymentMethodCash, purchase.PaymentMethod)
	assert.Equal(t, "hà nội", purchase.DeliveryLocation)
}

func TestInteractionDatasetStore_InsertBulkEmpty(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewInteractionDatasetStore(conn)
	require.NoError(t, store.InsertBulk(context.Background(), nil))
}

func TestProductDatasetStore_InsertBulkAndGetByItemID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductDatasetStore(conn)

	record := &domain.ProductRecord{
		ItemID:            "product-1",
		Status:            domain.StatusActive,
		Gender:            "female",
		Origin:            "vietnam",
		Style:             "casual|street",
		Seasons:           "summer",
		PriceMin:          ptr(35.0),
		PriceMax:          ptr(60.0),
		Categories:        [domain.MaxCategoryLevels]string{"women", "dresses", domain.Unknown, domain.Unknown},
		CreationTimestamp: 1700000000,
	}
	require.NoError(t, store.InsertBulk(ctx, []*domain.ProductRecord{record}))

	got, err := store.GetByItemID(ctx, "product-1")
	require.NoError(t, err)

	assert.Equal(t, record.ItemID, got.ItemID)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Equal(t, "female", got.Gender)
	assert.Equal(t, "casual|street", got.Style)
	require.NotNil(t, got.PriceMin)
	assert.InDelta(t, 35.0, *got.PriceMin, 0.0001)
	require.NotNil(t, got.PriceMax)
	assert.InDelta(t, 60.0, *got.PriceMax, 0.0001)
	assert.Equal(t, record.Categories, got.Categories)
	assert.Equal(t, record.CreationTimestamp, got.CreationTimestamp)
}

func TestProductDatasetStore_GetByItemIDNotFound(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProductDatasetStore(conn)

	_, err := store.GetByItemID(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
