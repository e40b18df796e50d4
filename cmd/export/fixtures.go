package main

import (
	"context"
	"fmt"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/storage/memory"
)

// memoryStores bundles the in-memory source stores used for fixture runs.
type memoryStores struct {
	behavioral *memory.BehavioralEventStore
	purchases  *memory.PurchaseStore
	feedbacks  *memory.FeedbackStore
	products   *memory.ProductStore
	shops      *memory.ShopStore
	categories *memory.CategoryStore
}

func newMemoryStores() *memoryStores {
	return &memoryStores{
		behavioral: memory.NewBehavioralEventStore(),
		purchases:  memory.NewPurchaseStore(),
		feedbacks:  memory.NewFeedbackStore(),
		products:   memory.NewProductStore(),
		shops:      memory.NewShopStore(),
		categories: memory.NewCategoryStore(),
	}
}

// loadFixtureData seeds a small demo marketplace so the pipeline can run
// end to end without external databases.
func loadFixtureData(ctx context.Context, stores *memoryStores) error {
	categories := []*domain.FlatCategory{
		{ID: "cat-women", Name: "Women", Level: 1},
		{ID: "cat-dresses", Name: "Dresses", ParentID: strPtr("cat-women"), Level: 2},
		{ID: "cat-men", Name: "Men", Level: 1},
		{ID: "cat-shirts", Name: "Shirts", ParentID: strPtr("cat-men"), Level: 2},
	}
	for _, c := range categories {
		if err := stores.categories.Insert(ctx, c); err != nil {
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
	}

	if err := stores.shops.Insert(ctx, "shop-1", true, false); err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	if err := stores.shops.Insert(ctx, "shop-paused", true, true); err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}

	products := []*domain.RawProduct{
		{
			ID:          "product-dress",
			ShopID:      "shop-1",
			IsApproved:  domain.ApprovalApproved,
			AllowToSell: true,
			Variants: []domain.Variant{
				{BeforeSalePrice: floatPtr(40), SalePrice: floatPtr(35)},
				{BeforeSalePrice: floatPtr(60)},
			},
			Details: []domain.ProductDetail{
				{CategoryName: "Gender", Value: "Nữ"},
				{CategoryName: "Style", Values: []string{"Casual", "Street"}},
				{CategoryName: "Season", Values: []string{"Summer"}},
			},
			CategoryIDs: []string{"cat-women", "cat-dresses"},
			CreatedAt:   1700000000,
		},
		{
			ID:              "product-shirt",
			ShopID:          "shop-paused",
			IsApproved:      domain.ApprovalApproved,
			AllowToSell:     true,
			BeforeSalePrice: floatPtr(25),
			Details: []domain.ProductDetail{
				{CategoryName: "Gender", Value: "Nam"},
			},
			CategoryIDs: []string{"cat-men", "cat-shirts"},
			CreatedAt:   1700001000,
		},
	}
	for _, p := range products {
		if err := stores.products.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	events := []*domain.RawBehavioralEvent{
		{
			ID:         "ev-1",
			ActorID:    "user-1",
			TargetID:   "product-dress",
			ShopID:     "shop-1",
			ActionType: domain.ActionViewProduct,
			TargetType: "Product",
			CreatedAt:  1700010000,
			VisitedAts: []int64{1700010000, 1700010300},
		},
		{
			ID:         "ev-2",
			ActorID:    "user-1",
			TargetID:   "product-dress",
			ShopID:     "shop-1",
			ActionType: domain.ActionAddCart,
			TargetType: "Product",
			CreatedAt:  1700010600,
		},
		{
			ID:         "ev-3",
			ActorID:    "user-2",
			TargetID:   "product-shirt",
			ShopID:     "shop-paused",
			ActionType: domain.ActionAddFavorite,
			TargetType: "Product",
			CreatedAt:  1700011000,
		},
	}
	if err := stores.behavioral.InsertBulk(ctx, events); err != nil {
		return fmt.Errorf("insert behavioral events: %w", err)
	}

	purchases := []*domain.RawPurchaseContext{
		{
			OrderItemID:     "item-1",
			ProductID:       "product-dress",
			Quantity:        2,
			CreatedAt:       1700020000,
			VariantPrice:    floatPtr(35),
			UserID:          "user-1",
			ShopID:          "shop-1",
			PaymentMethodID: "6080f987ca33c1913de1be38",
			ShippingStatus:  domain.ShippingShipped,
			PaymentStatus:   domain.PaymentPending,
			Address:         domain.Address{Country: "VN", StateName: "Hà Nội"},
		},
		{
			OrderItemID:     "item-2",
			ProductID:       "product-shirt",
			Quantity:        1,
			CreatedAt:       1700021000,
			ProductPrice:    floatPtr(25),
			UserID:          "user-2",
			ShopID:          "shop-paused",
			PaymentMethodID: "6080f24dca33c1913de1be35",
			ShippingStatus:  domain.ShippingShipping,
			PaymentStatus:   domain.PaymentPaid,
			Address:         domain.Address{Country: "SG", StateName: "Singapore"},
		},
	}
	for _, p := range purchases {
		if err := stores.purchases.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert purchase %s: %w", p.OrderItemID, err)
		}
	}

	reviews := []*domain.RawReviewRecord{
		{UserID: "user-1", TargetID: "product-dress", ShopID: "shop-1", VoteStar: 5, CreatedAt: 1700030000},
		{UserID: "user-2", TargetID: "product-shirt", ShopID: "shop-paused", VoteStar: 3, CreatedAt: 1700031000},
	}
	for _, r := range reviews {
		if err := stores.feedbacks.Insert(ctx, r, "Product"); err != nil {
			return fmt.Errorf("insert review for %s: %w", r.TargetID, err)
		}
	}

	return nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
