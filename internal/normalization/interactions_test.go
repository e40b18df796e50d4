package normalization

import (
	"testing"

	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/scoring"
)

func floatPtr(f float64) *float64 { return &f }

func TestBehavioralToEvents_FanOut(t *testing.T) {
	raw := &domain.RawBehavioralEvent{
		ID:         "ev-1",
		ActorID:    "user-1",
		TargetID:   "product-1",
		ShopID:     "shop-1",
		ActionType: domain.ActionViewProduct,
		CreatedAt:  1000,
		VisitedAts: []int64{1000, 2000, 3000},
	}

	events := BehavioralToEvents(raw)

	if len(events) != 3 {
		t.Fatalf("Expected 3 events for 3 visits, got %d", len(events))
	}
	for i, ts := range []int64{1000, 2000, 3000} {
		e := events[i]
		if e.Timestamp != ts {
			t.Errorf("Event %d: expected timestamp %d, got %d", i, ts, e.Timestamp)
		}
		if e.EventType != domain.EventTypeView {
			t.Errorf("Event %d: expected view, got %s", i, e.EventType)
		}
		if e.EventValue != 1.0 {
			t.Errorf("Event %d: expected value 1.0, got %v", i, e.EventValue)
		}
		if e.OrderValue != 0 || e.BasketSize != 0 {
			t.Errorf("Event %d: expected zero order fields", i)
		}
		if e.PaymentMethod != domain.Unknown || e.DeliveryLocation != domain.Unknown {
			t.Errorf("Event %d: expected unknown payment/delivery placeholders", i)
		}
	}
}

func TestBehavioralToEvents_CreatedAtFallback(t *testing.T) {
	raw := &domain.RawBehavioralEvent{
		ID:         "ev-1",
		ActorID:    "user-1",
		TargetID:   "product-1",
		ActionType: domain.ActionAddCart,
		CreatedAt:  5000,
	}

	events := BehavioralToEvents(raw)

	if len(events) != 1 {
		t.Fatalf("Expected 1 event from creation timestamp, got %d", len(events))
	}
	if events[0].Timestamp != 5000 {
		t.Errorf("Expected timestamp 5000, got %d", events[0].Timestamp)
	}
	if events[0].EventType != domain.EventTypeAddToCart || events[0].EventValue != 2.5 {
		t.Errorf("Expected (add_to_cart, 2.5), got (%s, %v)", events[0].EventType, events[0].EventValue)
	}
}

func TestBehavioralToEvents_DropsZeroTimestamps(t *testing.T) {
	raw := &domain.RawBehavioralEvent{
		ID:         "ev-1",
		TargetID:   "product-1",
		ActionType: domain.ActionAddFavorite,
		VisitedAts: []int64{0, 2000, 0},
	}

	events := BehavioralToEvents(raw)

	if len(events) != 1 {
		t.Fatalf("Expected 1 event after dropping zero timestamps, got %d", len(events))
	}
	if events[0].Timestamp != 2000 {
		t.Errorf("Expected timestamp 2000, got %d", events[0].Timestamp)
	}
}

func TestBehavioralToEvents_NoUsableTimestamp(t *testing.T) {
	raw := &domain.RawBehavioralEvent{
		ID:         "ev-1",
		TargetID:   "product-1",
		ActionType: domain.ActionViewProduct,
	}

	if events := BehavioralToEvents(raw); len(events) != 0 {
		t.Errorf("Expected no events without timestamps, got %d", len(events))
	}
}

func TestBehavioralToEvents_EmptyActorBecomesUnknown(t *testing.T) {
	raw := &domain.RawBehavioralEvent{
		ID:         "ev-1",
		TargetID:   "product-1",
		ActionType: domain.ActionViewProduct,
		CreatedAt:  1000,
	}

	events := BehavioralToEvents(raw)

	if len(events) != 1 || events[0].ActorID != domain.Unknown {
		t.Errorf("Expected unknown actor placeholder, got %+v", events)
	}
}

func TestPurchaseToEvent_Complete(t *testing.T) {
	scorer := scoring.NewScorer(domain.NewPaymentMethodTable("cash-id", []string{"epay-id"}))

	raw := &domain.RawPurchaseContext{
		OrderItemID:     "item-1",
		ProductID:       "product-1",
		Quantity:        2,
		CreatedAt:       1000,
		VariantPrice:    floatPtr(29.9),
		ProductPrice:    floatPtr(99.0),
		UserID:          "user-1",
		ShopID:          "shop-1",
		PaymentMethodID: "cash-id",
		ShippingStatus:  domain.ShippingShipped,
		PaymentStatus:   domain.PaymentPending,
		Address:         domain.Address{Country: "VN", StateName: " Hà Nội "},
	}

	event, defaulted, err := PurchaseToEvent(raw, scorer, DefaultPurchaseValue)
	if err != nil {
		t.Fatalf("PurchaseToEvent failed: %v", err)
	}
	if defaulted {
		t.Error("Expected a scored combination, got defaulted")
	}

	if event.EventType != domain.EventTypePurchase {
		t.Errorf("Expected purchase, got %s", event.EventType)
	}
	if event.EventValue != 5.0 {
		t.Errorf("Expected COD shipped/pending weight 5.0, got %v", event.EventValue)
	}
	if event.OrderValue != 29.9 {
		t.Errorf("Expected variant price 29.9, got %v", event.OrderValue)
	}
	if event.BasketSize != 2 {
		t.Errorf("Expected basket size 2, got %d", event.BasketSize)
	}
	if event.PaymentMethod != domain.PaymentMethodCash {
		t.Errorf("Expected cash, got %s", event.PaymentMethod)
	}
	if event.DeliveryLocation != "hà nội" {
		t.Errorf("Expected lowercased province, got %q", event.DeliveryLocation)
	}
}

func TestPurchaseToEvent_ProductPriceFallback(t *testing.T) {
	scorer := scoring.NewScorer(nil)
	raw := &domain.RawPurchaseContext{
		ProductID:    "product-1",
		CreatedAt:    1000,
		ProductPrice: floatPtr(15.0),
	}

	event, _, err := PurchaseToEvent(raw, scorer, DefaultPurchaseValue)
	if err != nil {
		t.Fatalf("PurchaseToEvent failed: %v", err)
	}
	if event.OrderValue != 15.0 {
		t.Errorf("Expected product price fallback 15.0, got %v", event.OrderValue)
	}
}

func TestPurchaseToEvent_UndefinedCombinationDefaults(t *testing.T) {
	scorer := scoring.NewScorer(domain.NewPaymentMethodTable("cash-id", nil))
	raw := &domain.RawPurchaseContext{
		ProductID:       "product-1",
		CreatedAt:       1000,
		PaymentMethodID: "cash-id",
		ShippingStatus:  domain.ShippingPending,
		PaymentStatus:   domain.PaymentPaid, // COD pending+paid is undefined
	}

	event, defaulted, err := PurchaseToEvent(raw, scorer, 0.25)
	if err != nil {
		t.Fatalf("PurchaseToEvent failed: %v", err)
	}
	if !defaulted {
		t.Error("Expected defaulted for undefined combination")
	}
	if event.EventValue != 0.25 {
		t.Errorf("Expected default value 0.25, got %v", event.EventValue)
	}
}

func TestPurchaseToEvent_Malformed(t *testing.T) {
	scorer := scoring.NewScorer(nil)

	if _, _, err := PurchaseToEvent(&domain.RawPurchaseContext{CreatedAt: 1000}, scorer, 0); err == nil {
		t.Error("Expected error for purchase without product")
	}
	if _, _, err := PurchaseToEvent(&domain.RawPurchaseContext{ProductID: "p"}, scorer, 0); err == nil {
		t.Error("Expected error for purchase without timestamp")
	}
	if _, _, err := PurchaseToEvent(nil, scorer, 0); err == nil {
		t.Error("Expected error for nil purchase")
	}
}

func TestDeliveryLocation(t *testing.T) {
	tests := []struct {
		name string
		addr domain.Address
		want string
	}{
		{"domestic", domain.Address{Country: "VN", StateName: "Đà Nẵng"}, "đà nẵng"},
		{"empty country uses state", domain.Address{StateName: "Hue"}, "hue"},
		{"domestic without state", domain.Address{Country: "VN"}, domain.Unknown},
		{"singapore", domain.Address{Country: "SG", StateName: "Whatever"}, "singapore"},
		{"other country", domain.Address{Country: "US", StateName: "Texas"}, domain.Unknown},
	}

	scorer := scoring.NewScorer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &domain.RawPurchaseContext{ProductID: "p", CreatedAt: 1, Address: tt.addr}
			event, _, err := PurchaseToEvent(raw, scorer, 0)
			if err != nil {
				t.Fatalf("PurchaseToEvent failed: %v", err)
			}
			if event.DeliveryLocation != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, event.DeliveryLocation)
			}
		})
	}
}

func TestReviewToEvent(t *testing.T) {
	raw := &domain.RawReviewRecord{
		UserID:    "user-1",
		TargetID:  "product-1",
		ShopID:    "shop-1",
		VoteStar:  4,
		CreatedAt: 1000,
	}

	event := ReviewToEvent(raw)

	if event.EventType != domain.EventTypeReview {
		t.Errorf("Expected review, got %s", event.EventType)
	}
	if event.EventValue != 4.0 {
		t.Errorf("Expected star rating 4.0, got %v", event.EventValue)
	}
	if event.Timestamp != 1000 {
		t.Errorf("Expected timestamp 1000, got %d", event.Timestamp)
	}
	if event.PaymentMethod != domain.Unknown || event.DeliveryLocation != domain.Unknown {
		t.Error("Expected unknown payment/delivery placeholders")
	}
}
