// Package normalization expands raw source records into flat interaction
// events for the training dataset.
package normalization

import (
	"fmt"

	"recsys-export-lab/internal/catalog"
	"recsys-export-lab/internal/domain"
	"recsys-export-lab/internal/scoring"
)

// BehavioralToEvents fans one raw behavioral record out into one
// InteractionEvent per occurrence timestamp. When the record carries no
// occurrence timestamps the single creation timestamp is used. Zero
// timestamps are dropped; a record with no usable timestamp yields nothing.
func BehavioralToEvents(raw *domain.RawBehavioralEvent) []*domain.InteractionEvent {
	eventType := domain.CanonicalEventType(raw.ActionType)
	eventValue := scoring.ScoreBehavioral(eventType)

	timestamps := raw.VisitedAts
	if len(timestamps) == 0 {
		timestamps = []int64{raw.CreatedAt}
	}

	var events []*domain.InteractionEvent
	for _, ts := range timestamps {
		if ts == 0 {
			continue
		}
		events = append(events, &domain.InteractionEvent{
			ActorID:          orUnknown(raw.ActorID),
			TargetID:         orUnknown(raw.TargetID),
			EventType:        eventType,
			Timestamp:        ts,
			ShopID:           orUnknown(raw.ShopID),
			EventValue:       eventValue,
			OrderValue:       0,
			BasketSize:       0,
			PaymentMethod:    domain.Unknown,
			DeliveryLocation: domain.Unknown,
		})
	}
	return events
}

// PurchaseToEvent transforms one purchase snapshot into exactly one
// InteractionEvent. Combinations the scoring matrix leaves undefined fall
// back to defaultValue; the second result reports that fallback so callers
// can count it.
func PurchaseToEvent(raw *domain.RawPurchaseContext, scorer *scoring.Scorer, defaultValue float64) (*domain.InteractionEvent, bool, error) {
	if raw == nil || raw.ProductID == "" {
		return nil, false, fmt.Errorf("purchase without product: %w", errMalformed)
	}
	if raw.CreatedAt == 0 {
		return nil, false, fmt.Errorf("purchase %s without timestamp: %w", raw.OrderItemID, errMalformed)
	}

	value, scored := scorer.ScorePurchase(raw.PaymentMethodID, raw.ShippingStatus, raw.PaymentStatus)
	if !scored {
		value = defaultValue
	}

	return &domain.InteractionEvent{
		ActorID:          orUnknown(raw.UserID),
		TargetID:         raw.ProductID,
		EventType:        domain.EventTypePurchase,
		Timestamp:        raw.CreatedAt,
		ShopID:           orUnknown(raw.ShopID),
		EventValue:       value,
		OrderValue:       orderValue(raw),
		BasketSize:       raw.Quantity,
		PaymentMethod:    scorer.Methods().MethodName(raw.PaymentMethodID),
		DeliveryLocation: catalog.LowerStrip(deliveryLocation(raw.Address)),
	}, !scored, nil
}

// ReviewToEvent transforms one review record into exactly one
// InteractionEvent weighted by the star rating.
func ReviewToEvent(raw *domain.RawReviewRecord) *domain.InteractionEvent {
	return &domain.InteractionEvent{
		ActorID:          orUnknown(raw.UserID),
		TargetID:         orUnknown(raw.TargetID),
		EventType:        domain.EventTypeReview,
		Timestamp:        raw.CreatedAt,
		ShopID:           orUnknown(raw.ShopID),
		EventValue:       scoring.ScoreReview(raw.VoteStar),
		OrderValue:       0,
		BasketSize:       0,
		PaymentMethod:    domain.Unknown,
		DeliveryLocation: domain.Unknown,
	}
}

// orderValue resolves the line price: the purchased variant's price when
// present, otherwise the embedded product snapshot's price, otherwise 0.
func orderValue(raw *domain.RawPurchaseContext) float64 {
	if raw.VariantPrice != nil {
		return *raw.VariantPrice
	}
	if raw.ProductPrice != nil {
		return *raw.ProductPrice
	}
	return 0
}

// deliveryLocation derives the dataset location from the order address:
// domestic orders (country "VN" or empty) use the province name, Singapore
// orders the literal city-state, anything else is unknown.
func deliveryLocation(addr domain.Address) string {
	switch addr.Country {
	case "VN", "":
		if addr.StateName == "" {
			return domain.Unknown
		}
		return addr.StateName
	case "SG":
		return "singapore"
	}
	return domain.Unknown
}

func orUnknown(s string) string {
	if s == "" {
		return domain.Unknown
	}
	return s
}
