package domain

// Unknown is the placeholder written into string fields when the source
// record carries no usable value.
const Unknown = "unknown"

// EventType is the canonical interaction type emitted to the training dataset.
type EventType string

const (
	EventTypeView      EventType = "view"
	EventTypeFavorite  EventType = "favorite"
	EventTypeAddToCart EventType = "add_to_cart"
	EventTypePurchase  EventType = "purchase"
	EventTypeReview    EventType = "review"
)

// String returns the string representation of EventType.
func (e EventType) String() string {
	return string(e)
}

// Tracking action types as recorded by the telemetry collector.
const (
	ActionViewProduct   = "view_product"
	ActionAddCart       = "add_cart"
	ActionAddFavorite   = "add_product_to_favorite"
	ActionBuyProduct    = "buy_product"
	ActionReviewProduct = "review"
)

// CanonicalEventType maps a raw tracking action type to the canonical
// dataset event type. Unrecognized actions map to EventTypeReview, matching
// the collector's catch-all bucket.
func CanonicalEventType(actionType string) EventType {
	switch actionType {
	case ActionViewProduct:
		return EventTypeView
	case ActionAddCart:
		return EventTypeAddToCart
	case ActionAddFavorite:
		return EventTypeFavorite
	case ActionBuyProduct:
		return EventTypePurchase
	}
	return EventTypeReview
}

// InteractionEvent is one flat training record for the recommender.
// Corresponds to one row of the interactions dataset.
type InteractionEvent struct {
	ActorID          string    // user performing the interaction
	TargetID         string    // product the interaction refers to
	EventType        EventType // canonical event type
	Timestamp        int64     // Unix timestamp in seconds
	ShopID           string    // shop owning the target product
	EventValue       float64   // interaction weight, always set by the scorer
	OrderValue       float64   // line price for purchases, 0 otherwise
	BasketSize       int       // purchased quantity, 0 for non-purchases
	PaymentMethod    string    // "cash" | "epay" | "unknown"
	DeliveryLocation string    // lowercased province name, "singapore", or "unknown"
}
