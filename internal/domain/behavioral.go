package domain

// RawBehavioralEvent is a tracking record from the telemetry event store.
// One record fans out to one InteractionEvent per entry in VisitedAts; when
// VisitedAts is empty the single CreatedAt timestamp is used instead.
type RawBehavioralEvent struct {
	ID         string  // event store document ID, doubles as pagination cursor
	ActorID    string  // user performing the action
	TargetID   string  // product acted on
	ShopID     string  // shop owning the product
	ActionType string  // raw tracking action type (view_product, add_cart, ...)
	TargetType string  // entity kind of TargetID, "Product" for this pipeline
	CreatedAt  int64   // Unix timestamp in seconds
	VisitedAts []int64 // occurrence timestamps, may be empty
}
