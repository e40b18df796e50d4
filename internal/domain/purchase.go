package domain

// Shipping status values carried on an order.
const (
	ShippingPending    = "pending"
	ShippingWaitToPick = "wait_to_pick"
	ShippingShipping   = "shipping"
	ShippingShipped    = "shipped"
	ShippingCanceling  = "canceling"
	ShippingCanceled   = "canceled"
	ShippingReturn     = "return"
	ShippingReturning  = "returning"
)

// Payment status values carried on an order.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
)

// Address is the delivery address embedded in an order snapshot.
type Address struct {
	Country   string // ISO country code, may be empty
	StateName string // province/state display name
}

// RawPurchaseContext is an order line joined with its parent order.
// Read-only snapshot: one per order line, never mutated by the pipeline.
type RawPurchaseContext struct {
	OrderItemID     string   // order line identifier
	ProductID       string   // purchased product
	Quantity        int      // purchased quantity
	CreatedAt       int64    // Unix timestamp in seconds
	VariantPrice    *float64 // before-sale price of the purchased variant, nil if the line has no variant
	ProductPrice    *float64 // before-sale price from the embedded product snapshot
	UserID          string   // buyer, from the parent order
	ShopID          string   // selling shop, from the parent order
	PaymentMethodID string   // payment method identifier, from the parent order
	ShippingStatus  string   // order shipping status
	PaymentStatus   string   // order payment status
	Address         Address  // delivery address
}
