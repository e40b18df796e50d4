package domain

// ProductStatus is the lifecycle status of a catalog product.
type ProductStatus string

const (
	StatusActive      ProductStatus = "active"
	StatusDraft       ProductStatus = "draft"
	StatusDeleted     ProductStatus = "deleted"
	StatusUnavailable ProductStatus = "unavailable"
)

// String returns the string representation of ProductStatus.
func (s ProductStatus) String() string {
	return string(s)
}

// Approval status values carried on a raw product.
const (
	ApprovalApproved = "approved"
	ApprovalDraft    = "draft"
	ApprovalPending  = "pending"
	ApprovalRejected = "rejected"
)

// Variant is one sellable variant of a product.
type Variant struct {
	BeforeSalePrice *float64 `json:"before_sale_price"` // list price, nil or non-positive means no signal
	SalePrice       *float64 `json:"sale_price"`        // discounted price, nil or non-positive means no signal
}

// ProductDetail is one demographic attribute sub-document attached to a
// product (gender, origin, style, season groups).
type ProductDetail struct {
	CategoryName string   `json:"category_name"` // attribute group name, e.g. "Gender"
	Values       []string `json:"values"`        // multi-valued attribute values
	Value        string   `json:"value"`         // single value, used when Values is empty
}

// RawProduct is a catalog row with its variant, detail, and category
// sub-documents already joined by the catalog store.
type RawProduct struct {
	ID              string          // product identifier
	ShopID          string          // owning shop
	DeletedAt       *int64          // soft-delete timestamp, nil if not deleted
	IsApproved      string          // approval status (approved, draft, ...)
	AllowToSell     bool            // seller enabled the listing
	IsSoldOut       bool            // all variants out of stock
	BeforeSalePrice *float64        // product-level list price fallback
	Variants        []Variant       // sellable variants
	Details         []ProductDetail // demographic attribute sub-documents
	CategoryIDs     []string        // ordered category path, index 0 = level 1
	CreatedAt       int64           // Unix timestamp in seconds
}

// MaxCategoryLevels is the number of category levels written to a
// ProductRecord.
const MaxCategoryLevels = 4

// PriceRange holds the aggregated price bounds of a product.
// Both fields are nil when no price signal exists anywhere.
type PriceRange struct {
	Min *float64
	Max *float64
}

// ProductRecord is one flat training record of the items dataset.
// Built once per catalog row at export time, never persisted back.
type ProductRecord struct {
	ItemID            string                    // product identifier
	Status            ProductStatus             // resolved lifecycle status
	Gender            string                    // female | male | unisex | unknown
	Origin            string                    // origin attribute values joined with "|"
	Style             string                    // style attribute values joined with "|"
	Seasons           string                    // season attribute values joined with "|"
	PriceMin          *float64                  // aggregated minimum price
	PriceMax          *float64                  // aggregated maximum price
	Categories        [MaxCategoryLevels]string // category names, level 1..4
	CreationTimestamp int64                     // Unix timestamp in seconds
}
