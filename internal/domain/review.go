package domain

// RawReviewRecord is a product review joined from the feedback store.
type RawReviewRecord struct {
	UserID    string // review author
	TargetID  string // reviewed product
	ShopID    string // shop owning the product
	VoteStar  int    // star rating 1..5
	CreatedAt int64  // Unix timestamp in seconds
}
