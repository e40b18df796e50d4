// Package scoring converts raw interaction state into event weights for the
// training dataset. All branches are explicit; no branch signals through
// errors.
package scoring

import (
	"recsys-export-lab/internal/domain"
)

// Behavioral event weights by canonical event type.
var behavioralWeights = map[domain.EventType]float64{
	domain.EventTypeView:      1,
	domain.EventTypeFavorite:  2,
	domain.EventTypeAddToCart: 2.5,
}

// ScoreBehavioral returns the weight for a behavioral event type.
// Unrecognized types score 0.
func ScoreBehavioral(eventType domain.EventType) float64 {
	return behavioralWeights[eventType]
}

// ScoreReview returns the weight for a review: the star rating verbatim.
func ScoreReview(voteStar int) float64 {
	return float64(voteStar)
}

// Scorer computes purchase event weights from order state.
// The payment method table is built once per pipeline run and shared
// read-only across calls.
type Scorer struct {
	methods *domain.PaymentMethodTable
}

// NewScorer creates a Scorer using the given payment method table.
// A nil table falls back to the production table.
func NewScorer(methods *domain.PaymentMethodTable) *Scorer {
	if methods == nil {
		methods = domain.DefaultPaymentMethodTable()
	}
	return &Scorer{methods: methods}
}

// Methods returns the scorer's payment method table.
func (s *Scorer) Methods() *domain.PaymentMethodTable {
	return s.methods
}

// ScorePurchase returns the weight for a purchase given the order's payment
// method and statuses. The second result reports whether the
// (class, shipping, payment) combination has a defined weight; callers
// decide the numeric default for undefined combinations.
func (s *Scorer) ScorePurchase(paymentMethodID, shippingStatus, paymentStatus string) (float64, bool) {
	switch s.methods.Classify(paymentMethodID) {
	case domain.PaymentClassCOD:
		return scoreCOD(shippingStatus, paymentStatus)
	case domain.PaymentClassEPayment:
		return scoreEPayment(shippingStatus, paymentStatus)
	}
	// Unknown payment method scores a flat 0.5 regardless of statuses.
	return 0.5, true
}

// scoreCOD implements the cash-on-delivery sub-table.
func scoreCOD(shippingStatus, paymentStatus string) (float64, bool) {
	paid := paymentStatus == domain.PaymentPaid
	pending := paymentStatus == domain.PaymentPending

	switch shippingStatus {
	case domain.ShippingPending:
		if pending {
			return 3.0, true
		}
	case domain.ShippingWaitToPick, domain.ShippingShipping, domain.ShippingShipped:
		if paid || pending {
			return 5.0, true
		}
	case domain.ShippingCanceling, domain.ShippingCanceled:
		if pending {
			return 0.5, true
		}
		if paid {
			return 1.5, true
		}
	case domain.ShippingReturn, domain.ShippingReturning:
		if paid || pending {
			return 1.5, true
		}
	}
	return 0, false
}

// scoreEPayment implements the electronic payment sub-table.
func scoreEPayment(shippingStatus, paymentStatus string) (float64, bool) {
	paid := paymentStatus == domain.PaymentPaid
	pending := paymentStatus == domain.PaymentPending

	switch shippingStatus {
	case domain.ShippingWaitToPick, domain.ShippingShipping, domain.ShippingShipped:
		if paid {
			return 5.0, true
		}
	case domain.ShippingPending:
		if pending {
			return 1.0, true
		}
	case domain.ShippingCanceling, domain.ShippingCanceled:
		if paid {
			return 2.0, true
		}
	case domain.ShippingReturn, domain.ShippingReturning:
		if paid {
			return 1.5, true
		}
	}
	return 0, false
}
