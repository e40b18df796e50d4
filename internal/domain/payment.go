package domain

// PaymentClass is the scoring class of an order's payment method.
type PaymentClass string

const (
	PaymentClassCOD      PaymentClass = "cod"
	PaymentClassEPayment PaymentClass = "epayment"
	PaymentClassUnknown  PaymentClass = "unknown"
)

// Payment method names written to the interactions dataset.
const (
	PaymentMethodCash = "cash"
	PaymentMethodEPay = "epay"
)

// PaymentMethodTable classifies payment method identifiers into scoring
// classes. Built once from configuration and shared read-only.
type PaymentMethodTable struct {
	CashID      string
	EPaymentIDs map[string]struct{}
}

// NewPaymentMethodTable builds a classification table from a cash method ID
// and a set of electronic payment method IDs.
func NewPaymentMethodTable(cashID string, epaymentIDs []string) *PaymentMethodTable {
	set := make(map[string]struct{}, len(epaymentIDs))
	for _, id := range epaymentIDs {
		set[id] = struct{}{}
	}
	return &PaymentMethodTable{CashID: cashID, EPaymentIDs: set}
}

// Classify returns the scoring class for a payment method identifier.
func (t *PaymentMethodTable) Classify(paymentMethodID string) PaymentClass {
	if paymentMethodID == t.CashID {
		return PaymentClassCOD
	}
	if _, ok := t.EPaymentIDs[paymentMethodID]; ok {
		return PaymentClassEPayment
	}
	return PaymentClassUnknown
}

// MethodName returns the dataset payment method name for an identifier.
func (t *PaymentMethodTable) MethodName(paymentMethodID string) string {
	switch t.Classify(paymentMethodID) {
	case PaymentClassCOD:
		return PaymentMethodCash
	case PaymentClassEPayment:
		return PaymentMethodEPay
	}
	return Unknown
}

// Production payment method identifiers.
const (
	methodIDCash                 = "6080f987ca33c1913de1be38"
	methodIDVNPay                = "6080f24dca33c1913de1be35"
	methodIDMomo                 = "6080f319ca33c1913de1be36"
	methodIDBankCard             = "632aca6e2c2071e01556e978"
	methodIDMastercardVisa       = "632acad12c2071e01556e979"
	methodIDOnePay               = "67c1433d444943956c790309"
	methodIDMastercardVisaOnePay = "67d3926bbfaa50609c736fb9"
	methodIDBankCardOnePay       = "67d39243bfaa50609c736fb8"
)

// DefaultPaymentMethodTable returns the production payment method
// classification table.
func DefaultPaymentMethodTable() *PaymentMethodTable {
	return NewPaymentMethodTable(methodIDCash, []string{
		methodIDVNPay,
		methodIDMomo,
		methodIDBankCard,
		methodIDMastercardVisa,
		methodIDOnePay,
		methodIDMastercardVisaOnePay,
		methodIDBankCardOnePay,
	})
}
