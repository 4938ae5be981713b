// Package domain encodes the checkout payment entities and their invariants
package domain

// PaymentStatus is the state of one push-payment attempt as reported by the
// gateway. The upstream status source is authoritative; callers must not
// assume it only moves forward.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusFailed    PaymentStatus = "failed"
)

// ParsePaymentStatus coerces an upstream status string into a known status.
// Anything unrecognized (including empty) reads as pending, matching the
// status source's contract.
func ParsePaymentStatus(s string) PaymentStatus {
	switch PaymentStatus(s) {
	case StatusCompleted:
		return StatusCompleted
	case StatusFailed:
		return StatusFailed
	default:
		return StatusPending
	}
}

// Terminal reports whether no further transitions occur for this attempt.
func (s PaymentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// PaymentRequest describes one push-payment attempt before it is submitted.
type PaymentRequest struct {
	AmountKES int64
	Phone     string
	OrderRef  string
}

// NewPaymentRequest validates and normalizes caller input. Violations are
// caller errors and are rejected before any network call.
func NewPaymentRequest(amountKES int64, phone, orderRef string) (PaymentRequest, error) {
	if amountKES <= 0 {
		return PaymentRequest{}, NewInvalidRequestError("amount must be greater than zero")
	}
	if phone == "" {
		return PaymentRequest{}, NewInvalidRequestError("phone number is required")
	}
	if orderRef == "" {
		return PaymentRequest{}, NewInvalidRequestError("order reference is required")
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return PaymentRequest{}, err
	}

	return PaymentRequest{
		AmountKES: amountKES,
		Phone:     normalized,
		OrderRef:  orderRef,
	}, nil
}

// CartLine is one line of the client-held cart. Only ProductID and Quantity
// are trusted downstream; prices are authoritative on the commerce backend.
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name,omitempty"`
	UnitPrice int64  `json:"price,omitempty"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// Billing carries the customer details forwarded to order creation.
type Billing struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}
