package application

import (
	"context"

	"dukastore/internal/domain"
)

// InitiationResult is what the gateway hands back for a successfully started
// push payment. CustomerMessage is surfaced to the user verbatim.
type InitiationResult struct {
	CheckoutRequestID string
	MerchantRequestID string
	CustomerMessage   string
}

// PaymentGateway is the outbound contract with the mobile-money gateway.
type PaymentGateway interface {
	// Token exchanges service credentials for a short-lived bearer token.
	// The token is treated as valid only for the immediately following call.
	Token(ctx context.Context) (string, error)

	// STKPush triggers a push-payment prompt on the customer's phone.
	STKPush(ctx context.Context, accessToken string, req domain.PaymentRequest) (*InitiationResult, error)

	// QueryStatus reports the current status of one push-payment attempt.
	// Polling never mutates payment state.
	QueryStatus(ctx context.Context, checkoutRequestID string) (domain.PaymentStatus, error)
}

// Product is a catalog entry as exposed by the commerce backend. Price stays
// a string; the backend serializes it that way and this service never does
// arithmetic on it.
type Product struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Price  string         `json:"price"`
	Images []ProductImage `json:"images,omitempty"`
}

type ProductImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// OrderDraft is the order-creation input: billing details plus cart lines.
// Only product id and quantity are forwarded; prices are recomputed by the
// backend, not trusted from the client.
type OrderDraft struct {
	Billing domain.Billing
	Lines   []domain.CartLine
}

// CreatedOrder identifies the order the commerce backend created. The backend
// owns the entity entirely; the saga only needs the id for the redirect.
type CreatedOrder struct {
	ID     int64
	Status string
}

// CommerceBackend is the outbound contract with the commerce system.
type CommerceBackend interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// CreateOrder submits a single pre-paid order. It is a non-retried
	// side-effecting call; at-most-once semantics live with the caller.
	CreateOrder(ctx context.Context, draft OrderDraft) (*CreatedOrder, error)
}
