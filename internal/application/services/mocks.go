package services

import (
	"context"
	"sync"

	"dukastore/internal/application"
	"dukastore/internal/domain"
)

// MockPaymentGateway is a hand-rolled test double. Set the Fn fields to
// override behavior; call counters are always recorded.
type MockPaymentGateway struct {
	mu sync.Mutex

	TokenCalls    int
	STKCalls      []domain.PaymentRequest
	StatusCalls   []string
	TokenFn       func(ctx context.Context) (string, error)
	STKPushFn     func(ctx context.Context, accessToken string, req domain.PaymentRequest) (*application.InitiationResult, error)
	QueryStatusFn func(ctx context.Context, checkoutRequestID string) (domain.PaymentStatus, error)
}

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.TokenCalls++
	fn := m.TokenFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return "test-token", nil
}

func (m *MockPaymentGateway) STKPush(ctx context.Context, accessToken string, req domain.PaymentRequest) (*application.InitiationResult, error) {
	m.mu.Lock()
	m.STKCalls = append(m.STKCalls, req)
	fn := m.STKPushFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, accessToken, req)
	}
	return &application.InitiationResult{
		CheckoutRequestID: "ws_CO_123",
		MerchantRequestID: "mr_456",
		CustomerMessage:   "Success. Request accepted for processing",
	}, nil
}

func (m *MockPaymentGateway) QueryStatus(ctx context.Context, checkoutRequestID string) (domain.PaymentStatus, error) {
	m.mu.Lock()
	m.StatusCalls = append(m.StatusCalls, checkoutRequestID)
	fn := m.QueryStatusFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, checkoutRequestID)
	}
	return domain.StatusCompleted, nil
}

func (m *MockPaymentGateway) STKCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.STKCalls)
}

func (m *MockPaymentGateway) StatusCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StatusCalls)
}

// MockCommerceBackend is a hand-rolled test double for the commerce backend.
type MockCommerceBackend struct {
	mu sync.Mutex

	ListCalls     int
	GetCalls      []int64
	OrderCalls    []application.OrderDraft
	ListFn        func(ctx context.Context) ([]application.Product, error)
	GetFn         func(ctx context.Context, id int64) (*application.Product, error)
	CreateOrderFn func(ctx context.Context, draft application.OrderDraft) (*application.CreatedOrder, error)
}

func NewMockCommerceBackend() *MockCommerceBackend {
	return &MockCommerceBackend{}
}

func (m *MockCommerceBackend) ListProducts(ctx context.Context) ([]application.Product, error) {
	m.mu.Lock()
	m.ListCalls++
	fn := m.ListFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return nil, nil
}

func (m *MockCommerceBackend) GetProduct(ctx context.Context, id int64) (*application.Product, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	fn := m.GetFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}
	return &application.Product{ID: id}, nil
}

func (m *MockCommerceBackend) CreateOrder(ctx context.Context, draft application.OrderDraft) (*application.CreatedOrder, error) {
	m.mu.Lock()
	m.OrderCalls = append(m.OrderCalls, draft)
	fn := m.CreateOrderFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, draft)
	}
	return &application.CreatedOrder{ID: 1001, Status: "processing"}, nil
}

func (m *MockCommerceBackend) OrderCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.OrderCalls)
}
