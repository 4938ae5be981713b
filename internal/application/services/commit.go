package services

import (
	"context"
	"log/slog"
	"sync"

	"dukastore/internal/application"
	"dukastore/internal/domain"
	"github.com/go-playground/validator"
)

// Committer submits one pre-paid order per confirmed payment. A local guard
// keyed by CheckoutRequestID gives the commit at-most-once semantics within
// this process: the backend call has no idempotency key, so a repeated
// submission would double-create the order.
type Committer struct {
	backend  application.CommerceBackend
	validate *validator.Validate
	logger   *slog.Logger

	// mu spans the backend call so a concurrent commit for the same
	// correlation id cannot double-submit.
	mu        sync.Mutex
	committed map[string]*application.CreatedOrder
}

func NewCommitter(backend application.CommerceBackend, logger *slog.Logger) *Committer {
	return &Committer{
		backend:   backend,
		validate:  validator.New(),
		logger:    logger,
		committed: make(map[string]*application.CreatedOrder),
	}
}

type CommitCommand struct {
	CheckoutRequestID string
	Billing           domain.Billing
	Lines             []domain.CartLine
}

// Commit validates billing details and cart lines, then creates the order.
// Failure after a successful payment is reported, never compensated here;
// reconciliation is an external-system concern.
func (c *Committer) Commit(ctx context.Context, cmd CommitCommand) (*application.CreatedOrder, error) {
	if cmd.CheckoutRequestID == "" {
		return nil, domain.NewInvalidRequestError("checkoutRequestId is required")
	}
	if err := c.validate.Struct(cmd.Billing); err != nil {
		return nil, domain.NewInvalidRequestError("all billing fields (name, email, phone, address) are required")
	}
	if len(cmd.Lines) == 0 {
		return nil, domain.NewInvalidRequestError("cart is empty")
	}
	for _, line := range cmd.Lines {
		if line.ProductID <= 0 || line.Quantity < 1 {
			return nil, domain.NewInvalidRequestError("cart lines need a product id and a quantity of at least 1")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if order, ok := c.committed[cmd.CheckoutRequestID]; ok {
		c.logger.Info("order already committed for this payment, returning existing",
			"checkout_request_id", cmd.CheckoutRequestID,
			"order_id", order.ID)
		return order, nil
	}

	order, err := c.backend.CreateOrder(ctx, application.OrderDraft{
		Billing: cmd.Billing,
		Lines:   cmd.Lines,
	})
	if err != nil {
		c.logger.Error("order creation failed after successful payment",
			"checkout_request_id", cmd.CheckoutRequestID,
			"error", err)
		return nil, domain.NewOrderCreationFailedError(err)
	}

	c.committed[cmd.CheckoutRequestID] = order

	c.logger.Info("order committed",
		"checkout_request_id", cmd.CheckoutRequestID,
		"order_id", order.ID)

	return order, nil
}
