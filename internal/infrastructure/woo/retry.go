package woo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"dukastore/internal/application"
	"dukastore/internal/config"
	"dukastore/internal/domain"
)

// RetryClient retries idempotent catalog reads with exponential backoff and
// jitter. Order creation passes straight through: it is a side-effecting call
// with no idempotency key, so a retry could double-create an order.
type RetryClient struct {
	inner      application.CommerceBackend
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner application.CommerceBackend, cfg config.RetryConfig) application.CommerceBackend {
	return &RetryClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryClient) ListProducts(ctx context.Context) ([]application.Product, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) ([]application.Product, error) {
			return r.inner.ListProducts(ctx)
		},
	)
}

func (r *RetryClient) GetProduct(ctx context.Context, id int64) (*application.Product, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.Product, error) {
			return r.inner.GetProduct(ctx, id)
		},
	)
}

func (r *RetryClient) CreateOrder(ctx context.Context, draft application.OrderDraft) (*application.CreatedOrder, error) {
	return r.inner.CreateOrder(ctx, draft)
}

// Generic retry helper
func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := r.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < attempts-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return zero, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if commerceErr, ok := IsCommerceError(err); ok {
		return commerceErr.IsRetryable()
	}

	// Protocol errors mean the upstream answered with garbage; asking again
	// will not change its mind.
	if domain.IsErrorCode(err, domain.ErrCodeUpstreamProtocol) {
		return false
	}

	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
