package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dukastore/internal/application"
	"dukastore/internal/domain"
)

// ProgressFunc receives the latest observed status before each retry tick so
// the caller can keep a user-visible message current.
type ProgressFunc func(status domain.PaymentStatus, attempt int)

// Poller resolves the terminal state of a push-payment attempt by querying
// the status source at a fixed interval. The wait is bounded: if the gateway
// never reports a terminal status within MaxWait the attempt resolves as a
// timeout failure rather than polling forever.
type Poller struct {
	gateway  application.PaymentGateway
	interval time.Duration
	maxWait  time.Duration
	logger   *slog.Logger
}

func NewPoller(gateway application.PaymentGateway, interval, maxWait time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		gateway:  gateway,
		interval: interval,
		maxWait:  maxWait,
		logger:   logger,
	}
}

// Check performs a single status query. Missing ids are a caller error.
func (p *Poller) Check(ctx context.Context, checkoutRequestID string) (domain.PaymentStatus, error) {
	if checkoutRequestID == "" {
		return domain.StatusFailed, domain.NewInvalidRequestError("checkoutRequestId is required")
	}
	return p.gateway.QueryStatus(ctx, checkoutRequestID)
}

// Wait polls until the payment reaches completed or failed, the caller
// cancels, or the overall deadline expires. Query failures and pending
// results are transient: both continue polling on the next tick. Ticks never
// overlap; the next query starts only after the interval has elapsed.
func (p *Poller) Wait(ctx context.Context, checkoutRequestID string, progress ProgressFunc) (domain.PaymentStatus, error) {
	if checkoutRequestID == "" {
		return domain.StatusFailed, domain.NewInvalidRequestError("checkoutRequestId is required")
	}

	waitCtx := ctx
	if p.maxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, p.maxWait)
		defer cancel()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-waitCtx.Done():
			if errors.Is(waitCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				p.logger.Warn("polling deadline reached",
					"checkout_request_id", checkoutRequestID,
					"max_wait", p.maxWait)
				return domain.StatusFailed, domain.NewPollTimeoutError(p.maxWait)
			}
			return domain.StatusPending, waitCtx.Err()

		case <-ticker.C:
			status, err := p.gateway.QueryStatus(waitCtx, checkoutRequestID)
			if err != nil {
				// Transient: keep polling on the next tick.
				p.logger.Warn("status query failed, retrying",
					"checkout_request_id", checkoutRequestID,
					"attempt", attempt,
					"error", err)
				if progress != nil {
					progress(domain.StatusPending, attempt)
				}
				continue
			}

			if status.Terminal() {
				p.logger.Info("payment resolved",
					"checkout_request_id", checkoutRequestID,
					"status", status,
					"attempts", attempt)
				return status, nil
			}

			if progress != nil {
				progress(status, attempt)
			}
		}
	}
}
