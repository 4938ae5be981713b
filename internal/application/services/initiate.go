package services

import (
	"context"
	"log/slog"

	"dukastore/internal/application"
	"dukastore/internal/domain"
)

// Initiator validates a payment request and asks the gateway to put a push
// prompt on the customer's phone. Each initiation fetches a fresh token; the
// gateway does not report a token TTL.
type Initiator struct {
	gateway application.PaymentGateway
	logger  *slog.Logger
}

func NewInitiator(gateway application.PaymentGateway, logger *slog.Logger) *Initiator {
	return &Initiator{
		gateway: gateway,
		logger:  logger,
	}
}

type InitiateCommand struct {
	AmountKES int64
	Phone     string
	OrderRef  string
}

// Initiate returns a non-empty CheckoutRequestID or a typed failure, never a
// silently empty success. No automatic retry: a failed initiation is surfaced
// and the user may resubmit, which is a fresh attempt with a fresh id.
func (s *Initiator) Initiate(ctx context.Context, cmd InitiateCommand) (*application.InitiationResult, error) {
	req, err := domain.NewPaymentRequest(cmd.AmountKES, cmd.Phone, cmd.OrderRef)
	if err != nil {
		return nil, err
	}

	token, err := s.gateway.Token(ctx)
	if err != nil {
		s.logger.Error("token exchange failed", "error", err)
		return nil, err
	}

	result, err := s.gateway.STKPush(ctx, token, req)
	if err != nil {
		s.logger.Error("stk push failed",
			"order_ref", req.OrderRef,
			"error", err)
		return nil, err
	}

	if result.CheckoutRequestID == "" {
		return nil, domain.NewInitiationFailedError(nil)
	}

	s.logger.Info("stk push initiated",
		"order_ref", req.OrderRef,
		"checkout_request_id", result.CheckoutRequestID)

	return result, nil
}
