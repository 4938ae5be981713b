package services

import (
	"context"
	"log/slog"

	"dukastore/internal/application"
	"dukastore/internal/domain"
	"github.com/google/uuid"
)

// CheckoutSaga sequences one checkout attempt: token → initiate → poll until
// terminal → commit. Calls are strictly sequential; every failure is folded
// into a single user-visible state and message. Each run owns its own
// correlation id and shares nothing with other runs.
type CheckoutSaga struct {
	initiator *Initiator
	poller    *Poller
	committer *Committer
	logger    *slog.Logger
}

func NewCheckoutSaga(initiator *Initiator, poller *Poller, committer *Committer, logger *slog.Logger) *CheckoutSaga {
	return &CheckoutSaga{
		initiator: initiator,
		poller:    poller,
		committer: committer,
		logger:    logger,
	}
}

type CheckoutCommand struct {
	AmountKES int64
	Phone     string
	Billing   domain.Billing
	Lines     []domain.CartLine
}

// CheckoutResult is the client-visible outcome: terminal state, the last
// user-facing message, and on success the created order id.
type CheckoutResult struct {
	State             domain.SagaState
	Status            domain.PaymentStatus
	CheckoutRequestID string
	OrderID           int64
	Message           string
}

// Run drives the saga to a terminal state. The returned result is populated
// even when err is non-nil so callers always have a state and message to
// show; err carries the typed failure for the transport boundary.
func (s *CheckoutSaga) Run(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error) {
	saga := domain.NewSaga()
	result := &CheckoutResult{State: saga.State, Status: domain.StatusPending}

	orderRef := uuid.NewString()

	if err := saga.Transition(domain.SagaInitiating); err != nil {
		return result, err
	}
	result.State = saga.State
	result.Message = "Initiating payment..."

	initiation, err := s.initiator.Initiate(ctx, InitiateCommand{
		AmountKES: cmd.AmountKES,
		Phone:     cmd.Phone,
		OrderRef:  orderRef,
	})
	if err != nil {
		return s.fail(saga, result, err)
	}

	if err := saga.Transition(domain.SagaAwaitingCustomer); err != nil {
		return s.fail(saga, result, err)
	}
	saga.CheckoutRequestID = initiation.CheckoutRequestID
	result.State = saga.State
	result.CheckoutRequestID = initiation.CheckoutRequestID
	result.Message = initiation.CustomerMessage

	status, err := s.poller.Wait(ctx, initiation.CheckoutRequestID, func(st domain.PaymentStatus, attempt int) {
		result.Status = st
		result.Message = "Payment is still pending. Complete the prompt on your phone."
	})
	result.Status = status
	if err != nil {
		return s.fail(saga, result, err)
	}

	if status == domain.StatusFailed {
		return s.fail(saga, result, domain.NewPaymentFailedError())
	}

	order, err := s.committer.Commit(ctx, CommitCommand{
		CheckoutRequestID: initiation.CheckoutRequestID,
		Billing:           cmd.Billing,
		Lines:             cmd.Lines,
	})
	if err != nil {
		// The payment went through but the order did not. Reported as a
		// failure; reconciliation is out of scope here.
		return s.fail(saga, result, err)
	}

	if err := saga.Transition(domain.SagaCompleted); err != nil {
		return s.fail(saga, result, err)
	}
	result.State = saga.State
	result.OrderID = order.ID
	result.Message = "Payment successful"

	s.logger.Info("checkout completed",
		"checkout_request_id", result.CheckoutRequestID,
		"order_id", order.ID)

	return result, nil
}

func (s *CheckoutSaga) fail(saga *domain.Saga, result *CheckoutResult, err error) (*CheckoutResult, error) {
	if terr := saga.Transition(domain.SagaFailed); terr != nil {
		s.logger.Error("saga could not transition to failed", "error", terr)
	}
	result.State = saga.State
	result.Message = application.UserMessage(err)

	s.logger.Error("checkout failed",
		"checkout_request_id", result.CheckoutRequestID,
		"state", result.State,
		"error", err)

	return result, err
}
