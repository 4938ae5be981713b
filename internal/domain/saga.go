package domain

import "slices"

// SagaState is the orchestrator-visible state of one checkout attempt.
type SagaState string

const (
	SagaIdle       SagaState = "idle"
	SagaInitiating SagaState = "initiating"
	// SagaAwaitingCustomer means the push prompt is on the customer's phone
	// and the attempt is identified by its CheckoutRequestID.
	SagaAwaitingCustomer SagaState = "awaiting_customer"
	SagaCompleted        SagaState = "completed"
	SagaFailed           SagaState = "failed"
)

// Saga tracks the state of a single checkout attempt. Each attempt owns its
// own Saga; nothing is shared across instances.
type Saga struct {
	State             SagaState
	CheckoutRequestID string
	Message           string
}

func NewSaga() *Saga {
	return &Saga{State: SagaIdle}
}

func (s *Saga) Transition(target SagaState) error {
	if err := s.canTransitionTo(target); err != nil {
		return err
	}
	s.State = target
	return nil
}

func (s *Saga) canTransitionTo(target SagaState) error {
	switch s.State {
	case SagaIdle:
		return s.allow(target, SagaInitiating)
	case SagaInitiating:
		return s.allow(target, SagaAwaitingCustomer, SagaFailed)
	case SagaAwaitingCustomer:
		return s.allow(target, SagaCompleted, SagaFailed)
	case SagaFailed:
		// Failed offers a retry path back to a fresh attempt.
		return s.allow(target, SagaIdle)
	default:
		return NewInvalidTransitionError(s.State, target)
	}
}

func (s *Saga) allow(target SagaState, allowed ...SagaState) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(s.State, target)
}

// Terminal reports whether the saga has ended for this attempt.
func (s *Saga) Terminal() bool {
	return s.State == SagaCompleted || s.State == SagaFailed
}
