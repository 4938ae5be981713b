package domain

import (
	"errors"
	"fmt"
	"time"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
	ErrCodeAuthFailed          = "AUTH_FAILED"
	ErrCodeInitiationFailed    = "INITIATION_FAILED"
	ErrCodeUpstreamProtocol    = "UPSTREAM_PROTOCOL"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeOrderCreationFailed = "ORDER_CREATION_FAILED"
	ErrCodePaymentFailed       = "PAYMENT_FAILED"
	ErrCodePollTimeout         = "POLL_TIMEOUT"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
)

func NewInvalidRequestError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidRequest,
		Message: reason,
	}
}

// NewAuthFailedError wraps a rejected token exchange. The upstream payload
// travels in err for operator logs, never to end users.
func NewAuthFailedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeAuthFailed,
		Message: "payment gateway authentication failed",
		Err:     err,
	}
}

func NewInitiationFailedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInitiationFailed,
		Message: "payment gateway declined to start the payment",
		Err:     err,
	}
}

func NewProtocolError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeUpstreamProtocol,
		Message: "malformed response from upstream",
		Err:     err,
	}
}

func NewUnavailableError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: "upstream service unavailable",
		Err:     err,
	}
}

func NewOrderCreationFailedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeOrderCreationFailed,
		Message: "order creation was rejected by the commerce backend",
		Err:     err,
	}
}

// NewPaymentFailedError marks an attempt the gateway resolved as failed or
// cancelled by the customer.
func NewPaymentFailedError() *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentFailed,
		Message: "payment failed or was cancelled",
	}
}

func NewPollTimeoutError(after time.Duration) *DomainError {
	return &DomainError{
		Code:    ErrCodePollTimeout,
		Message: fmt.Sprintf("payment not confirmed within %s", after),
	}
}

func NewInvalidTransitionError(from, to SagaState) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// AsDomainError extracts a DomainError from an error chain
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	ok := errors.As(err, &domainErr)
	return domainErr, ok
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	if domainErr, ok := AsDomainError(err); ok {
		return domainErr.Code == code
	}
	return false
}
