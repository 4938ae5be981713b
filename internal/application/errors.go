package application

import (
	"context"
	"errors"
	"net/http"

	"dukastore/internal/domain"
)

// ToHTTPStatus maps an error to the status code the REST boundary should
// respond with.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if domainErr, ok := domain.AsDomainError(err); ok {
		switch domainErr.Code {
		case domain.ErrCodeInvalidRequest, domain.ErrCodeInitiationFailed:
			return http.StatusBadRequest
		case domain.ErrCodeAuthFailed:
			return http.StatusUnauthorized
		case domain.ErrCodePaymentFailed:
			return http.StatusPaymentRequired
		case domain.ErrCodeUpstreamProtocol,
			domain.ErrCodeUpstreamUnavailable,
			domain.ErrCodeOrderCreationFailed:
			return http.StatusBadGateway
		case domain.ErrCodePollTimeout:
			return http.StatusGatewayTimeout
		case domain.ErrCodeInvalidTransition:
			return http.StatusConflict
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode maps an error to a stable code for API responses.
func ToErrorCode(err error) string {
	if domainErr, ok := domain.AsDomainError(err); ok {
		return domainErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "TIMEOUT"
	}

	return "INTERNAL_ERROR"
}

// UserMessage is the single user-visible message for an error. Raw upstream
// payloads stay in the error chain for logs and are never returned here.
func UserMessage(err error) string {
	if domainErr, ok := domain.AsDomainError(err); ok {
		return domainErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "request timed out"
	}
	return "an internal error occurred"
}
