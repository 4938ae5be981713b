package woo

import (
	"errors"
	"fmt"
)

// CommerceError carries the backend's rejection payload for diagnostics.
type CommerceError struct {
	StatusCode int
	Payload    []byte
}

func (e *CommerceError) Error() string {
	payload := e.Payload
	if len(payload) > 512 {
		payload = payload[:512]
	}
	return fmt.Sprintf("commerce backend returned status %d: %s", e.StatusCode, payload)
}

func (e *CommerceError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsCommerceError(err error) (*CommerceError, bool) {
	var commerceErr *CommerceError
	ok := errors.As(err, &commerceErr)
	return commerceErr, ok
}
