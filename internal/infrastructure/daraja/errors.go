package daraja

import (
	"errors"
	"fmt"
)

// GatewayError carries the raw upstream payload for diagnostics. It is always
// wrapped in a domain error before leaving the client; the payload is for
// operator logs only.
type GatewayError struct {
	StatusCode int
	Payload    []byte
}

func (e *GatewayError) Error() string {
	payload := e.Payload
	if len(payload) > 512 {
		payload = payload[:512]
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, payload)
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
