package supplier

import (
	"fmt"

	"storefront-sync/internal/pkg/errs"
)

var (
	// ErrAuthConfig means no API key is configured for the active environment. Not retryable.
	ErrAuthConfig = errs.New("supplier api key is not configured for the active environment")

	// ErrPriceBatchTooLarge is returned when more than MaxPriceBatch ids are passed to GetPrices.
	ErrPriceBatchTooLarge = errs.New("price lookup exceeds batch limit")
)

// AuthTransportError wraps a failed token issue or renew call after its retries are exhausted.
type AuthTransportError struct {
	Op  string
	Err error
}

func (e *AuthTransportError) Error() string {
	return fmt.Sprintf("supplier token %s failed: %v", e.Op, e.Err)
}

func (e *AuthTransportError) Unwrap() error {
	return e.Err
}

// RequestError is a non-2xx response from a supplier endpoint.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("supplier request failed: status %d: %s", e.Status, e.Body)
}
