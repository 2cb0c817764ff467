package api

import (
	"net/http"

	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/pkg/errs"
)

// statusFor maps usecase errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrCatalogItemNotFound),
		errs.Is(err, errs.ErrOrderNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrItemUnavailable):
		return http.StatusConflict
	case errs.Is(err, errs.ErrEmptyCheckout),
		errs.Is(err, errs.ErrInvalidMarkup),
		errs.Is(err, errs.ErrInvalidFulfillmentStatus),
		errs.Is(err, errs.ErrMissingSessionID),
		errs.Is(err, errs.ErrPaymentNotCompleted),
		errs.Is(err, order.ErrInvalidFulfillmentStatus),
		errs.Is(err, checkout.ErrInvalidReference),
		errs.Is(err, checkout.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errs.Is(err, checkout.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage never exposes internal error text for 5xx responses.
func publicMessage(status int, err error, fallback string) string {
	if status >= http.StatusInternalServerError {
		return fallback
	}
	return err.Error()
}
