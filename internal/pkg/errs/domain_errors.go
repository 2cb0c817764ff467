package errs

import "errors"

// Domain-level sentinel errors shared by the usecase and handler layers
var (
	// Catalog errors
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrCatalogItemMissing  = errors.New("catalog item missing for order line")
	ErrItemUnavailable     = errors.New("catalog item has no price")

	// Order errors
	ErrOrderNotFound            = errors.New("order not found")
	ErrInvalidFulfillmentStatus = errors.New("invalid fulfillment status")

	// Checkout / payment errors
	ErrEmptyCheckout       = errors.New("checkout has no items")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrMissingSessionID    = errors.New("session id required")

	// Settings errors
	ErrInvalidMarkup = errors.New("markup percent must be a non-negative number")
)
