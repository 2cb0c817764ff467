package request

import (
	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/domain/order"

	"github.com/jinzhu/copier"
)

type CheckoutItem struct {
	ExternalID string `json:"externalId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type ShippingAddress struct {
	Name       string `json:"name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country"`
}

type CreateCheckoutSessionRequest struct {
	Items    []CheckoutItem  `json:"items" binding:"required,min=1,dive"`
	Email    string          `json:"email" binding:"required,email"`
	Shipping ShippingAddress `json:"shipping" binding:"required"`
}

func (r CreateCheckoutSessionRequest) LineRefs() []checkout.LineRef {
	refs := make([]checkout.LineRef, 0, len(r.Items))
	_ = copier.Copy(&refs, &r.Items)
	return refs
}

func (r CreateCheckoutSessionRequest) Address() order.Address {
	a := order.Address(r.Shipping)
	if a.Country == "" {
		a.Country = "US"
	}
	return a
}

type ConfirmCheckoutRequest struct {
	SessionID string `json:"sessionId"`
}
