package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type OrderLineRM struct {
	CatalogRef string
	Title      string
	PriceCents int64
	Quantity   int
	Image      string
	SKU        string
}

type OrderRM struct {
	ID                uuid.UUID
	Email             string
	Items             []OrderLineRM
	ShipName          string
	ShipCity          string
	ShipState         string
	SubtotalCents     int64
	ShippingCents     int64
	TaxCents          int64
	AmountCents       int64
	Currency          string
	PaymentStatus     string
	FulfillmentStatus string
	TrackingNumber    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
