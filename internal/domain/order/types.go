package order

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidFulfillmentStatus = errors.New("invalid fulfillment status")
	ErrEmptyPaymentRef          = errors.New("payment reference is required")
	ErrInvalidEmail             = errors.New("invalid email")
)

type FulfillmentStatus string

const (
	StatusReceived       FulfillmentStatus = "received"
	StatusProcessing     FulfillmentStatus = "processing"
	StatusShipped        FulfillmentStatus = "shipped"
	StatusInTransit      FulfillmentStatus = "in_transit"
	StatusOutForDelivery FulfillmentStatus = "out_for_delivery"
	StatusDelivered      FulfillmentStatus = "delivered"
	StatusCancelled      FulfillmentStatus = "cancelled"
)

func (s FulfillmentStatus) String() string {
	return string(s)
}

func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case StatusReceived, StatusProcessing, StatusShipped, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewFulfillmentStatus(s string) (FulfillmentStatus, error) {
	status := FulfillmentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidFulfillmentStatus
	}
	return status, nil
}

type PaymentStatus string

const PaymentStatusPaid PaymentStatus = "paid"

type Address struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// LineItem is a catalog snapshot taken at materialization time.
type LineItem struct {
	CatalogRef string
	Title      string
	PriceCents int64
	Quantity   int
	Image      string
	SKU        string
}

func (li LineItem) TotalCents() int64 {
	return li.PriceCents * int64(li.Quantity)
}

// Number is the customer-facing order number: the last 8 characters of the id, uppercased.
func Number(id uuid.UUID) string {
	s := id.String()
	return strings.ToUpper(s[len(s)-8:])
}

// NormalizeNumber strips whitespace and a leading '#' from user input.
func NormalizeNumber(input string) string {
	s := strings.Join(strings.Fields(input), "")
	s = strings.TrimPrefix(s, "#")
	return strings.ToUpper(s)
}
