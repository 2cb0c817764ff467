package order

import (
	"strings"
	"time"

	"storefront-sync/internal/pkg/clock"

	"github.com/google/uuid"
)

type Order struct {
	id                uuid.UUID
	userID            *uuid.UUID
	email             string
	items             []LineItem
	shippingAddress   Address
	subtotalCents     int64
	shippingCents     int64
	taxCents          int64
	amountCents       int64
	currency          string
	paymentRef        string
	paymentStatus     PaymentStatus
	fulfillmentStatus FulfillmentStatus
	trackingNumber    string
	notes             string
	createdAt         time.Time
	updatedAt         time.Time
}

type PaidOrderParams struct {
	UserID          *uuid.UUID
	Email           string
	Items           []LineItem
	ShippingAddress Address
	SubtotalCents   int64
	ShippingCents   int64
	TaxCents        int64
	AmountCents     int64
	Currency        string
	PaymentRef      string
	Notes           string
}

// NewPaidOrder builds an order in its initial state: paid and received.
// A charge is recorded even when none of its lines could be resolved; Notes says why.
func NewPaidOrder(clk clock.Clock, p PaidOrderParams) (*Order, error) {
	if strings.TrimSpace(p.PaymentRef) == "" {
		return nil, ErrEmptyPaymentRef
	}
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := clk.Now()
	items := make([]LineItem, len(p.Items))
	copy(items, p.Items)

	return &Order{
		id:                uuid.New(),
		userID:            p.UserID,
		email:             email,
		items:             items,
		shippingAddress:   p.ShippingAddress,
		subtotalCents:     p.SubtotalCents,
		shippingCents:     p.ShippingCents,
		taxCents:          p.TaxCents,
		amountCents:       p.AmountCents,
		currency:          strings.ToLower(p.Currency),
		paymentRef:        p.PaymentRef,
		paymentStatus:     PaymentStatusPaid,
		fulfillmentStatus: StatusReceived,
		notes:             strings.TrimSpace(p.Notes),
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// Snapshot is the flat persistence form of an Order.
type Snapshot struct {
	ID                uuid.UUID
	UserID            *uuid.UUID
	Email             string
	Items             []LineItem
	ShippingAddress   Address
	SubtotalCents     int64
	ShippingCents     int64
	TaxCents          int64
	AmountCents       int64
	Currency          string
	PaymentRef        string
	PaymentStatus     PaymentStatus
	FulfillmentStatus FulfillmentStatus
	TrackingNumber    string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func Reconstruct(s Snapshot) *Order {
	return &Order{
		id:                s.ID,
		userID:            s.UserID,
		email:             s.Email,
		items:             s.Items,
		shippingAddress:   s.ShippingAddress,
		subtotalCents:     s.SubtotalCents,
		shippingCents:     s.ShippingCents,
		taxCents:          s.TaxCents,
		amountCents:       s.AmountCents,
		currency:          s.Currency,
		paymentRef:        s.PaymentRef,
		paymentStatus:     s.PaymentStatus,
		fulfillmentStatus: s.FulfillmentStatus,
		trackingNumber:    s.TrackingNumber,
		notes:             s.Notes,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
}

func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		UserID:            o.userID,
		Email:             o.email,
		Items:             o.items,
		ShippingAddress:   o.shippingAddress,
		SubtotalCents:     o.subtotalCents,
		ShippingCents:     o.shippingCents,
		TaxCents:          o.taxCents,
		AmountCents:       o.amountCents,
		Currency:          o.currency,
		PaymentRef:        o.paymentRef,
		PaymentStatus:     o.paymentStatus,
		FulfillmentStatus: o.fulfillmentStatus,
		TrackingNumber:    o.trackingNumber,
		Notes:             o.notes,
		CreatedAt:         o.createdAt,
		UpdatedAt:         o.updatedAt,
	}
}

// UpdateFulfillment sets any valid status; there are no enforced transitions.
// Empty tracking or notes leave the previous values in place.
func (o *Order) UpdateFulfillment(status FulfillmentStatus, tracking, notes string, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidFulfillmentStatus
	}
	o.fulfillmentStatus = status
	if tracking != "" {
		o.trackingNumber = tracking
	}
	if notes != "" {
		o.notes = notes
	}
	o.updatedAt = now
	return nil
}

// LinesTotalCents sums the line items at their materialized prices.
func (o *Order) LinesTotalCents() int64 {
	var total int64
	for _, li := range o.items {
		total += li.TotalCents()
	}
	return total
}

func (o *Order) ID() uuid.UUID                        { return o.id }
func (o *Order) Number() string                       { return Number(o.id) }
func (o *Order) UserID() *uuid.UUID                   { return o.userID }
func (o *Order) Email() string                        { return o.email }
func (o *Order) Items() []LineItem                    { return o.items }
func (o *Order) ShippingAddress() Address             { return o.shippingAddress }
func (o *Order) SubtotalCents() int64                 { return o.subtotalCents }
func (o *Order) ShippingCents() int64                 { return o.shippingCents }
func (o *Order) TaxCents() int64                      { return o.taxCents }
func (o *Order) AmountCents() int64                   { return o.amountCents }
func (o *Order) Currency() string                     { return o.currency }
func (o *Order) PaymentRef() string                   { return o.paymentRef }
func (o *Order) PaymentStatus() PaymentStatus         { return o.paymentStatus }
func (o *Order) FulfillmentStatus() FulfillmentStatus { return o.fulfillmentStatus }
func (o *Order) TrackingNumber() string               { return o.trackingNumber }
func (o *Order) Notes() string                        { return o.notes }
func (o *Order) CreatedAt() time.Time                 { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                 { return o.updatedAt }
