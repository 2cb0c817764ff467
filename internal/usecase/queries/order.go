package queries

//go:generate go run go.uber.org/mock/mockgen -source=order.go -destination=../../testutil/mock/queries/order.go -package=queriesmock -exclude_interfaces=OrderReadStore

import (
	"context"
	"strings"
	"time"

	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderLineView struct {
	CatalogRef string
	Title      string
	PriceCents int64
	Quantity   int
	Image      string
	SKU        string
}

type OrderView struct {
	ID                uuid.UUID
	Number            string
	Email             string
	Items             []OrderLineView
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

type OrderReadStore interface {
	// ListByEmail returns the email's orders, newest first.
	ListByEmail(ctx context.Context, email string) ([]readmodel.OrderRM, error)
}

type OrderQueries interface {
	// Lookup finds an order by its short number. The email must match the purchaser's.
	Lookup(ctx context.Context, orderNumber, email string) (*OrderView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) Lookup(ctx context.Context, orderNumber, email string) (*OrderView, error) {
	number := order.NormalizeNumber(orderNumber)
	email = strings.ToLower(strings.TrimSpace(email))
	if number == "" || email == "" {
		return nil, errs.ErrOrderNotFound
	}

	rms, err := q.store.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range rms {
		if order.Number(rms[i].ID) == number {
			return toOrderView(&rms[i]), nil
		}
	}
	return nil, errs.ErrOrderNotFound
}

func toOrderView(rm *readmodel.OrderRM) *OrderView {
	v := &OrderView{}
	_ = copier.Copy(v, rm)
	v.Number = order.Number(rm.ID)
	return v
}
