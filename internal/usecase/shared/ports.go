package shared

import (
	"context"
	"time"

	"storefront-sync/internal/domain/catalog"
	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra/supplier"

	"github.com/google/uuid"
)

// CatalogRepository is the write side of the catalog. Both stores implement it.
type CatalogRepository interface {
	// Upsert inserts or replaces the identity fields of one item in a single atomic statement.
	// Price fields are never touched.
	Upsert(ctx context.Context, item catalog.Upsert, now time.Time) error
	// UpdatePrice reports false when no item has the external id.
	UpdatePrice(ctx context.Context, externalID string, priceCents int64, at time.Time) (bool, error)
	FindByExternalID(ctx context.Context, externalID string) (*catalog.Item, error)
}

type OrderRepository interface {
	// Insert fails with infra.KindDuplicateKey when the payment reference already has an order.
	Insert(ctx context.Context, o *order.Order) error
	FindIDByPaymentRef(ctx context.Context, paymentRef string) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// UpdateFulfillment loads the order, applies mutate and persists the result atomically.
	UpdateFulfillment(ctx context.Context, id uuid.UUID, mutate func(o *order.Order) error) (*order.Order, error)
}

type SettingsRepository interface {
	// GetPricing returns pricing.DefaultSettings when nothing has been stored.
	GetPricing(ctx context.Context) (pricing.Settings, error)
	SavePricing(ctx context.Context, s pricing.Settings, now time.Time) error
}

type SupplierAPI interface {
	ListProducts(ctx context.Context, page int, filters supplier.Filters) (*supplier.ProductPage, error)
	GetPrices(ctx context.Context, itemNos []string) (*supplier.PriceList, error)
}

type SessionLine struct {
	Name            string
	Image           string
	UnitAmountCents int64
	Quantity        int
}

type CheckoutSessionRequest struct {
	Lines         []SessionLine
	ShippingCents int64
	TaxCents      int64
	Currency      string
	Email         string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentGateway interface {
	// ParseCompletedCheckout verifies the signature before decoding. handled is false
	// for event types other than a completed checkout session.
	ParseCompletedCheckout(payload []byte, signatureHeader string) (intent *checkout.Intent, handled bool, err error)
	// RetrieveCompletedSession fails with errs.ErrPaymentNotCompleted unless the session is paid.
	RetrieveCompletedSession(ctx context.Context, sessionID string) (*checkout.Intent, error)
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
}

type CartInvalidator interface {
	Clear(ctx context.Context, userID uuid.UUID) error
}
