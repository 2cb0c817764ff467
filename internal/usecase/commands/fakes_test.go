//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"storefront-sync/internal/domain/catalog"
	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/infra/supplier"
	"storefront-sync/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var errNotFound = errors.New("no rows")

// memCatalog mirrors the store contract: upserts never touch price fields.
type memCatalog struct {
	mu    sync.Mutex
	items map[string]catalog.Item
	// failing makes lookups and price writes of these ids fail as a store outage would.
	failing map[string]bool
}

func newMemCatalog() *memCatalog {
	return &memCatalog{items: map[string]catalog.Item{}}
}

func (m *memCatalog) Upsert(_ context.Context, u catalog.Upsert, now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[u.ExternalID]
	if !ok {
		it.CreatedAt = now
	}
	it.ExternalID = u.ExternalID
	it.Title = u.Title
	it.Description = u.Description
	it.Images = u.Images
	it.Brand = u.Brand
	it.Category = u.Category
	it.SKU = u.SKU
	it.Attributes = u.Attributes
	it.UpdatedAt = now
	m.items[u.ExternalID] = it
	return nil
}

func (m *memCatalog) UpdatePrice(_ context.Context, id string, cents int64, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing[id] {
		return false, infra.WrapRepoErr("failed to update catalog price", errors.New("connection reset"), infra.KindDBFailure)
	}
	it, ok := m.items[id]
	if !ok {
		return false, nil
	}
	it.PriceCents = &cents
	it.PriceUpdatedAt = &at
	m.items[id] = it
	return true, nil
}

func (m *memCatalog) FindByExternalID(_ context.Context, id string) (*catalog.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing[id] {
		return nil, infra.WrapRepoErr("failed to find catalog item", errors.New("connection reset"), infra.KindDBFailure)
	}
	it, ok := m.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("catalog item not found", errNotFound, infra.KindNotFound)
	}
	return &it, nil
}

func (m *memCatalog) put(id, title string, priceCents *int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = catalog.Item{ExternalID: id, Title: title, SKU: "SKU-" + id, Images: []string{id + ".jpg"}, PriceCents: priceCents}
}

func (m *memCatalog) setFailing(id string, failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing == nil {
		m.failing = map[string]bool{}
	}
	m.failing[id] = failing
}

func (m *memCatalog) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
}

// memOrders enforces payment reference uniqueness at insert time.
type memOrders struct {
	mu    sync.Mutex
	byRef map[string]*order.Order
	byID  map[uuid.UUID]*order.Order
	// beforeInsert runs outside the lock; tests use it to race a second path in.
	beforeInsert func()
}

func newMemOrders() *memOrders {
	return &memOrders{byRef: map[string]*order.Order{}, byID: map[uuid.UUID]*order.Order{}}
}

func (m *memOrders) Insert(_ context.Context, o *order.Order) error {
	if m.beforeInsert != nil {
		hook := m.beforeInsert
		m.beforeInsert = nil
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.byRef[o.PaymentRef()]; dup {
		return infra.WrapRepoErr("duplicate payment ref", errors.New("unique violation"), infra.KindDuplicateKey)
	}
	m.byRef[o.PaymentRef()] = o
	m.byID[o.ID()] = o
	return nil
}

func (m *memOrders) FindIDByPaymentRef(_ context.Context, ref string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byRef[ref]
	if !ok {
		return uuid.Nil, infra.WrapRepoErr("order not found", errNotFound, infra.KindNotFound)
	}
	return o.ID(), nil
}

func (m *memOrders) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", errNotFound, infra.KindNotFound)
	}
	return o, nil
}

func (m *memOrders) UpdateFulfillment(_ context.Context, id uuid.UUID, mutate func(*order.Order) error) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", errNotFound, infra.KindNotFound)
	}
	if err := mutate(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byRef)
}

type memSettings struct {
	mu sync.Mutex
	s  *pricing.Settings
}

func (m *memSettings) GetPricing(context.Context) (pricing.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return pricing.DefaultSettings(), nil
	}
	return *m.s, nil
}

func (m *memSettings) SavePricing(_ context.Context, s pricing.Settings, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = &s
	return nil
}

type mockSupplier struct {
	mock.Mock
}

func (m *mockSupplier) ListProducts(ctx context.Context, page int, filters supplier.Filters) (*supplier.ProductPage, error) {
	args := m.Called(ctx, page, filters)
	if p, ok := args.Get(0).(*supplier.ProductPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSupplier) GetPrices(ctx context.Context, ids []string) (*supplier.PriceList, error) {
	args := m.Called(ctx, ids)
	if p, ok := args.Get(0).(*supplier.PriceList); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) ParseCompletedCheckout(payload []byte, sig string) (*checkout.Intent, bool, error) {
	args := m.Called(payload, sig)
	in, _ := args.Get(0).(*checkout.Intent)
	return in, args.Bool(1), args.Error(2)
}

func (m *mockGateway) RetrieveCompletedSession(ctx context.Context, id string) (*checkout.Intent, error) {
	args := m.Called(ctx, id)
	in, _ := args.Get(0).(*checkout.Intent)
	return in, args.Error(1)
}

func (m *mockGateway) CreateSession(ctx context.Context, req shared.CheckoutSessionRequest) (*shared.CheckoutSession, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*shared.CheckoutSession)
	return s, args.Error(1)
}

type recordingCart struct {
	cleared chan uuid.UUID
}

func newRecordingCart() *recordingCart {
	return &recordingCart{cleared: make(chan uuid.UUID, 8)}
}

func (c *recordingCart) Clear(_ context.Context, userID uuid.UUID) error {
	c.cleared <- userID
	return nil
}

func cents(v int64) *int64 { return &v }
