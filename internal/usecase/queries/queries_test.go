//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/queries"
	"storefront-sync/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalogStore struct {
	mock.Mock
}

func (m *mockCatalogStore) List(ctx context.Context, limit, offset int, pricedOnly bool) ([]readmodel.CatalogItemRM, int64, error) {
	args := m.Called(ctx, limit, offset, pricedOnly)
	items, _ := args.Get(0).([]readmodel.CatalogItemRM)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockCatalogStore) GetView(ctx context.Context, id string) (*readmodel.CatalogItemRM, error) {
	args := m.Called(ctx, id)
	rm, _ := args.Get(0).(*readmodel.CatalogItemRM)
	return rm, args.Error(1)
}

type mockSettingsStore struct {
	mock.Mock
}

func (m *mockSettingsStore) GetPricing(ctx context.Context) (pricing.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(pricing.Settings), args.Error(1)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) ListByEmail(ctx context.Context, email string) ([]readmodel.OrderRM, error) {
	args := m.Called(ctx, email)
	rms, _ := args.Get(0).([]readmodel.OrderRM)
	return rms, args.Error(1)
}

func price(v int64) *int64 { return &v }

func TestCatalogQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 表示価格にマークアップを適用", func(t *testing.T) {
		store := new(mockCatalogStore)
		settings := new(mockSettingsStore)
		settings.On("GetPricing", ctx).Return(pricing.Settings{MarkupPercent: 25}, nil)
		store.On("List", ctx, 10, 10, false).Return([]readmodel.CatalogItemRM{
			{ExternalID: "A", Title: "Lamp", PriceCents: price(1000)},
			{ExternalID: "B", Title: "Shade"},
		}, int64(12), nil)

		page, err := queries.NewCatalogQueries(store, settings).List(ctx, 2, 10, false)

		require.NoError(t, err)
		assert.Equal(t, int64(12), page.Total)
		require.Len(t, page.Items, 2)
		require.NotNil(t, page.Items[0].DisplayPriceCents)
		assert.Equal(t, int64(1250), *page.Items[0].DisplayPriceCents)
		assert.True(t, page.Items[0].Available)
		assert.Nil(t, page.Items[1].DisplayPriceCents)
		assert.False(t, page.Items[1].Available)
	})

	t.Run("正常系: ページサイズの上限と既定値", func(t *testing.T) {
		store := new(mockCatalogStore)
		settings := new(mockSettingsStore)
		settings.On("GetPricing", ctx).Return(pricing.DefaultSettings(), nil)
		store.On("List", ctx, queries.MaxPageSize, 0, true).Return([]readmodel.CatalogItemRM{}, int64(0), nil).Once()
		store.On("List", ctx, queries.DefaultPageSize, 0, true).Return([]readmodel.CatalogItemRM{}, int64(0), nil).Once()

		q := queries.NewCatalogQueries(store, settings)
		_, err := q.List(ctx, 0, 1000, true)
		require.NoError(t, err)
		_, err = q.List(ctx, -3, 0, true)
		require.NoError(t, err)

		store.AssertExpectations(t)
	})

	t.Run("異常系: 存在しない商品", func(t *testing.T) {
		store := new(mockCatalogStore)
		store.On("GetView", ctx, "X").Return(nil, infra.WrapRepoErr("catalog item not found", errors.New("no rows"), infra.KindNotFound))

		_, err := queries.NewCatalogQueries(store, new(mockSettingsStore)).Get(ctx, "X")

		assert.True(t, errs.Is(err, errs.ErrCatalogItemNotFound))
	})
}

func TestPricingQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 設定は呼び出しのたびに読み直す", func(t *testing.T) {
		settings := new(mockSettingsStore)
		settings.On("GetPricing", ctx).Return(pricing.Settings{MarkupPercent: 10}, nil).Once()
		settings.On("GetPricing", ctx).Return(pricing.Settings{MarkupPercent: 50}, nil).Once()
		q := queries.NewPricingQueries(settings)

		first, err := q.DisplayPrice(ctx, 1000)
		require.NoError(t, err)
		second, err := q.DisplayPrice(ctx, 1000)
		require.NoError(t, err)

		assert.Equal(t, int64(1100), first)
		assert.Equal(t, int64(1500), second)
	})

	t.Run("正常系: 送料見積もり", func(t *testing.T) {
		q := queries.NewPricingQueries(new(mockSettingsStore))

		quote := q.ShippingQuote("ZZ", 1000)
		assert.Equal(t, int(pricing.FallbackZone), quote.Zone)
		assert.Equal(t, pricing.ZoneRate(pricing.FallbackZone), quote.ShippingCents)

		free := q.ShippingQuote("CA", pricing.FreeShippingThresholdCents)
		assert.Equal(t, int64(0), free.ShippingCents)
	})
}

func TestOrderQueries_Lookup(t *testing.T) {
	ctx := context.Background()
	target := uuid.MustParse("4f1c2a9e-8b7d-4c3e-9a1b-2c3d4e5f6a7b")
	other := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	rms := []readmodel.OrderRM{
		{ID: other, Email: "buyer@example.com", CreatedAt: time.Now()},
		{
			ID:                target,
			Email:             "buyer@example.com",
			Items:             []readmodel.OrderLineRM{{CatalogRef: "p1", Title: "Lamp", PriceCents: 1100, Quantity: 2}},
			AmountCents:       2200,
			FulfillmentStatus: "shipped",
		},
	}

	t.Run("正常系: 番号の表記ゆれを吸収して検索", func(t *testing.T) {
		store := new(mockOrderStore)
		store.On("ListByEmail", ctx, "buyer@example.com").Return(rms, nil)

		view, err := queries.NewOrderQueries(store).Lookup(ctx, " #4e5f 6a7b ", "  Buyer@Example.COM ")

		require.NoError(t, err)
		assert.Equal(t, target, view.ID)
		assert.Equal(t, "4E5F6A7B", view.Number)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Lamp", view.Items[0].Title)
		assert.Equal(t, "shipped", view.FulfillmentStatus)
	})

	t.Run("異常系: メールアドレスが一致しない", func(t *testing.T) {
		store := new(mockOrderStore)
		store.On("ListByEmail", ctx, "someone@example.com").Return([]readmodel.OrderRM{}, nil)

		_, err := queries.NewOrderQueries(store).Lookup(ctx, order.Number(target), "someone@example.com")

		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
	})

	t.Run("異常系: 入力が空", func(t *testing.T) {
		store := new(mockOrderStore)

		_, err := queries.NewOrderQueries(store).Lookup(ctx, "#", "buyer@example.com")

		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
		store.AssertNotCalled(t, "ListByEmail", mock.Anything, mock.Anything)
	})
}
