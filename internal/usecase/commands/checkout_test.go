//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/commands"
	"storefront-sync/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckoutUseCase_CreateSession(t *testing.T) {
	cfg := config.NewTestConfig().Checkout
	cfg.TaxPercent = 8

	setup := func() (*memCatalog, *memSettings, *mockGateway, commands.CheckoutCommands) {
		repo := newMemCatalog()
		repo.put("p1", "Desk Lamp", cents(1000))
		repo.put("p2", "Shade", cents(500))
		repo.put("p9", "Unpriced", nil)
		settings := &memSettings{s: &pricing.Settings{MarkupPercent: 20}}
		gw := new(mockGateway)
		return repo, settings, gw, commands.NewCheckoutUseCase(repo, settings, gw, cfg)
	}

	t.Run("正常系: カタログ価格とメタデータでセッションを作成", func(t *testing.T) {
		_, _, gw, uc := setup()
		userID := uuid.New()
		var captured shared.CheckoutSessionRequest
		gw.On("CreateSession", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(shared.CheckoutSessionRequest) }).
			Return(&shared.CheckoutSession{ID: "cs_new", URL: "https://pay.example/cs_new"}, nil)

		res, err := uc.CreateSession(context.Background(), commands.CreateSessionRequest{
			Items:    []checkout.LineRef{{ExternalID: "p1", Quantity: 2}, {ExternalID: "p2", Quantity: 1}},
			Email:    " Buyer@Example.com ",
			UserID:   &userID,
			Shipping: order.Address{Name: "Ada", State: "ny"},
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_new", res.SessionID)
		assert.Equal(t, int64(3000), res.SubtotalCents)
		assert.Equal(t, pricing.ShippingCost("NY", 3000), res.ShippingCents)
		assert.Equal(t, int64(240), res.TaxCents)
		assert.Equal(t, res.SubtotalCents+res.ShippingCents+res.TaxCents, res.TotalCents)

		require.Len(t, captured.Lines, 2)
		assert.Equal(t, int64(1200), captured.Lines[0].UnitAmountCents)
		assert.Equal(t, "buyer@example.com", captured.Email)

		intent := checkout.IntentFromMetadata("cs_new", captured.Metadata)
		assert.Equal(t, "p1:2,p2:1", intent.CompactItems)
		assert.Equal(t, &userID, intent.UserID)
		assert.Equal(t, int64(3000), intent.SubtotalCents)
		assert.Equal(t, res.ShippingCents, intent.ShippingCents)
	})

	t.Run("異常系: 空のカート", func(t *testing.T) {
		_, _, gw, uc := setup()

		_, err := uc.CreateSession(context.Background(), commands.CreateSessionRequest{})

		assert.ErrorIs(t, err, errs.ErrEmptyCheckout)
		gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})

	t.Run("異常系: 価格未取得の商品", func(t *testing.T) {
		_, _, gw, uc := setup()

		_, err := uc.CreateSession(context.Background(), commands.CreateSessionRequest{
			Items: []checkout.LineRef{{ExternalID: "p9", Quantity: 1}},
		})

		assert.True(t, errs.Is(err, errs.ErrItemUnavailable))
		gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})

	t.Run("異常系: 存在しない商品", func(t *testing.T) {
		_, _, _, uc := setup()

		_, err := uc.CreateSession(context.Background(), commands.CreateSessionRequest{
			Items: []checkout.LineRef{{ExternalID: "nope", Quantity: 1}},
		})

		assert.True(t, errs.Is(err, errs.ErrCatalogItemNotFound))
	})

	t.Run("異常系: 圧縮表現が上限を超えると決済処理を呼ばない", func(t *testing.T) {
		_, _, gw, uc := setup()
		var refs []checkout.LineRef
		for i := 0; i < 60; i++ {
			refs = append(refs, checkout.LineRef{ExternalID: strings.Repeat("x", 8) + string(rune('a'+i%26)), Quantity: 1})
		}

		_, err := uc.CreateSession(context.Background(), commands.CreateSessionRequest{Items: refs})

		assert.ErrorIs(t, err, checkout.ErrCapacityExceeded)
		gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})
}

func TestOrderStatusUseCase_UpdateFulfillment(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	seed := func(t *testing.T, orders *memOrders) *order.Order {
		t.Helper()
		o, err := order.NewPaidOrder(clk, order.PaidOrderParams{
			Email:      "a@example.com",
			Items:      []order.LineItem{{CatalogRef: "p1", Title: "Lamp", PriceCents: 100, Quantity: 1}},
			Currency:   "usd",
			PaymentRef: "cs_x",
		})
		require.NoError(t, err)
		require.NoError(t, orders.Insert(context.Background(), o))
		return o
	}

	t.Run("正常系: 任意の有効なステータスに更新できる", func(t *testing.T) {
		orders := newMemOrders()
		o := seed(t, orders)
		uc := commands.NewOrderStatusUseCase(orders, clk)
		clk.Add(time.Hour)

		updated, err := uc.UpdateFulfillment(context.Background(), o.ID(), commands.UpdateFulfillmentRequest{
			Status: "Delivered", TrackingNumber: "1Z999",
		})

		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, updated.FulfillmentStatus())
		assert.Equal(t, "1Z999", updated.TrackingNumber())
		assert.Equal(t, clk.Now(), updated.UpdatedAt())
	})

	t.Run("異常系: 不正なステータス", func(t *testing.T) {
		orders := newMemOrders()
		o := seed(t, orders)
		uc := commands.NewOrderStatusUseCase(orders, clk)

		_, err := uc.UpdateFulfillment(context.Background(), o.ID(), commands.UpdateFulfillmentRequest{Status: "lost"})

		assert.True(t, errs.Is(err, errs.ErrInvalidFulfillmentStatus))
	})

	t.Run("異常系: 存在しない注文", func(t *testing.T) {
		uc := commands.NewOrderStatusUseCase(newMemOrders(), clk)

		_, err := uc.UpdateFulfillment(context.Background(), uuid.New(), commands.UpdateFulfillmentRequest{Status: "shipped"})

		assert.True(t, errs.Is(err, errs.ErrOrderNotFound))
	})
}

func TestSettingsUseCase_UpdatePricing(t *testing.T) {
	clk := clock.NewRealClock()

	t.Run("正常系: 保存した値が読み出せる", func(t *testing.T) {
		store := &memSettings{}
		uc := commands.NewSettingsUseCase(store, clk)

		saved, err := uc.UpdatePricing(context.Background(), 35)

		require.NoError(t, err)
		assert.Equal(t, 35.0, saved.MarkupPercent)
		got, _ := store.GetPricing(context.Background())
		assert.Equal(t, 35.0, got.MarkupPercent)
	})

	t.Run("異常系: 負のマークアップは拒否", func(t *testing.T) {
		store := &memSettings{}
		uc := commands.NewSettingsUseCase(store, clk)

		_, err := uc.UpdatePricing(context.Background(), -1)

		assert.ErrorIs(t, err, errs.ErrInvalidMarkup)
		got, _ := store.GetPricing(context.Background())
		assert.Equal(t, pricing.DefaultSettings(), got)
	})
}
