//go:build unit

package order_test

import (
	"strings"
	"testing"
	"time"

	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/pkg/clock"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() order.PaidOrderParams {
	return order.PaidOrderParams{
		Email: "Buyer@Example.com",
		Items: []order.LineItem{
			{CatalogRef: "p1", Title: "Mug", PriceCents: 1250, Quantity: 2},
			{CatalogRef: "p2", Title: "Cap", PriceCents: 999, Quantity: 1},
		},
		ShippingAddress: order.Address{Name: "Ada", Line1: "1 Main St", City: "Reno", State: "NV", PostalCode: "89501", Country: "US"},
		SubtotalCents:   3499,
		ShippingCents:   599,
		AmountCents:     4098,
		Currency:        "USD",
		PaymentRef:      "cs_test_123",
	}
}

func TestNewPaidOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	t.Run("基本成功ケース", func(t *testing.T) {
		o, err := order.NewPaidOrder(clk, validParams())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, o.ID())
		assert.Equal(t, "buyer@example.com", o.Email())
		assert.Equal(t, "usd", o.Currency())
		assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus())
		assert.Equal(t, order.StatusReceived, o.FulfillmentStatus())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, int64(3499), o.LinesTotalCents())
	})

	t.Run("Snapshotから復元できる", func(t *testing.T) {
		o, err := order.NewPaidOrder(clk, validParams())
		require.NoError(t, err)

		restored := order.Reconstruct(o.Snapshot())
		if diff := cmp.Diff(o.Snapshot(), restored.Snapshot(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("明細なしでも備考付きで作成できる", func(t *testing.T) {
		p := validParams()
		p.Items = nil
		p.Notes = " unresolved catalog refs: p1 "

		o, err := order.NewPaidOrder(clk, p)

		require.NoError(t, err)
		assert.Empty(t, o.Items())
		assert.Equal(t, int64(0), o.LinesTotalCents())
		assert.Equal(t, "unresolved catalog refs: p1", o.Notes())
		assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus())
	})

	tests := []struct {
		name   string
		mutate func(p *order.PaidOrderParams)
		errIs  error
	}{
		{name: "支払い参照なしNG", mutate: func(p *order.PaidOrderParams) { p.PaymentRef = " " }, errIs: order.ErrEmptyPaymentRef},
		{name: "メールなしNG", mutate: func(p *order.PaidOrderParams) { p.Email = "" }, errIs: order.ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := order.NewPaidOrder(clk, p)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestUpdateFulfillment(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	o, err := order.NewPaidOrder(clk, validParams())
	require.NoError(t, err)

	later := clk.Now().Add(48 * time.Hour)
	require.NoError(t, o.UpdateFulfillment(order.StatusShipped, "1Z999", "", later))
	assert.Equal(t, order.StatusShipped, o.FulfillmentStatus())
	assert.Equal(t, "1Z999", o.TrackingNumber())
	assert.Equal(t, later, o.UpdatedAt())

	// any valid status may follow any other
	require.NoError(t, o.UpdateFulfillment(order.StatusReceived, "", "back to start", later))
	assert.Equal(t, "1Z999", o.TrackingNumber())
	assert.Equal(t, "back to start", o.Notes())

	assert.ErrorIs(t, o.UpdateFulfillment("lost", "", "", later), order.ErrInvalidFulfillmentStatus)
}

func TestNewFulfillmentStatus(t *testing.T) {
	for _, s := range []string{"received", "processing", "shipped", "in_transit", "out_for_delivery", "delivered", "cancelled", " Shipped "} {
		_, err := order.NewFulfillmentStatus(s)
		assert.NoError(t, err, s)
	}
	_, err := order.NewFulfillmentStatus("refunded")
	assert.ErrorIs(t, err, order.ErrInvalidFulfillmentStatus)
}

func TestNumber(t *testing.T) {
	id := uuid.MustParse("3f2b8c1e-4d5a-4b6c-9e7f-a1b2c3d4e5f6")
	assert.Equal(t, "C3D4E5F6", order.Number(id))

	for _, input := range []string{"c3d4e5f6", " #C3D4E5F6 ", "#c3d4 e5f6", "C3D4E5F6"} {
		assert.Equal(t, order.Number(id), order.NormalizeNumber(input), input)
	}
	assert.Len(t, order.Number(uuid.New()), 8)
	assert.Equal(t, strings.ToUpper(order.Number(id)), order.Number(id))
}
