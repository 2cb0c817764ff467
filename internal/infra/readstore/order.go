package readstore

import (
	"context"
	"encoding/json"

	"storefront-sync/internal/infra"
	"storefront-sync/internal/infra/db"
	"storefront-sync/internal/infra/repository/converter"
	"storefront-sync/internal/usecase/readmodel"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

// ListByEmail returns the orders of one purchaser, newest first. email must already be lowercased.
func (r *OrderReadStore) ListByEmail(ctx context.Context, email string) ([]readmodel.OrderRM, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, email, items, shipping_address, subtotal_cents, shipping_cents, tax_cents, amount_cents,
       currency, payment_status, fulfillment_status, tracking_number, created_at, updated_at
FROM orders WHERE email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by email", err)
	}
	defer rows.Close()

	var out []readmodel.OrderRM
	for rows.Next() {
		var (
			rm    readmodel.OrderRM
			items []byte
			addr  []byte
		)
		err := rows.Scan(
			&rm.ID, &rm.Email, &items, &addr, &rm.SubtotalCents, &rm.ShippingCents, &rm.TaxCents, &rm.AmountCents,
			&rm.Currency, &rm.PaymentStatus, &rm.FulfillmentStatus, &rm.TrackingNumber, &rm.CreatedAt, &rm.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}

		var lines []converter.LineDoc
		if err := json.Unmarshal(items, &lines); err != nil {
			return nil, infra.WrapRepoErr("failed to decode order items", err)
		}
		var ship converter.AddressDoc
		if err := json.Unmarshal(addr, &ship); err != nil {
			return nil, infra.WrapRepoErr("failed to decode shipping address", err)
		}
		if rm.Items, err = converter.DocsToLineRMs(lines); err != nil {
			return nil, infra.WrapRepoErr("failed to convert order items", err)
		}
		rm.ShipName, rm.ShipCity, rm.ShipState = ship.Name, ship.City, ship.State
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return out, nil
}
