package repository

import (
	"context"
	"encoding/json"
	"time"

	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/infra/db"
	"storefront-sync/internal/infra/repository/converter"
	"storefront-sync/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentRefConstraint = "orders_payment_ref_key"

const insertOrderSQL = `
INSERT INTO orders (id, user_id, email, items, shipping_address, subtotal_cents, shipping_cents, tax_cents,
                    amount_cents, currency, payment_ref, payment_status, fulfillment_status,
                    tracking_number, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

const orderColumns = `id, user_id, email, items, shipping_address, subtotal_cents, shipping_cents, tax_cents,
       amount_cents, currency, payment_ref, payment_status, fulfillment_status,
       tracking_number, notes, created_at, updated_at`

const updateFulfillmentSQL = `
UPDATE orders SET fulfillment_status = $2, tracking_number = $3, notes = $4, updated_at = $5
WHERE id = $1`

type OrderRepository struct {
	db   db.DBTX
	pool db.TxBeginner
}

func NewOrderRepository(dbtx db.DBTX, pool db.TxBeginner) *OrderRepository {
	return &OrderRepository{db: dbtx, pool: pool}
}

func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	s := o.Snapshot()
	docs, err := converter.LinesToDocs(s.Items)
	if err != nil {
		return infra.WrapRepoErr("failed to convert order items", err)
	}
	items, err := json.Marshal(docs)
	if err != nil {
		return infra.WrapRepoErr("failed to encode order items", err)
	}
	addr, err := json.Marshal(converter.AddressToDoc(s.ShippingAddress))
	if err != nil {
		return infra.WrapRepoErr("failed to encode shipping address", err)
	}

	_, err = r.db.Exec(ctx, insertOrderSQL,
		s.ID, pgconv.UUIDPtrToPgtype(s.UserID), s.Email, items, addr,
		s.SubtotalCents, s.ShippingCents, s.TaxCents, s.AmountCents, s.Currency,
		s.PaymentRef, string(s.PaymentStatus), string(s.FulfillmentStatus),
		s.TrackingNumber, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err, paymentRefConstraint) {
			return infra.WrapRepoErr("order already exists for payment reference", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert order", err)
	}
	return nil
}

func (r *OrderRepository) FindIDByPaymentRef(ctx context.Context, paymentRef string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM orders WHERE payment_ref = $1`, paymentRef).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("order not found for payment reference", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find order by payment reference", err)
	}
	return id, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return findOrder(ctx, r.db, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepository) UpdateFulfillment(ctx context.Context, id uuid.UUID, mutate func(o *order.Order) error) (*order.Order, error) {
	return db.WithDefaultRetry(ctx, r.pool, func(tx db.DBTX) (*order.Order, error) {
		o, err := findOrder(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return nil, err
		}
		if err := mutate(o); err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, updateFulfillmentSQL,
			o.ID(), string(o.FulfillmentStatus()), o.TrackingNumber(), o.Notes(), o.UpdatedAt())
		if err != nil {
			return nil, infra.WrapRepoErr("failed to update fulfillment status", err)
		}
		return o, nil
	})
}

func findOrder(ctx context.Context, q db.DBTX, sql string, args ...any) (*order.Order, error) {
	row, err := scanOrderRow(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return row.toDomain()
}

type orderRow struct {
	ID                uuid.UUID
	UserID            pgtype.UUID
	Email             string
	Items             []byte
	ShippingAddress   []byte
	SubtotalCents     int64
	ShippingCents     int64
	TaxCents          int64
	AmountCents       int64
	Currency          string
	PaymentRef        string
	PaymentStatus     string
	FulfillmentStatus string
	TrackingNumber    string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func scanOrderRow(s rowScanner) (*orderRow, error) {
	var row orderRow
	err := s.Scan(
		&row.ID, &row.UserID, &row.Email, &row.Items, &row.ShippingAddress,
		&row.SubtotalCents, &row.ShippingCents, &row.TaxCents, &row.AmountCents, &row.Currency,
		&row.PaymentRef, &row.PaymentStatus, &row.FulfillmentStatus,
		&row.TrackingNumber, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (row *orderRow) toDomain() (*order.Order, error) {
	var lines []converter.LineDoc
	if err := json.Unmarshal(row.Items, &lines); err != nil {
		return nil, infra.WrapRepoErr("failed to decode order items", err)
	}
	var addr converter.AddressDoc
	if err := json.Unmarshal(row.ShippingAddress, &addr); err != nil {
		return nil, infra.WrapRepoErr("failed to decode shipping address", err)
	}
	items, err := converter.DocsToLines(lines)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert order items", err)
	}

	return order.Reconstruct(order.Snapshot{
		ID:                row.ID,
		UserID:            pgconv.UUIDPtrFromPgtype(row.UserID),
		Email:             row.Email,
		Items:             items,
		ShippingAddress:   converter.DocToAddress(addr),
		SubtotalCents:     row.SubtotalCents,
		ShippingCents:     row.ShippingCents,
		TaxCents:          row.TaxCents,
		AmountCents:       row.AmountCents,
		Currency:          row.Currency,
		PaymentRef:        row.PaymentRef,
		PaymentStatus:     order.PaymentStatus(row.PaymentStatus),
		FulfillmentStatus: order.FulfillmentStatus(row.FulfillmentStatus),
		TrackingNumber:    row.TrackingNumber,
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}), nil
}
