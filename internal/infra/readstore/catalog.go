package readstore

import (
	"context"
	"time"

	"storefront-sync/internal/infra"
	"storefront-sync/internal/infra/db"
	"storefront-sync/internal/infra/repository/converter"
	"storefront-sync/internal/pkg/pgconv"
	"storefront-sync/internal/usecase/readmodel"

	"github.com/jackc/pgx/v5/pgtype"
)

const catalogViewColumns = `external_id, title, description, images, brand, category, sku,
       price_cents, price_updated_at, attributes, updated_at`

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

// List pages through items ordered by external id. Only items with a price are listed
// when pricedOnly is set.
func (r *CatalogReadStore) List(ctx context.Context, limit, offset int, pricedOnly bool) ([]readmodel.CatalogItemRM, int64, error) {
	filter := ""
	if pricedOnly {
		filter = " WHERE price_cents IS NOT NULL"
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM catalog_items`+filter).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count catalog items", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+catalogViewColumns+` FROM catalog_items`+filter+` ORDER BY external_id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list catalog items", err)
	}
	defer rows.Close()

	items := make([]readmodel.CatalogItemRM, 0, limit)
	for rows.Next() {
		rm, err := scanCatalogRM(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan catalog item", err)
		}
		items = append(items, *rm)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate catalog items", err)
	}
	return items, total, nil
}

func (r *CatalogReadStore) GetView(ctx context.Context, externalID string) (*readmodel.CatalogItemRM, error) {
	rm, err := scanCatalogRM(r.db.QueryRow(ctx,
		`SELECT `+catalogViewColumns+` FROM catalog_items WHERE external_id = $1`, externalID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("catalog item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find catalog item", err)
	}
	return rm, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCatalogRM(s scanner) (*readmodel.CatalogItemRM, error) {
	var (
		rm             readmodel.CatalogItemRM
		images         []byte
		priceCents     pgtype.Int8
		priceUpdatedAt pgtype.Timestamptz
		attributes     []byte
		updatedAt      time.Time
	)
	err := s.Scan(
		&rm.ExternalID, &rm.Title, &rm.Description, &images, &rm.Brand, &rm.Category, &rm.SKU,
		&priceCents, &priceUpdatedAt, &attributes, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rm.Images, err = converter.DecodeImages(images); err != nil {
		return nil, err
	}
	rm.PriceCents = pgconv.Int64PtrFromPgtype(priceCents)
	rm.PriceUpdatedAt = pgconv.TimePtrFromPgtype(priceUpdatedAt)
	rm.Attributes = attributes
	rm.UpdatedAt = updatedAt
	return &rm, nil
}
