package repository

import (
	"context"
	"encoding/json"
	"time"

	"storefront-sync/internal/domain/catalog"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/infra/db"
	"storefront-sync/internal/infra/repository/converter"
	"storefront-sync/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertCatalogItemSQL = `
INSERT INTO catalog_items (external_id, title, description, images, brand, category, sku, attributes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
ON CONFLICT (external_id) DO UPDATE SET
    title       = EXCLUDED.title,
    description = EXCLUDED.description,
    images      = EXCLUDED.images,
    brand       = EXCLUDED.brand,
    category    = EXCLUDED.category,
    sku         = EXCLUDED.sku,
    attributes  = EXCLUDED.attributes,
    updated_at  = EXCLUDED.updated_at`

const updateCatalogPriceSQL = `
UPDATE catalog_items SET price_cents = $2, price_updated_at = $3, updated_at = $3
WHERE external_id = $1`

const selectCatalogItemSQL = `
SELECT external_id, title, description, images, brand, category, sku,
       price_cents, price_updated_at, attributes, created_at, updated_at
FROM catalog_items WHERE external_id = $1`

type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: dbtx}
}

func (r *CatalogRepository) Upsert(ctx context.Context, item catalog.Upsert, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	images, err := json.Marshal(nonNilImages(item.Images))
	if err != nil {
		return infra.WrapRepoErr("failed to encode catalog images", err)
	}

	_, err = r.db.Exec(ctx, upsertCatalogItemSQL,
		item.ExternalID, item.Title, item.Description, images,
		item.Brand, item.Category, item.SKU, nullableJSON(item.Attributes), now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert catalog item", err)
	}
	return nil
}

func (r *CatalogRepository) UpdatePrice(ctx context.Context, externalID string, priceCents int64, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, updateCatalogPriceSQL, externalID, priceCents, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update catalog price", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CatalogRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.Item, error) {
	row, err := scanCatalogRow(r.db.QueryRow(ctx, selectCatalogItemSQL, externalID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("catalog item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find catalog item", err)
	}
	return row.toDomain()
}

// catalogRow is shared with the read store through scanCatalogRow.
type catalogRow struct {
	ExternalID     string
	Title          string
	Description    string
	Images         []byte
	Brand          string
	Category       string
	SKU            string
	PriceCents     pgtype.Int8
	PriceUpdatedAt pgtype.Timestamptz
	Attributes     []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogRow(s rowScanner) (*catalogRow, error) {
	var row catalogRow
	err := s.Scan(
		&row.ExternalID, &row.Title, &row.Description, &row.Images, &row.Brand, &row.Category, &row.SKU,
		&row.PriceCents, &row.PriceUpdatedAt, &row.Attributes, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (row *catalogRow) toDomain() (*catalog.Item, error) {
	images, err := converter.DecodeImages(row.Images)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode catalog item "+row.ExternalID, err)
	}
	return &catalog.Item{
		ExternalID:     row.ExternalID,
		Title:          row.Title,
		Description:    row.Description,
		Images:         images,
		Brand:          row.Brand,
		Category:       row.Category,
		SKU:            row.SKU,
		PriceCents:     pgconv.Int64PtrFromPgtype(row.PriceCents),
		PriceUpdatedAt: pgconv.TimePtrFromPgtype(row.PriceUpdatedAt),
		Attributes:     row.Attributes,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
