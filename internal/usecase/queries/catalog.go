package queries

//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=../../testutil/mock/queries/catalog.go -package=queriesmock -exclude_interfaces=CatalogReadStore

import (
	"context"
	"encoding/json"
	"time"

	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/readmodel"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

type CatalogItemView struct {
	ExternalID        string
	Title             string
	Description       string
	Images            []string
	Brand             string
	Category          string
	SKU               string
	DisplayPriceCents *int64
	Available         bool
	PriceUpdatedAt    *time.Time
	Attributes        json.RawMessage
	UpdatedAt         time.Time
}

type CatalogPage struct {
	Items   []CatalogItemView
	Page    int
	PerPage int
	Total   int64
}

type CatalogReadStore interface {
	List(ctx context.Context, limit, offset int, pricedOnly bool) ([]readmodel.CatalogItemRM, int64, error)
	GetView(ctx context.Context, externalID string) (*readmodel.CatalogItemRM, error)
}

type CatalogQueries interface {
	List(ctx context.Context, page, perPage int, pricedOnly bool) (*CatalogPage, error)
	Get(ctx context.Context, externalID string) (*CatalogItemView, error)
}

type catalogQueriesImpl struct {
	store    CatalogReadStore
	settings SettingsReadStore
}

func NewCatalogQueries(store CatalogReadStore, settings SettingsReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store, settings: settings}
}

func (q *catalogQueriesImpl) List(ctx context.Context, page, perPage int, pricedOnly bool) (*CatalogPage, error) {
	page = max(page, 1)
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	perPage = min(perPage, MaxPageSize)

	s, err := q.settings.GetPricing(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load pricing settings")
	}

	rms, total, err := q.store.List(ctx, perPage, (page-1)*perPage, pricedOnly)
	if err != nil {
		return nil, err
	}

	items := make([]CatalogItemView, 0, len(rms))
	for i := range rms {
		items = append(items, toCatalogItemView(&rms[i], s))
	}
	return &CatalogPage{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

func (q *catalogQueriesImpl) Get(ctx context.Context, externalID string) (*CatalogItemView, error) {
	rm, err := q.store.GetView(ctx, externalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCatalogItemNotFound)
		}
		return nil, err
	}
	s, err := q.settings.GetPricing(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load pricing settings")
	}
	v := toCatalogItemView(rm, s)
	return &v, nil
}

func toCatalogItemView(rm *readmodel.CatalogItemRM, s pricing.Settings) CatalogItemView {
	v := CatalogItemView{
		ExternalID:     rm.ExternalID,
		Title:          rm.Title,
		Description:    rm.Description,
		Images:         rm.Images,
		Brand:          rm.Brand,
		Category:       rm.Category,
		SKU:            rm.SKU,
		PriceUpdatedAt: rm.PriceUpdatedAt,
		Attributes:     rm.Attributes,
		UpdatedAt:      rm.UpdatedAt,
	}
	if rm.PriceCents != nil {
		display := pricing.ApplyMarkup(*rm.PriceCents, s.MarkupPercent)
		v.DisplayPriceCents = &display
		v.Available = true
	}
	return v
}
