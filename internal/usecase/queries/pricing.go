package queries

//go:generate go run go.uber.org/mock/mockgen -source=pricing.go -destination=../../testutil/mock/queries/pricing.go -package=queriesmock -exclude_interfaces=SettingsReadStore

import (
	"context"

	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/pkg/errs"
)

type SettingsReadStore interface {
	GetPricing(ctx context.Context) (pricing.Settings, error)
}

type ShippingQuote struct {
	State                      string
	Zone                       int
	SubtotalCents              int64
	ShippingCents              int64
	FreeShippingThresholdCents int64
}

type PricingQueries interface {
	Settings(ctx context.Context) (pricing.Settings, error)
	// DisplayPrice applies the stored markup to a base price. Settings are read on every call.
	DisplayPrice(ctx context.Context, baseCents int64) (int64, error)
	ShippingQuote(state string, subtotalCents int64) ShippingQuote
}

type pricingQueriesImpl struct {
	settings SettingsReadStore
}

func NewPricingQueries(settings SettingsReadStore) PricingQueries {
	return &pricingQueriesImpl{settings: settings}
}

func (q *pricingQueriesImpl) Settings(ctx context.Context) (pricing.Settings, error) {
	s, err := q.settings.GetPricing(ctx)
	if err != nil {
		return pricing.Settings{}, errs.Wrap(err, "failed to load pricing settings")
	}
	return s, nil
}

func (q *pricingQueriesImpl) DisplayPrice(ctx context.Context, baseCents int64) (int64, error) {
	s, err := q.Settings(ctx)
	if err != nil {
		return 0, err
	}
	return pricing.ApplyMarkup(baseCents, s.MarkupPercent), nil
}

func (q *pricingQueriesImpl) ShippingQuote(state string, subtotalCents int64) ShippingQuote {
	return ShippingQuote{
		State:                      state,
		Zone:                       int(pricing.ZoneFor(state)),
		SubtotalCents:              subtotalCents,
		ShippingCents:              pricing.ShippingCost(state, subtotalCents),
		FreeShippingThresholdCents: pricing.FreeShippingThresholdCents,
	}
}
