package commands

//go:generate go run go.uber.org/mock/mockgen -source=settings.go -destination=../../testutil/mock/commands/settings.go -package=commandsmock

import (
	"context"
	"math"

	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/shared"
)

type SettingsCommands interface {
	UpdatePricing(ctx context.Context, markupPercent float64) (pricing.Settings, error)
}

type settingsUseCaseImpl struct {
	settings shared.SettingsRepository
	clock    clock.Clock
}

func NewSettingsUseCase(settings shared.SettingsRepository, clk clock.Clock) SettingsCommands {
	return &settingsUseCaseImpl{settings: settings, clock: clk}
}

func (uc *settingsUseCaseImpl) UpdatePricing(ctx context.Context, markupPercent float64) (pricing.Settings, error) {
	if markupPercent < 0 || math.IsNaN(markupPercent) || math.IsInf(markupPercent, 0) {
		return pricing.Settings{}, errs.ErrInvalidMarkup
	}
	s := pricing.Settings{MarkupPercent: markupPercent}
	if err := uc.settings.SavePricing(ctx, s, uc.clock.Now()); err != nil {
		return pricing.Settings{}, errs.Wrap(err, "failed to save pricing settings")
	}
	return s, nil
}
