package components

import (
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/usecase"
	"storefront-sync/internal/usecase/commands"
	"storefront-sync/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.CheckoutConfig { return cfg.Checkout },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCatalogSync,
		commands.NewCheckoutUseCase,
		commands.NewOrderMaterializer,
		commands.NewOrderStatusUseCase,
		commands.NewSettingsUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewPricingQueries,
		queries.NewOrderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
