package components

import (
	"storefront-sync/internal/handler"
	"storefront-sync/internal/handler/api"
	"storefront-sync/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSyncHandler,
		api.NewCatalogHandler,
		api.NewSettingsHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	sync *api.SyncHandler,
	catalog *api.CatalogHandler,
	settings *api.SettingsHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
) handler.Handlers {
	return handler.Handlers{
		Sync:     sync,
		Catalog:  catalog,
		Settings: settings,
		Checkout: checkout,
		Order:    order,
	}
}
