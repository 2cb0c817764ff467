package components

import (
	"log/slog"

	"storefront-sync/internal/infra/cart"
	"storefront-sync/internal/infra/payment"
	"storefront-sync/internal/infra/supplier"
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// PersistenceModule wires the adapters that sit beside the stores: supplier API,
// payment processor and cart cache.
var PersistenceModule = fx.Module("persistence",
	supplierModule,
	paymentModule,
	cartModule,
)

var supplierModule = fx.Module("persistence/supplier",
	fx.Provide(
		fx.Annotate(
			NewTokenManager,
			fx.As(new(supplier.TokenSource)),
		),
		fx.Annotate(
			NewSupplierClient,
			fx.As(new(shared.SupplierAPI)),
		),
		NewSyncFilters,
	),
)

var paymentModule = fx.Module("persistence/payment",
	fx.Provide(
		fx.Annotate(
			NewStripeGateway,
			fx.As(new(shared.PaymentGateway)),
		),
	),
)

var cartModule = fx.Module("persistence/cart",
	fx.Provide(
		fx.Annotate(
			NewRedisCart,
			fx.As(new(shared.CartInvalidator)),
		),
	),
)

func NewTokenManager(cfg config.Config, clk clock.Clock, logger *slog.Logger) *supplier.TokenManager {
	return supplier.NewTokenManager(cfg.Supplier, clk, logger)
}

func NewSupplierClient(cfg config.Config, tokens supplier.TokenSource, logger *slog.Logger) *supplier.Client {
	return supplier.NewClient(cfg.Supplier, tokens, logger)
}

func NewSyncFilters(cfg config.Config) supplier.Filters {
	return supplier.Filters{
		Search:       cfg.Supplier.Search,
		ProductTypes: cfg.Supplier.ProductTypes,
	}
}

func NewStripeGateway(cfg config.Config, logger *slog.Logger) *payment.StripeGateway {
	return payment.NewStripeGateway(cfg.Stripe, logger)
}

func NewRedisCart(client *redis.Client) *cart.RedisCart {
	return cart.NewRedisCart(client)
}
