package bootstrap

import (
	"context"
	"log/slog"

	"storefront-sync/internal/infra/db"
	"storefront-sync/internal/infra/mongostore"
	"storefront-sync/internal/infra/readstore"
	"storefront-sync/internal/infra/repository"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/usecase/queries"
	"storefront-sync/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewStores,
		NewRedis,
	),
)

// Stores exposes one backend's repositories under the usecase ports.
type Stores struct {
	fx.Out

	Catalog      shared.CatalogRepository
	CatalogRead  queries.CatalogReadStore
	Orders       shared.OrderRepository
	OrderRead    queries.OrderReadStore
	Settings     shared.SettingsRepository
	SettingsRead queries.SettingsReadStore
}

// NewStores connects the backend selected by STORE_DRIVER.
func NewStores(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Stores, error) {
	ctx := context.Background()

	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		database, cleanup, err := db.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return Stores{}, err
		}
		if err := mongostore.EnsureIndexes(ctx, database); err != nil {
			cleanup()
			return Stores{}, err
		}
		appendCleanup(lc, cleanup)
		logger.Info("document store connected", "database", cfg.Mongo.Database)

		return MongoStores(database), nil

	default:
		pool, cleanup, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return Stores{}, err
		}
		appendCleanup(lc, cleanup)
		logger.Info("relational store connected", "host", cfg.DB.Host, "database", cfg.DB.DBName)

		return PostgresStores(pool), nil
	}
}

// PostgresStores binds the relational repositories to the usecase ports.
func PostgresStores(pool *pgxpool.Pool) Stores {
	settingsRepo := repository.NewSettingsRepository(pool)
	return Stores{
		Catalog:      repository.NewCatalogRepository(pool),
		CatalogRead:  readstore.NewCatalogReadStore(pool),
		Orders:       repository.NewOrderRepository(pool, pool),
		OrderRead:    readstore.NewOrderReadStore(pool),
		Settings:     settingsRepo,
		SettingsRead: settingsRepo,
	}
}

func MongoStores(database *mongo.Database) Stores {
	catalogStore := mongostore.NewCatalogStore(database)
	orderStore := mongostore.NewOrderStore(database)
	settingsStore := mongostore.NewSettingsStore(database)
	return Stores{
		Catalog:      catalogStore,
		CatalogRead:  catalogStore,
		Orders:       orderStore,
		OrderRead:    orderStore,
		Settings:     settingsStore,
		SettingsRead: settingsStore,
	}
}

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := db.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	appendCleanup(lc, cleanup)
	return client, nil
}

func appendCleanup(lc fx.Lifecycle, cleanup func()) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})
}
