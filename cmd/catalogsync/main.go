package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-sync/cmd/bootstrap"
	"storefront-sync/cmd/bootstrap/components"
	"storefront-sync/internal/domain/user"
	"storefront-sync/internal/handler/middleware"
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/pkg/jwt"
	"storefront-sync/internal/syncdriver"
	"storefront-sync/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

type driverEnv struct {
	BaseURL      string        `envconfig:"SYNC_API_BASE_URL" default:"http://localhost:8080"`
	PageInterval time.Duration `envconfig:"SYNC_PAGE_INTERVAL" default:"1s"`
	MaxRetries   uint64        `envconfig:"SYNC_MAX_RETRIES" default:"3"`
	Timeout      time.Duration `envconfig:"SYNC_REQUEST_TIMEOUT" default:"2m"`
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	Log          config.LogConfig
}

func main() {
	direct := flag.Bool("direct", false, "run the sync engine in-process instead of calling the API")
	startPage := flag.Int("start", 1, "first supplier page")
	maxPages := flag.Int("pages", 0, "maximum pages to sync, 0 for all")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *direct {
		os.Exit(runDirect(ctx))
	}
	os.Exit(runHTTP(ctx, *startPage, *maxPages))
}

func runHTTP(ctx context.Context, startPage, maxPages int) int {
	_ = godotenv.Load()
	var env driverEnv
	if err := envconfig.Process("", &env); err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		return 1
	}
	logger := middleware.NewLogger(env.Log).GetSlogLogger()

	// the driver acts as a service account with the admin role
	token, err := jwt.NewService(env.JWTSecret, time.Hour).GenerateToken(uuid.New(), user.RoleAdmin)
	if err != nil {
		logger.Error("トークンの発行に失敗しました", "error", err)
		return 1
	}

	driver := syncdriver.New(syncdriver.Config{
		BaseURL:      env.BaseURL,
		Token:        token,
		StartPage:    startPage,
		MaxPages:     maxPages,
		PageInterval: env.PageInterval,
		MaxRetries:   env.MaxRetries,
		Timeout:      env.Timeout,
	}, logger)

	sum, err := driver.Run(ctx)
	logger.Info("catalog sync finished",
		"pages", sum.Pages,
		"last_page", sum.LastPage,
		"total_pages", sum.TotalPages,
		"products", sum.Products,
		"prices_updated", sum.PricesUpdated,
		"skipped_chunks", sum.SkippedChunks,
	)
	if err != nil {
		logger.Error("catalog sync stopped", "error", err.Error())
		return 1
	}
	return 0
}

func runDirect(ctx context.Context) int {
	code := 0
	app := fx.New(
		fx.NopLogger,
		bootstrap.ConfigModule,
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		components.PersistenceModule,
		fx.Provide(
			clock.NewRealClock,
			commands.NewCatalogSync,
		),
		fx.Invoke(func(engine commands.CatalogSync, logger *slog.Logger) {
			sum, err := engine.SyncAll(ctx)
			if sum != nil {
				logger.Info("catalog sync finished",
					"pages", sum.Pages,
					"products", sum.Products,
					"prices_updated", sum.PricesUpdated,
					"skipped_chunks", sum.SkippedChunks,
				)
			}
			if err != nil {
				logger.Error("catalog sync stopped", "error", err.Error())
				code = 1
			}
		}),
	)

	if err := app.Start(ctx); err != nil {
		slog.Error("アプリケーションの起動に失敗しました", "error", err)
		return 1
	}
	if err := app.Stop(context.Background()); err != nil {
		slog.Error("アプリケーションの停止に失敗しました", "error", err)
	}
	return code
}
