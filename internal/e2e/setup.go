//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"storefront-sync/cmd/bootstrap"
	"storefront-sync/cmd/bootstrap/components"
	"storefront-sync/internal/domain/user"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/pkg/jwt"
	"storefront-sync/internal/testutil/containers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// FakeProduct is one supplier catalog entry. An empty Price yields no quote.
type FakeProduct struct {
	ItemNo string
	Title  string
	Price  string
}

// FakeSupplier serves the supplier HTTP API from an in-memory catalog.
type FakeSupplier struct {
	mu       sync.Mutex
	pages    [][]FakeProduct
	Server   *httptest.Server
	requests map[string]int
}

func NewFakeSupplier(t *testing.T) *FakeSupplier {
	t.Helper()
	f := &FakeSupplier{requests: map[string]int{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// SetPages replaces the catalog. Page numbers start at 1.
func (f *FakeSupplier) SetPages(pages ...[]FakeProduct) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = pages
}

func (f *FakeSupplier) Requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *FakeSupplier) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[r.URL.Path]++

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/token", "/token-renew":
		_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": "fake-token", "expiresIn": 3600})
	case "/products":
		var req struct {
			Page int `json:"page"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Page < 1 || req.Page > len(f.pages) {
			http.Error(w, `{"message":"page out of range"}`, http.StatusNotFound)
			return
		}
		products := make([]map[string]any, 0, len(f.pages[req.Page-1]))
		for _, p := range f.pages[req.Page-1] {
			products = append(products, map[string]any{"itemNo": p.ItemNo, "title": p.Title, "images": []string{p.ItemNo + ".jpg"}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"page": req.Page, "totalPages": len(f.pages), "products": products})
	case "/prices":
		var req struct {
			ItemNos []string `json:"itemNos"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		items := []map[string]any{}
		for _, no := range req.ItemNos {
			if p, ok := f.lookup(no); ok && p.Price != "" {
				items = append(items, map[string]any{
					"no":            no,
					"serviceLevels": []map[string]any{{"price": json.RawMessage(p.Price)}},
				})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeSupplier) lookup(itemNo string) (FakeProduct, bool) {
	for _, page := range f.pages {
		for _, p := range page {
			if p.ItemNo == itemNo {
				return p, true
			}
		}
	}
	return FakeProduct{}, false
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション構築関数
// ------------------------------------------------------------
func buildE2EApp(t *testing.T, pool *pgxpool.Pool, rdb *redis.Client, cfg config.Config) *gin.Engine {
	t.Helper()
	var router *gin.Engine

	testStoreModule := fx.Module("teststore",
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() *redis.Client { return rdb },
			bootstrap.PostgresStores,
		),
	)

	app := fx.New(
		testStoreModule,
		fx.Provide(func() config.Config { return cfg }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		// ログを無効にして起動
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
	return router
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router   *gin.Engine
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Config   config.Config
	Supplier *FakeSupplier
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	s.DB = containers.NewPostgres(t)
	s.Redis = containers.NewRedis(t)
	s.Supplier = NewFakeSupplier(t)

	s.Config = config.NewTestConfig()
	s.Config.Supplier.BaseURL = s.Supplier.Server.URL

	s.Router = buildE2EApp(t, s.DB, s.Redis, s.Config)
	require.NotNil(t, s.Router, "Routerのセットアップに失敗")
}

// SetupSubTest empties every table so subtests start from a blank store.
func (s *SharedSuite) SetupSubTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.DB.Exec(ctx, "TRUNCATE catalog_items, orders, settings")
	require.NoError(s.T(), err, "Failed to reset database state")
	s.Supplier.SetPages()
}

// TokenFor mints an access token the router's auth middleware accepts.
func (s *SharedSuite) TokenFor(role user.Role) string {
	token, err := jwt.NewService(s.Config.JWT.Secret, s.Config.JWT.AccessTokenDuration).GenerateToken(uuid.New(), role)
	require.NoError(s.T(), err, fmt.Sprintf("failed to mint %s token", role))
	return token
}
