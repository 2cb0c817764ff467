//go:build unit

package supplier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"storefront-sync/internal/infra/supplier"
	"storefront-sync/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenSource struct {
	mock.Mock
}

func (m *mockTokenSource) GetToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTokenSource) Invalidate() {
	m.Called()
}

func newClient(t *testing.T, handler http.HandlerFunc, tokens supplier.TokenSource) *supplier.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.NewTestConfig().Supplier
	cfg.BaseURL = srv.URL
	return supplier.NewClient(cfg, tokens, discardLogger)
}

func TestClient_ListProducts(t *testing.T) {
	t.Run("認証とキャッシュ無効化ヘッダーを付与", func(t *testing.T) {
		tokens := new(mockTokenSource)
		tokens.On("GetToken", mock.Anything).Return("tok-1", nil)

		var gotBody map[string]any
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, "no-cache, no-store", r.Header.Get("Cache-Control"))
			assert.Equal(t, "no-cache", r.Header.Get("Pragma"))
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"page":2,"totalPages":5,"products":[{"itemNo":"A1","title":"Lamp","images":["a.jpg"],"color":"red"}]}`))
		}, tokens)

		page, err := client.ListProducts(context.Background(), 2, supplier.Filters{Search: "lamp", ProductTypes: []string{"home"}})
		require.NoError(t, err)

		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.TotalPages)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "A1", page.Products[0].ItemNo)
		assert.JSONEq(t, `{"itemNo":"A1","title":"Lamp","images":["a.jpg"],"color":"red"}`, string(page.Products[0].Raw))

		assert.Equal(t, float64(2), gotBody["page"])
		filters := gotBody["filters"].(map[string]any)
		assert.Equal(t, "lamp", filters["search"])
		tokens.AssertExpectations(t)
	})

	t.Run("非2xxはRequestError", func(t *testing.T) {
		tokens := new(mockTokenSource)
		tokens.On("GetToken", mock.Anything).Return("tok-1", nil)

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("maintenance"))
		}, tokens)

		_, err := client.ListProducts(context.Background(), 1, supplier.Filters{})
		var reqErr *supplier.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusServiceUnavailable, reqErr.Status)
		assert.Equal(t, "maintenance", reqErr.Body)
	})

	t.Run("401ならトークンを破棄して1回だけ再試行", func(t *testing.T) {
		tokens := new(mockTokenSource)
		tokens.On("GetToken", mock.Anything).Return("stale", nil).Once()
		tokens.On("Invalidate").Return().Once()
		tokens.On("GetToken", mock.Anything).Return("fresh", nil).Once()

		var calls atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"page":1,"totalPages":1,"products":[]}`))
		}, tokens)

		_, err := client.ListProducts(context.Background(), 1, supplier.Filters{})
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		tokens.AssertExpectations(t)
	})

	t.Run("トークン取得失敗はそのまま返す", func(t *testing.T) {
		tokens := new(mockTokenSource)
		tokens.On("GetToken", mock.Anything).Return("", supplier.ErrAuthConfig)

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("supplier must not be called")
		}, tokens)

		_, err := client.ListProducts(context.Background(), 1, supplier.Filters{})
		assert.ErrorIs(t, err, supplier.ErrAuthConfig)
	})
}

func TestClient_GetPrices(t *testing.T) {
	t.Run("10件を超えるとエラーで通信しない", func(t *testing.T) {
		tokens := new(mockTokenSource)
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("supplier must not be called")
		}, tokens)

		ids := make([]string, supplier.MaxPriceBatch+1)
		for i := range ids {
			ids[i] = "id"
		}
		_, err := client.GetPrices(context.Background(), ids)
		assert.ErrorIs(t, err, supplier.ErrPriceBatchTooLarge)
		tokens.AssertNotCalled(t, "GetToken", mock.Anything)
	})

	t.Run("最初のサービスレベル価格を使う", func(t *testing.T) {
		tokens := new(mockTokenSource)
		tokens.On("GetToken", mock.Anything).Return("tok", nil)

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				ItemNos []string `json:"itemNos"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, []string{"A", "B", "C", "D", "E"}, body.ItemNos)
			_, _ = w.Write([]byte(`{"items":[
				{"no":"A","serviceLevels":[{"price":12.5},{"price":9.99}]},
				{"no":"B","serviceLevels":[]},
				{"no":"C","serviceLevels":[{"price":"N/A"}]},
				{"no":"D","serviceLevels":[{"price":"7.25"}]},
				{"no":"E","serviceLevels":[{"price":null}]}
			]}`))
		}, tokens)

		list, err := client.GetPrices(context.Background(), []string{"A", "B", "C", "D", "E"})
		require.NoError(t, err)
		require.Len(t, list.Items, 5)

		expects := []struct {
			price float64
			ok    bool
		}{{12.5, true}, {0, false}, {0, false}, {7.25, true}, {0, false}}
		for i, e := range expects {
			price, ok := list.Items[i].FirstPrice()
			assert.Equal(t, e.ok, ok, list.Items[i].No)
			assert.Equal(t, e.price, price, list.Items[i].No)
		}
	})
}
