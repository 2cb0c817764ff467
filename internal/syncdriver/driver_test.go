//go:build unit

package syncdriver_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"storefront-sync/internal/syncdriver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeSyncServer answers like the admin endpoint; failFirst makes each page fail once with 500.
func fakeSyncServer(t *testing.T, totalPages int, failFirst bool) (*httptest.Server, *[]int, *atomic.Int32) {
	t.Helper()
	var pages []int
	var calls atomic.Int32
	failed := map[int]bool{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Access token required"}}`))
			return
		}
		var req struct {
			Page int `json:"page"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if failFirst && !failed[req.Page] {
			failed[req.Page] = true
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"ok":false,"error":"supplier timeout"}`))
			return
		}
		pages = append(pages, req.Page)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true, "page": req.Page, "totalPages": totalPages,
			"productsInPage": 20, "pricesUpdated": 18, "skippedChunks": 0,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &pages, &calls
}

func TestDriver_Run(t *testing.T) {
	t.Run("正常系: totalPagesまで順に同期して停止", func(t *testing.T) {
		srv, pages, _ := fakeSyncServer(t, 3, false)

		sum, err := syncdriver.New(syncdriver.Config{BaseURL: srv.URL, Token: "tok"}, discardLogger).Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, *pages)
		assert.Equal(t, 3, sum.Pages)
		assert.Equal(t, 60, sum.Products)
		assert.Equal(t, 54, sum.PricesUpdated)
		assert.Equal(t, 3, sum.TotalPages)
	})

	t.Run("正常系: 5xxはページ単位で再試行", func(t *testing.T) {
		srv, pages, calls := fakeSyncServer(t, 2, true)

		sum, err := syncdriver.New(syncdriver.Config{BaseURL: srv.URL, Token: "tok", MaxRetries: 2}, discardLogger).Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, *pages)
		assert.Equal(t, int32(4), calls.Load())
		assert.Equal(t, 2, sum.Pages)
	})

	t.Run("正常系: 開始ページと上限ページ数", func(t *testing.T) {
		srv, pages, _ := fakeSyncServer(t, 10, false)

		sum, err := syncdriver.New(syncdriver.Config{BaseURL: srv.URL, Token: "tok", StartPage: 4, MaxPages: 2}, discardLogger).Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []int{4, 5}, *pages)
		assert.Equal(t, 5, sum.LastPage)
	})

	t.Run("異常系: 認証エラーは再試行しない", func(t *testing.T) {
		srv, _, calls := fakeSyncServer(t, 3, false)

		sum, err := syncdriver.New(syncdriver.Config{BaseURL: srv.URL, Token: "wrong", MaxRetries: 5}, discardLogger).Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, 0, sum.Pages)
	})
}
