package commands

//go:generate go run go.uber.org/mock/mockgen -source=catalog_sync.go -destination=../../testutil/mock/commands/catalog_sync.go -package=commandsmock

import (
	"context"
	"log/slog"

	"storefront-sync/internal/domain/catalog"
	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra/supplier"
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/shared"
)

var ErrInvalidPage = errs.New("page must be at least 1")

type SyncPageResult struct {
	Page           int
	TotalPages     int
	ProductsInPage int
	PricesUpdated  int
	SkippedChunks  int
}

type SyncSummary struct {
	Pages         int
	Products      int
	PricesUpdated int
	SkippedChunks int
}

type CatalogSync interface {
	SyncPage(ctx context.Context, page int) (*SyncPageResult, error)
	SyncAll(ctx context.Context) (*SyncSummary, error)
}

type catalogSyncImpl struct {
	supplier shared.SupplierAPI
	catalog  shared.CatalogRepository
	filters  supplier.Filters
	clock    clock.Clock
	logger   *slog.Logger
}

func NewCatalogSync(api shared.SupplierAPI, repo shared.CatalogRepository, filters supplier.Filters, clk clock.Clock, logger *slog.Logger) CatalogSync {
	return &catalogSyncImpl{supplier: api, catalog: repo, filters: filters, clock: clk, logger: logger}
}

// SyncPage upserts one supplier page and then enriches prices chunk by chunk.
// Listing or upsert failures abort the page; a failed price chunk is skipped and counted.
func (uc *catalogSyncImpl) SyncPage(ctx context.Context, page int) (*SyncPageResult, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	listing, err := uc.supplier.ListProducts(ctx, page, uc.filters)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to list supplier products page %d", page)
	}

	result := &SyncPageResult{
		Page:           page,
		TotalPages:     listing.TotalPages,
		ProductsInPage: len(listing.Products),
	}

	ids := make([]string, 0, len(listing.Products))
	for _, p := range listing.Products {
		if err := uc.catalog.Upsert(ctx, upsertFromProduct(p), uc.clock.Now()); err != nil {
			return nil, errs.Wrapf(err, "failed to upsert catalog item %s", p.ItemNo)
		}
		ids = append(ids, p.ItemNo)
	}

	for _, chunk := range chunkIDs(ids, supplier.MaxPriceBatch) {
		updated, err := uc.enrichPrices(ctx, chunk)
		// writes made before a mid-chunk failure still count
		result.PricesUpdated += updated
		if err != nil {
			result.SkippedChunks++
			uc.logger.Warn("price chunk skipped", "page", page, "ids", chunk, "error", err.Error())
			continue
		}
	}

	uc.logger.Info("catalog page synced",
		"page", page,
		"total_pages", result.TotalPages,
		"products", result.ProductsInPage,
		"prices_updated", result.PricesUpdated,
		"skipped_chunks", result.SkippedChunks)
	return result, nil
}

// SyncAll walks pages from 1 until the supplier reports no more.
func (uc *catalogSyncImpl) SyncAll(ctx context.Context) (*SyncSummary, error) {
	summary := &SyncSummary{}
	for page := 1; ; page++ {
		res, err := uc.SyncPage(ctx, page)
		if err != nil {
			return summary, err
		}
		summary.Pages++
		summary.Products += res.ProductsInPage
		summary.PricesUpdated += res.PricesUpdated
		summary.SkippedChunks += res.SkippedChunks
		if page >= res.TotalPages {
			return summary, nil
		}
	}
}

func (uc *catalogSyncImpl) enrichPrices(ctx context.Context, ids []string) (int, error) {
	prices, err := uc.supplier.GetPrices(ctx, ids)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, item := range prices.Items {
		price, ok := item.FirstPrice()
		if !ok {
			continue
		}
		cents, ok := pricing.CentsFromPrice(price)
		if !ok {
			continue
		}
		found, err := uc.catalog.UpdatePrice(ctx, item.No, cents, uc.clock.Now())
		if err != nil {
			return updated, err
		}
		if found {
			updated++
		}
	}
	return updated, nil
}

func upsertFromProduct(p supplier.Product) catalog.Upsert {
	return catalog.Upsert{
		ExternalID:  p.ItemNo,
		Title:       p.Title,
		Description: p.Description,
		Images:      p.Images,
		Brand:       p.Brand,
		Category:    p.Category,
		SKU:         p.SKU,
		Attributes:  p.Raw,
	}
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
