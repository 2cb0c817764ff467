package response

import (
	"encoding/json"

	"storefront-sync/internal/usecase/commands"
	"storefront-sync/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type SyncPageResponse struct {
	OK             bool `json:"ok"`
	Page           int  `json:"page"`
	TotalPages     int  `json:"totalPages"`
	ProductsInPage int  `json:"productsInPage"`
	PricesUpdated  int  `json:"pricesUpdated"`
	SkippedChunks  int  `json:"skippedChunks"`
}

func FromSyncPageResult(r *commands.SyncPageResult) *SyncPageResponse {
	res := &SyncPageResponse{OK: true}
	_ = copier.Copy(res, r)
	return res
}

// SyncFailureResponse is the error shape the sync driver expects.
type SyncFailureResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type CatalogItemResponse struct {
	ExternalID        string          `json:"externalId"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Images            []string        `json:"images"`
	Brand             string          `json:"brand"`
	Category          string          `json:"category"`
	SKU               string          `json:"sku"`
	DisplayPriceCents *int64          `json:"priceCents"`
	Available         bool            `json:"available"`
	PriceUpdatedAt    *int64          `json:"priceUpdatedAt,omitempty"`
	Attributes        json.RawMessage `json:"attributes,omitempty"`
	UpdatedAt         int64           `json:"updatedAt"`
}

func FromCatalogItemView(v *queries.CatalogItemView) *CatalogItemResponse {
	res := &CatalogItemResponse{
		ExternalID:        v.ExternalID,
		Title:             v.Title,
		Description:       v.Description,
		Images:            v.Images,
		Brand:             v.Brand,
		Category:          v.Category,
		SKU:               v.SKU,
		DisplayPriceCents: v.DisplayPriceCents,
		Available:         v.Available,
		Attributes:        v.Attributes,
		UpdatedAt:         v.UpdatedAt.Unix(),
	}
	if res.Images == nil {
		res.Images = []string{}
	}
	if v.PriceUpdatedAt != nil {
		ts := v.PriceUpdatedAt.Unix()
		res.PriceUpdatedAt = &ts
	}
	return res
}

type CatalogPageResponse struct {
	Items   []*CatalogItemResponse `json:"items"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"perPage"`
	Total   int64                  `json:"total"`
}

func FromCatalogPage(p *queries.CatalogPage) *CatalogPageResponse {
	items := make([]*CatalogItemResponse, len(p.Items))
	for i := range p.Items {
		items[i] = FromCatalogItemView(&p.Items[i])
	}
	return &CatalogPageResponse{Items: items, Page: p.Page, PerPage: p.PerPage, Total: p.Total}
}

type ShippingQuoteResponse struct {
	State                      string `json:"state"`
	Zone                       int    `json:"zone"`
	SubtotalCents              int64  `json:"subtotalCents"`
	ShippingCents              int64  `json:"shippingCents"`
	FreeShippingThresholdCents int64  `json:"freeShippingThresholdCents"`
}

func FromShippingQuote(q queries.ShippingQuote) *ShippingQuoteResponse {
	res := &ShippingQuoteResponse{}
	_ = copier.Copy(res, &q)
	return res
}

type PricingSettingsResponse struct {
	Pricing struct {
		MarkupPercent float64 `json:"markupPercent"`
	} `json:"pricing"`
}

func NewPricingSettingsResponse(markupPercent float64) *PricingSettingsResponse {
	res := &PricingSettingsResponse{}
	res.Pricing.MarkupPercent = markupPercent
	return res
}
