package request

type SyncPageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}

type CatalogListQuery struct {
	Page       int  `form:"page"`
	PerPage    int  `form:"perPage"`
	PricedOnly bool `form:"pricedOnly"`
}

type ShippingQuoteQuery struct {
	State    string `form:"state" binding:"required"`
	Subtotal int64  `form:"subtotal" binding:"min=0"`
}

type PricingSettings struct {
	MarkupPercent *float64 `json:"markupPercent" binding:"required"`
}

type UpdatePricingSettingsRequest struct {
	Pricing PricingSettings `json:"pricing" binding:"required"`
}
