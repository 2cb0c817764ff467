package response

import (
	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type OrderLineResponse struct {
	CatalogRef string `json:"catalogRef"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image,omitempty"`
	SKU        string `json:"sku,omitempty"`
}

type OrderLookupResponse struct {
	ID                string              `json:"id"`
	Number            string              `json:"orderNumber"`
	Email             string              `json:"email"`
	Items             []OrderLineResponse `json:"items"`
	ShipName          string              `json:"shipName"`
	ShipCity          string              `json:"shipCity"`
	ShipState         string              `json:"shipState"`
	SubtotalCents     int64               `json:"subtotalCents"`
	ShippingCents     int64               `json:"shippingCents"`
	TaxCents          int64               `json:"taxCents"`
	AmountCents       int64               `json:"amountCents"`
	Currency          string              `json:"currency"`
	PaymentStatus     string              `json:"paymentStatus"`
	FulfillmentStatus string              `json:"fulfillmentStatus"`
	TrackingNumber    string              `json:"trackingNumber,omitempty"`
	CreatedAt         int64               `json:"createdAt"`
	UpdatedAt         int64               `json:"updatedAt"`
}

func FromOrderView(v *queries.OrderView) *OrderLookupResponse {
	items := make([]OrderLineResponse, 0, len(v.Items))
	_ = copier.Copy(&items, &v.Items)
	return &OrderLookupResponse{
		ID:                v.ID.String(),
		Number:            v.Number,
		Email:             v.Email,
		Items:             items,
		ShipName:          v.ShipName,
		ShipCity:          v.ShipCity,
		ShipState:         v.ShipState,
		SubtotalCents:     v.SubtotalCents,
		ShippingCents:     v.ShippingCents,
		TaxCents:          v.TaxCents,
		AmountCents:       v.AmountCents,
		Currency:          v.Currency,
		PaymentStatus:     v.PaymentStatus,
		FulfillmentStatus: v.FulfillmentStatus,
		TrackingNumber:    v.TrackingNumber,
		CreatedAt:         v.CreatedAt.Unix(),
		UpdatedAt:         v.UpdatedAt.Unix(),
	}
}

type OrderStatusResponse struct {
	ID                string `json:"id"`
	Number            string `json:"orderNumber"`
	FulfillmentStatus string `json:"fulfillmentStatus"`
	TrackingNumber    string `json:"trackingNumber,omitempty"`
	Notes             string `json:"notes,omitempty"`
	UpdatedAt         int64  `json:"updatedAt"`
}

func FromOrder(o *order.Order) *OrderStatusResponse {
	return &OrderStatusResponse{
		ID:                o.ID().String(),
		Number:            o.Number(),
		FulfillmentStatus: string(o.FulfillmentStatus()),
		TrackingNumber:    o.TrackingNumber(),
		Notes:             o.Notes(),
		UpdatedAt:         o.UpdatedAt().Unix(),
	}
}
