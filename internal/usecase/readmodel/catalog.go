package readmodel

import (
	"encoding/json"
	"time"
)

type CatalogItemRM struct {
	ExternalID     string
	Title          string
	Description    string
	Images         []string
	Brand          string
	Category       string
	SKU            string
	PriceCents     *int64
	PriceUpdatedAt *time.Time
	Attributes     json.RawMessage
	UpdatedAt      time.Time
}
