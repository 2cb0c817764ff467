package supplier

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// MaxPriceBatch is the most item numbers the price endpoint accepts per call.
const MaxPriceBatch = 10

type Credential struct {
	Token     string
	ExpiresAt time.Time
}

type tokenRequest struct {
	APIKey string `json:"apiKey"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type Filters struct {
	Search       string   `json:"search,omitempty"`
	ProductTypes []string `json:"productTypes,omitempty"`
}

type productsRequest struct {
	Page    int     `json:"page"`
	Filters Filters `json:"filters"`
}

type ProductPage struct {
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Products   []Product `json:"products"`
}

// Product keeps the full supplier payload in Raw so unknown attributes survive into the catalog.
type Product struct {
	ItemNo      string   `json:"itemNo"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	SKU         string   `json:"sku"`

	Raw json.RawMessage `json:"-"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Product(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type pricesRequest struct {
	ItemNos []string `json:"itemNos"`
}

type PriceList struct {
	Items []PriceItem `json:"items"`
}

type PriceItem struct {
	No            string         `json:"no"`
	ServiceLevels []ServiceLevel `json:"serviceLevels"`
}

type ServiceLevel struct {
	Price json.RawMessage `json:"price"`
}

// FirstPrice returns the first service-level quote. Missing, null or non-numeric quotes report false.
func (p PriceItem) FirstPrice() (float64, bool) {
	if len(p.ServiceLevels) == 0 {
		return 0, false
	}
	raw := bytes.TrimSpace(p.ServiceLevels[0].Price)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		f, err := n.Float64()
		return f, err == nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}
