package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrEmptyExternalID = errors.New("external id is required")

// Item is a supplier product mirrored into the local catalog, keyed by ExternalID.
// PriceCents is nil until a price has been fetched; zero is a real price.
type Item struct {
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
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Upsert carries the identity fields written by a sync. Price fields are never part of it.
type Upsert struct {
	ExternalID  string
	Title       string
	Description string
	Images      []string
	Brand       string
	Category    string
	SKU         string
	Attributes  json.RawMessage
}

func (u Upsert) Validate() error {
	if strings.TrimSpace(u.ExternalID) == "" {
		return ErrEmptyExternalID
	}
	return nil
}

func (i Item) HasPrice() bool {
	return i.PriceCents != nil
}

// PrimaryImage returns the first image or "".
func (i Item) PrimaryImage() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}
