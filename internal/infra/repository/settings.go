package repository

import (
	"context"
	"encoding/json"
	"time"

	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/infra/db"
	"storefront-sync/internal/pkg/pgconv"
)

const pricingSettingsKey = "pricing"

type pricingDoc struct {
	MarkupPercent float64 `json:"markupPercent" bson:"markupPercent"`
}

type SettingsRepository struct {
	db db.DBTX
}

func NewSettingsRepository(dbtx db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: dbtx}
}

func (r *SettingsRepository) GetPricing(ctx context.Context) (pricing.Settings, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, pricingSettingsKey).Scan(&raw)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return pricing.DefaultSettings(), nil
		}
		return pricing.Settings{}, infra.WrapRepoErr("failed to load pricing settings", err)
	}

	var doc pricingDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return pricing.Settings{}, infra.WrapRepoErr("failed to decode pricing settings", err)
	}
	return pricing.Settings{MarkupPercent: doc.MarkupPercent}, nil
}

func (r *SettingsRepository) SavePricing(ctx context.Context, s pricing.Settings, now time.Time) error {
	raw, err := json.Marshal(pricingDoc{MarkupPercent: s.MarkupPercent})
	if err != nil {
		return infra.WrapRepoErr("failed to encode pricing settings", err)
	}
	_, err = r.db.Exec(ctx, `
INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		pricingSettingsKey, raw, now)
	if err != nil {
		return infra.WrapRepoErr("failed to save pricing settings", err)
	}
	return nil
}
