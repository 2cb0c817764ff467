package mongostore

import (
	"context"
	"errors"
	"time"

	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pricingSettingsID = "pricing"

type pricingDoc struct {
	ID            string    `bson:"_id"`
	MarkupPercent float64   `bson:"markupPercent"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

type SettingsStore struct {
	coll *mongo.Collection
}

func NewSettingsStore(db *mongo.Database) *SettingsStore {
	return &SettingsStore{coll: db.Collection(settingsCollection)}
}

func (s *SettingsStore) GetPricing(ctx context.Context) (pricing.Settings, error) {
	var doc pricingDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": pricingSettingsID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pricing.DefaultSettings(), nil
		}
		return pricing.Settings{}, infra.WrapRepoErr("failed to load pricing settings", err)
	}
	return pricing.Settings{MarkupPercent: doc.MarkupPercent}, nil
}

func (s *SettingsStore) SavePricing(ctx context.Context, settings pricing.Settings, now time.Time) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": pricingSettingsID},
		bson.M{"$set": bson.M{"markupPercent": settings.MarkupPercent, "updatedAt": now}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save pricing settings", err)
	}
	return nil
}
