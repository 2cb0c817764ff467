package mongostore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront-sync/internal/domain/catalog"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/usecase/readmodel"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type catalogDoc struct {
	ExternalID     string     `bson:"_id"`
	Title          string     `bson:"title"`
	Description    string     `bson:"description"`
	Images         []string   `bson:"images"`
	Brand          string     `bson:"brand"`
	Category       string     `bson:"category"`
	SKU            string     `bson:"sku"`
	PriceCents     *int64     `bson:"priceCents,omitempty"`
	PriceUpdatedAt *time.Time `bson:"priceUpdatedAt,omitempty"`
	Attributes     string     `bson:"attributes,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt"`
}

// CatalogStore serves both the write and read side of the catalog.
type CatalogStore struct {
	coll *mongo.Collection
}

func NewCatalogStore(db *mongo.Database) *CatalogStore {
	return &CatalogStore{coll: db.Collection(catalogCollection)}
}

func (s *CatalogStore) Upsert(ctx context.Context, item catalog.Upsert, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	images := item.Images
	if images == nil {
		images = []string{}
	}

	update := bson.M{
		"$set": bson.M{
			"title":       item.Title,
			"description": item.Description,
			"images":      images,
			"brand":       item.Brand,
			"category":    item.Category,
			"sku":         item.SKU,
			"attributes":  string(item.Attributes),
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": item.ExternalID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return infra.WrapRepoErr("failed to upsert catalog item", err)
	}
	return nil
}

func (s *CatalogStore) UpdatePrice(ctx context.Context, externalID string, priceCents int64, at time.Time) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": externalID}, bson.M{
		"$set": bson.M{"priceCents": priceCents, "priceUpdatedAt": at, "updatedAt": at},
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to update catalog price", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *CatalogStore) FindByExternalID(ctx context.Context, externalID string) (*catalog.Item, error) {
	doc, err := s.findDoc(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return &catalog.Item{
		ExternalID:     doc.ExternalID,
		Title:          doc.Title,
		Description:    doc.Description,
		Images:         doc.Images,
		Brand:          doc.Brand,
		Category:       doc.Category,
		SKU:            doc.SKU,
		PriceCents:     doc.PriceCents,
		PriceUpdatedAt: doc.PriceUpdatedAt,
		Attributes:     rawAttributes(doc.Attributes),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

func (s *CatalogStore) GetView(ctx context.Context, externalID string) (*readmodel.CatalogItemRM, error) {
	doc, err := s.findDoc(ctx, externalID)
	if err != nil {
		return nil, err
	}
	rm := doc.toRM()
	return &rm, nil
}

func (s *CatalogStore) List(ctx context.Context, limit, offset int, pricedOnly bool) ([]readmodel.CatalogItemRM, int64, error) {
	filter := bson.M{}
	if pricedOnly {
		filter["priceCents"] = bson.M{"$exists": true}
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count catalog items", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list catalog items", err)
	}
	defer cur.Close(ctx)

	var docs []catalogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to decode catalog items", err)
	}
	items := make([]readmodel.CatalogItemRM, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toRM())
	}
	return items, total, nil
}

func (s *CatalogStore) findDoc(ctx context.Context, externalID string) (*catalogDoc, error) {
	var doc catalogDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": externalID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, infra.WrapRepoErr("catalog item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find catalog item", err)
	}
	return &doc, nil
}

func (d catalogDoc) toRM() readmodel.CatalogItemRM {
	return readmodel.CatalogItemRM{
		ExternalID:     d.ExternalID,
		Title:          d.Title,
		Description:    d.Description,
		Images:         d.Images,
		Brand:          d.Brand,
		Category:       d.Category,
		SKU:            d.SKU,
		PriceCents:     d.PriceCents,
		PriceUpdatedAt: d.PriceUpdatedAt,
		Attributes:     rawAttributes(d.Attributes),
		UpdatedAt:      d.UpdatedAt,
	}
}

func rawAttributes(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}
