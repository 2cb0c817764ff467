package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	catalogCollection  = "catalog_items"
	ordersCollection   = "orders"
	settingsCollection = "settings"
)

// EnsureIndexes creates the indexes the stores rely on. The unique paymentRef index is what
// makes order materialization exactly-once across processes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ordersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "paymentRef", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("orders_payment_ref_key"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("orders_email"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	_, err = db.Collection(catalogCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetName("catalog_items_category"),
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog indexes: %w", err)
	}
	return nil
}
