package mongostore

import (
	"context"
	"errors"
	"time"

	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/infra/repository/converter"
	"storefront-sync/internal/usecase/readmodel"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxUpdateAttempts = 3

var errConcurrentUpdate = errors.New("order changed during update")

type orderDoc struct {
	ID                string               `bson:"_id"`
	UserID            string               `bson:"userId,omitempty"`
	Email             string               `bson:"email"`
	Items             []converter.LineDoc  `bson:"items"`
	ShippingAddress   converter.AddressDoc `bson:"shippingAddress"`
	SubtotalCents     int64                `bson:"subtotalCents"`
	ShippingCents     int64                `bson:"shippingCents"`
	TaxCents          int64                `bson:"taxCents"`
	AmountCents       int64                `bson:"amountCents"`
	Currency          string               `bson:"currency"`
	PaymentRef        string               `bson:"paymentRef"`
	PaymentStatus     string               `bson:"paymentStatus"`
	FulfillmentStatus string               `bson:"fulfillmentStatus"`
	TrackingNumber    string               `bson:"trackingNumber"`
	Notes             string               `bson:"notes"`
	CreatedAt         time.Time            `bson:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt"`
}

// OrderStore serves both the write and read side of orders.
type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(ordersCollection)}
}

func (s *OrderStore) Insert(ctx context.Context, o *order.Order) error {
	doc, err := toOrderDoc(o.Snapshot())
	if err != nil {
		return err
	}
	_, err = s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return infra.WrapRepoErr("order already exists for payment reference", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert order", err)
	}
	return nil
}

func (s *OrderStore) FindIDByPaymentRef(ctx context.Context, paymentRef string) (uuid.UUID, error) {
	var doc struct {
		ID string `bson:"_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	if err := s.coll.FindOne(ctx, bson.M{"paymentRef": paymentRef}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return uuid.Nil, infra.WrapRepoErr("order not found for payment reference", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find order by payment reference", err)
	}
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("stored order id is not a uuid", err)
	}
	return id, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	doc, err := s.findDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromOrderDoc(doc)
}

// UpdateFulfillment uses the loaded updatedAt as a version so concurrent admin edits do not overwrite each other.
func (s *OrderStore) UpdateFulfillment(ctx context.Context, id uuid.UUID, mutate func(o *order.Order) error) (*order.Order, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		doc, err := s.findDoc(ctx, id)
		if err != nil {
			return nil, err
		}
		o, err := fromOrderDoc(doc)
		if err != nil {
			return nil, err
		}
		if err := mutate(o); err != nil {
			return nil, err
		}

		res, err := s.coll.UpdateOne(ctx,
			bson.M{"_id": doc.ID, "updatedAt": doc.UpdatedAt},
			bson.M{"$set": bson.M{
				"fulfillmentStatus": string(o.FulfillmentStatus()),
				"trackingNumber":    o.TrackingNumber(),
				"notes":             o.Notes(),
				"updatedAt":         o.UpdatedAt(),
			}},
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to update fulfillment status", err)
		}
		if res.MatchedCount == 1 {
			return o, nil
		}
	}
	return nil, infra.WrapRepoErr("failed to update fulfillment status", errConcurrentUpdate)
}

func (s *OrderStore) ListByEmail(ctx context.Context, email string) ([]readmodel.OrderRM, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by email", err)
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, infra.WrapRepoErr("failed to decode orders", err)
	}

	out := make([]readmodel.OrderRM, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, infra.WrapRepoErr("stored order id is not a uuid", err)
		}
		lines, err := converter.DocsToLineRMs(d.Items)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert order items", err)
		}
		out = append(out, readmodel.OrderRM{
			ID:                id,
			Email:             d.Email,
			Items:             lines,
			ShipName:          d.ShippingAddress.Name,
			ShipCity:          d.ShippingAddress.City,
			ShipState:         d.ShippingAddress.State,
			SubtotalCents:     d.SubtotalCents,
			ShippingCents:     d.ShippingCents,
			TaxCents:          d.TaxCents,
			AmountCents:       d.AmountCents,
			Currency:          d.Currency,
			PaymentStatus:     d.PaymentStatus,
			FulfillmentStatus: d.FulfillmentStatus,
			TrackingNumber:    d.TrackingNumber,
			CreatedAt:         d.CreatedAt,
			UpdatedAt:         d.UpdatedAt,
		})
	}
	return out, nil
}

func (s *OrderStore) findDoc(ctx context.Context, id uuid.UUID) (*orderDoc, error) {
	var doc orderDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return &doc, nil
}

func toOrderDoc(s order.Snapshot) (orderDoc, error) {
	lines, err := converter.LinesToDocs(s.Items)
	if err != nil {
		return orderDoc{}, infra.WrapRepoErr("failed to convert order items", err)
	}
	doc := orderDoc{
		ID:                s.ID.String(),
		Email:             s.Email,
		Items:             lines,
		ShippingAddress:   converter.AddressToDoc(s.ShippingAddress),
		SubtotalCents:     s.SubtotalCents,
		ShippingCents:     s.ShippingCents,
		TaxCents:          s.TaxCents,
		AmountCents:       s.AmountCents,
		Currency:          s.Currency,
		PaymentRef:        s.PaymentRef,
		PaymentStatus:     string(s.PaymentStatus),
		FulfillmentStatus: string(s.FulfillmentStatus),
		TrackingNumber:    s.TrackingNumber,
		Notes:             s.Notes,
		// mongo stores milliseconds; truncate so the optimistic version filter matches
		CreatedAt: s.CreatedAt.UTC().Truncate(time.Millisecond),
		UpdatedAt: s.UpdatedAt.UTC().Truncate(time.Millisecond),
	}
	if s.UserID != nil {
		doc.UserID = s.UserID.String()
	}
	return doc, nil
}

func fromOrderDoc(d *orderDoc) (*order.Order, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("stored order id is not a uuid", err)
	}
	lines, err := converter.DocsToLines(d.Items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert order items", err)
	}
	snap := order.Snapshot{
		ID:                id,
		Email:             d.Email,
		Items:             lines,
		ShippingAddress:   converter.DocToAddress(d.ShippingAddress),
		SubtotalCents:     d.SubtotalCents,
		ShippingCents:     d.ShippingCents,
		TaxCents:          d.TaxCents,
		AmountCents:       d.AmountCents,
		Currency:          d.Currency,
		PaymentRef:        d.PaymentRef,
		PaymentStatus:     order.PaymentStatus(d.PaymentStatus),
		FulfillmentStatus: order.FulfillmentStatus(d.FulfillmentStatus),
		TrackingNumber:    d.TrackingNumber,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.UserID != "" {
		uid, err := uuid.Parse(d.UserID)
		if err != nil {
			return nil, infra.WrapRepoErr("stored user id is not a uuid", err)
		}
		snap.UserID = &uid
	}
	return order.Reconstruct(snap), nil
}
