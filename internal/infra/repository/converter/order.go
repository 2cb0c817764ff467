package converter

import (
	"encoding/json"

	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/readmodel"

	"github.com/jinzhu/copier"
)

// LineDoc is the stored form of an order line, used as jsonb in postgres and as a subdocument in mongo.
type LineDoc struct {
	CatalogRef string `json:"catalogRef" bson:"catalogRef"`
	Title      string `json:"title" bson:"title"`
	PriceCents int64  `json:"priceCents" bson:"priceCents"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	Image      string `json:"image,omitempty" bson:"image,omitempty"`
	SKU        string `json:"sku,omitempty" bson:"sku,omitempty"`
}

type AddressDoc struct {
	Name       string `json:"name" bson:"name"`
	Line1      string `json:"line1" bson:"line1"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
}

func LinesToDocs(lines []order.LineItem) ([]LineDoc, error) {
	docs := make([]LineDoc, 0, len(lines))
	if len(lines) == 0 {
		return docs, nil
	}
	if err := copier.Copy(&docs, &lines); err != nil {
		return nil, errs.Wrap(err, "failed to convert order lines")
	}
	return docs, nil
}

func DocsToLines(docs []LineDoc) ([]order.LineItem, error) {
	lines := make([]order.LineItem, 0, len(docs))
	if len(docs) == 0 {
		return lines, nil
	}
	if err := copier.Copy(&lines, &docs); err != nil {
		return nil, errs.Wrap(err, "failed to convert stored order lines")
	}
	return lines, nil
}

func DocsToLineRMs(docs []LineDoc) ([]readmodel.OrderLineRM, error) {
	lines := make([]readmodel.OrderLineRM, 0, len(docs))
	if len(docs) == 0 {
		return lines, nil
	}
	if err := copier.Copy(&lines, &docs); err != nil {
		return nil, errs.Wrap(err, "failed to convert stored order lines")
	}
	return lines, nil
}

// DecodeImages reads the images jsonb column. An empty value is no images.
func DecodeImages(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, errs.Wrap(err, "failed to decode catalog images")
	}
	return images, nil
}

func AddressToDoc(a order.Address) AddressDoc {
	return AddressDoc(a)
}

func DocToAddress(d AddressDoc) order.Address {
	return order.Address(d)
}
