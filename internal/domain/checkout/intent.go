package checkout

import (
	"strconv"
	"strings"

	"storefront-sync/internal/domain/order"

	"github.com/google/uuid"
)

// Metadata keys stored on the processor session.
const (
	MetaItemsCompact = "itemsCompact"
	MetaEmail        = "email"
	MetaUserID       = "userId"
	MetaShipName     = "shipName"
	MetaShipLine1    = "shipLine1"
	MetaShipLine2    = "shipLine2"
	MetaShipCity     = "shipCity"
	MetaShipState    = "shipState"
	MetaShipZip      = "shipZip"
	MetaShipCountry  = "shipCountry"
	MetaSubtotal     = "subtotal"
	MetaShipping     = "shipping"
	MetaTax          = "tax"
)

// Intent is the processor-side view of a checkout, reconstructed from a completed session.
type Intent struct {
	SessionID        string
	CompactItems     string
	Email            string
	UserID           *uuid.UUID
	Shipping         order.Address
	SubtotalCents    int64
	ShippingCents    int64
	TaxCents         int64
	AmountTotalCents int64
	Currency         string
	PaymentIntentID  string
}

// IntentFromMetadata rebuilds an Intent from session metadata. Numeric fields that
// fail to parse are left at zero.
func IntentFromMetadata(sessionID string, md map[string]string) Intent {
	in := Intent{
		SessionID:    sessionID,
		CompactItems: md[MetaItemsCompact],
		Email:        strings.ToLower(strings.TrimSpace(md[MetaEmail])),
		Shipping: order.Address{
			Name:       md[MetaShipName],
			Line1:      md[MetaShipLine1],
			Line2:      md[MetaShipLine2],
			City:       md[MetaShipCity],
			State:      md[MetaShipState],
			PostalCode: md[MetaShipZip],
			Country:    md[MetaShipCountry],
		},
		SubtotalCents: parseCents(md[MetaSubtotal]),
		ShippingCents: parseCents(md[MetaShipping]),
		TaxCents:      parseCents(md[MetaTax]),
	}
	if raw := md[MetaUserID]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			in.UserID = &id
		}
	}
	return in
}

// Metadata is the inverse of IntentFromMetadata.
func (in Intent) Metadata() map[string]string {
	md := map[string]string{
		MetaItemsCompact: in.CompactItems,
		MetaEmail:        in.Email,
		MetaShipName:     in.Shipping.Name,
		MetaShipLine1:    in.Shipping.Line1,
		MetaShipLine2:    in.Shipping.Line2,
		MetaShipCity:     in.Shipping.City,
		MetaShipState:    in.Shipping.State,
		MetaShipZip:      in.Shipping.PostalCode,
		MetaShipCountry:  in.Shipping.Country,
		MetaSubtotal:     strconv.FormatInt(in.SubtotalCents, 10),
		MetaShipping:     strconv.FormatInt(in.ShippingCents, 10),
		MetaTax:          strconv.FormatInt(in.TaxCents, 10),
	}
	if in.UserID != nil {
		md[MetaUserID] = in.UserID.String()
	}
	return md
}

func parseCents(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
