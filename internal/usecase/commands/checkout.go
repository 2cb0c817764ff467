package commands

//go:generate go run go.uber.org/mock/mockgen -source=checkout.go -destination=../../testutil/mock/commands/checkout.go -package=commandsmock

import (
	"context"
	"strings"

	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Items    []checkout.LineRef
	Email    string
	UserID   *uuid.UUID
	Shipping order.Address
}

type CreateSessionResult struct {
	SessionID     string
	URL           string
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	TotalCents    int64
}

type CheckoutCommands interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*CreateSessionResult, error)
}

type checkoutUseCaseImpl struct {
	catalog  shared.CatalogRepository
	settings shared.SettingsRepository
	payments shared.PaymentGateway
	cfg      config.CheckoutConfig
}

func NewCheckoutUseCase(catalogRepo shared.CatalogRepository, settings shared.SettingsRepository, payments shared.PaymentGateway, cfg config.CheckoutConfig) CheckoutCommands {
	return &checkoutUseCaseImpl{catalog: catalogRepo, settings: settings, payments: payments, cfg: cfg}
}

// CreateSession prices the cart from the catalog and opens a processor session whose metadata
// carries everything materialization needs.
func (uc *checkoutUseCaseImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*CreateSessionResult, error) {
	if len(req.Items) == 0 {
		return nil, errs.ErrEmptyCheckout
	}
	compact, err := checkout.EncodeItems(req.Items)
	if err != nil {
		return nil, err
	}

	settings, err := uc.settings.GetPricing(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load pricing settings")
	}

	lines := make([]shared.SessionLine, 0, len(req.Items))
	var subtotal int64
	for _, ref := range req.Items {
		item, err := uc.catalog.FindByExternalID(ctx, ref.ExternalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Wrapf(errs.ErrCatalogItemNotFound, "item %s", ref.ExternalID)
			}
			return nil, errs.Wrap(err, "failed to load catalog item")
		}
		if !item.HasPrice() {
			return nil, errs.Wrapf(errs.ErrItemUnavailable, "item %s", ref.ExternalID)
		}
		unit := pricing.ApplyMarkup(*item.PriceCents, settings.MarkupPercent)
		subtotal += unit * int64(ref.Quantity)
		lines = append(lines, shared.SessionLine{
			Name:            item.Title,
			Image:           item.PrimaryImage(),
			UnitAmountCents: unit,
			Quantity:        ref.Quantity,
		})
	}

	shipping := pricing.ShippingCost(req.Shipping.State, subtotal)
	tax := pricing.TaxCents(subtotal, uc.cfg.TaxPercent)
	intent := checkout.Intent{
		CompactItems:  compact,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		UserID:        req.UserID,
		Shipping:      req.Shipping,
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
	}

	sess, err := uc.payments.CreateSession(ctx, shared.CheckoutSessionRequest{
		Lines:         lines,
		ShippingCents: shipping,
		TaxCents:      tax,
		Currency:      uc.cfg.Currency,
		Email:         intent.Email,
		Metadata:      intent.Metadata(),
		SuccessURL:    uc.cfg.SuccessURL,
		CancelURL:     uc.cfg.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	return &CreateSessionResult{
		SessionID:     sess.ID,
		URL:           sess.URL,
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotal + shipping + tax,
	}, nil
}
