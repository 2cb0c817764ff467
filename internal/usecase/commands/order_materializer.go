package commands

//go:generate go run go.uber.org/mock/mockgen -source=order_materializer.go -destination=../../testutil/mock/commands/order_materializer.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront-sync/internal/domain/catalog"
	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/domain/order"
	"storefront-sync/internal/domain/pricing"
	"storefront-sync/internal/infra"
	"storefront-sync/internal/pkg/clock"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	cartClearTimeout     = 5 * time.Second
	unresolvedNotePrefix = "unresolved catalog refs: "
)

type MaterializeResult struct {
	OrderID uuid.UUID
	Created bool
}

type OrderMaterializer interface {
	// Materialize creates the order for a completed checkout at most once per session id.
	Materialize(ctx context.Context, intent checkout.Intent) (*MaterializeResult, error)
	// FromWebhook verifies and materializes a processor event. handled is false for events
	// that are acknowledged without any work.
	FromWebhook(ctx context.Context, payload []byte, signatureHeader string) (res *MaterializeResult, handled bool, err error)
	// Confirm is the client-side fallback after redirect-back from payment.
	Confirm(ctx context.Context, sessionID string) (*MaterializeResult, error)
}

type orderMaterializerImpl struct {
	orders   shared.OrderRepository
	catalog  shared.CatalogRepository
	settings shared.SettingsRepository
	payments shared.PaymentGateway
	carts    shared.CartInvalidator
	clock    clock.Clock
	logger   *slog.Logger
}

func NewOrderMaterializer(
	orders shared.OrderRepository,
	catalogRepo shared.CatalogRepository,
	settings shared.SettingsRepository,
	payments shared.PaymentGateway,
	carts shared.CartInvalidator,
	clk clock.Clock,
	logger *slog.Logger,
) OrderMaterializer {
	return &orderMaterializerImpl{
		orders:   orders,
		catalog:  catalogRepo,
		settings: settings,
		payments: payments,
		carts:    carts,
		clock:    clk,
		logger:   logger,
	}
}

func (uc *orderMaterializerImpl) FromWebhook(ctx context.Context, payload []byte, signatureHeader string) (*MaterializeResult, bool, error) {
	intent, handled, err := uc.payments.ParseCompletedCheckout(payload, signatureHeader)
	if err != nil || !handled {
		return nil, handled, err
	}
	res, err := uc.Materialize(ctx, *intent)
	return res, true, err
}

func (uc *orderMaterializerImpl) Confirm(ctx context.Context, sessionID string) (*MaterializeResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errs.ErrMissingSessionID
	}
	intent, err := uc.payments.RetrieveCompletedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.Materialize(ctx, *intent)
}

func (uc *orderMaterializerImpl) Materialize(ctx context.Context, intent checkout.Intent) (*MaterializeResult, error) {
	if existing, ok, err := uc.existingOrder(ctx, intent.SessionID); err != nil || ok {
		return existing, err
	}

	settings, err := uc.settings.GetPricing(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load pricing settings")
	}

	lines, unresolved, err := uc.resolveLines(ctx, intent, settings)
	if err != nil {
		return nil, err
	}
	var notes string
	if len(unresolved) > 0 {
		notes = unresolvedNotePrefix + strings.Join(unresolved, ",")
	}

	o, err := order.NewPaidOrder(uc.clock, order.PaidOrderParams{
		UserID:          intent.UserID,
		Email:           intent.Email,
		Items:           lines,
		ShippingAddress: intent.Shipping,
		SubtotalCents:   intent.SubtotalCents,
		ShippingCents:   intent.ShippingCents,
		TaxCents:        intent.TaxCents,
		AmountCents:     intent.AmountTotalCents,
		Currency:        intent.Currency,
		PaymentRef:      intent.SessionID,
		Notes:           notes,
	})
	if err != nil {
		return nil, errs.Wrapf(err, "failed to build order for session %s", intent.SessionID)
	}

	if err := uc.orders.Insert(ctx, o); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// a concurrent path won the insert
			id, ferr := uc.orders.FindIDByPaymentRef(ctx, intent.SessionID)
			if ferr != nil {
				return nil, errs.Wrap(ferr, "failed to read order after duplicate insert")
			}
			return &MaterializeResult{OrderID: id, Created: false}, nil
		}
		return nil, errs.Wrap(err, "failed to insert order")
	}

	if drift := o.LinesTotalCents() + o.ShippingCents() + o.TaxCents() - o.AmountCents(); drift != 0 {
		uc.logger.Warn("order lines differ from charged amount",
			"order_id", o.ID().String(),
			"payment_ref", intent.SessionID,
			"charged_cents", o.AmountCents(),
			"drift_cents", drift)
	}
	uc.logger.Info("order materialized", "order_id", o.ID().String(), "payment_ref", intent.SessionID, "lines", len(lines))

	if intent.UserID != nil {
		uc.clearCartAsync(*intent.UserID)
	}
	return &MaterializeResult{OrderID: o.ID(), Created: true}, nil
}

func (uc *orderMaterializerImpl) existingOrder(ctx context.Context, paymentRef string) (*MaterializeResult, bool, error) {
	id, err := uc.orders.FindIDByPaymentRef(ctx, paymentRef)
	if err == nil {
		return &MaterializeResult{OrderID: id, Created: false}, true, nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return nil, false, nil
	}
	return nil, false, errs.Wrap(err, "failed to look up order by payment reference")
}

// resolveLines prices each line from the current catalog. Items that are gone or unpriced are
// reported as unresolved. Any other lookup failure aborts so the whole materialization is retried.
func (uc *orderMaterializerImpl) resolveLines(ctx context.Context, intent checkout.Intent, settings pricing.Settings) ([]order.LineItem, []string, error) {
	refs, decodeErr := checkout.DecodeItems(intent.CompactItems)
	if decodeErr != nil {
		uc.logger.Warn("malformed compact items segments ignored", "payment_ref", intent.SessionID, "error", decodeErr.Error())
	}

	lines := make([]order.LineItem, 0, len(refs))
	var unresolved []string
	for _, ref := range refs {
		item, err := uc.catalog.FindByExternalID(ctx, ref.ExternalID)
		switch {
		case err != nil && !infra.IsKind(err, infra.KindNotFound):
			return nil, nil, errs.Wrapf(err, "failed to load catalog item %s for session %s", ref.ExternalID, intent.SessionID)
		case err != nil || !item.HasPrice():
			uc.logger.Warn("order line skipped",
				"payment_ref", intent.SessionID,
				"external_id", ref.ExternalID,
				"error", errs.ErrCatalogItemMissing.Error())
			unresolved = append(unresolved, ref.ExternalID)
			continue
		}
		lines = append(lines, lineFromItem(item, ref.Quantity, settings))
	}
	return lines, unresolved, nil
}

func lineFromItem(item *catalog.Item, qty int, settings pricing.Settings) order.LineItem {
	return order.LineItem{
		CatalogRef: item.ExternalID,
		Title:      item.Title,
		PriceCents: pricing.ApplyMarkup(*item.PriceCents, settings.MarkupPercent),
		Quantity:   qty,
		Image:      item.PrimaryImage(),
		SKU:        item.SKU,
	}
}

func (uc *orderMaterializerImpl) clearCartAsync(userID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cartClearTimeout)
		defer cancel()
		if err := uc.carts.Clear(ctx, userID); err != nil {
			uc.logger.Warn("failed to clear cart", "user_id", userID.String(), "error", err.Error())
		}
	}()
}
