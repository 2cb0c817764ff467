package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/pkg/config"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/shared"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
	"github.com/stripe/stripe-go/v80/webhook"
)

const (
	eventCheckoutSessionCompleted             = "checkout.session.completed"
	eventCheckoutSessionAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
)

var (
	// ErrInvalidSignature means the webhook payload could not be authenticated. Nothing is read from it.
	ErrInvalidSignature = errs.New("invalid webhook signature")
	ErrMalformedEvent   = errs.New("malformed checkout session event")
)

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	logger        *slog.Logger
}

type Option func(*stripeOptions)

type stripeOptions struct {
	backends *stripe.Backends
}

// WithBackends points the API client at a different endpoint, e.g. a local fake.
func WithBackends(b *stripe.Backends) Option {
	return func(o *stripeOptions) { o.backends = b }
}

func NewStripeGateway(cfg config.StripeConfig, logger *slog.Logger, opts ...Option) *StripeGateway {
	var o stripeOptions
	for _, opt := range opts {
		opt(&o)
	}
	api := &client.API{}
	api.Init(cfg.SecretKey, o.backends)
	return &StripeGateway{api: api, webhookSecret: cfg.WebhookSecret, logger: logger}
}

func (g *StripeGateway) ParseCompletedCheckout(payload []byte, signatureHeader string) (*checkout.Intent, bool, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, false, errs.Mark(errs.Wrap(err, "failed to verify stripe webhook"), ErrInvalidSignature)
	}

	switch string(event.Type) {
	case eventCheckoutSessionCompleted, eventCheckoutSessionAsyncPaymentSucceeded:
	default:
		g.logger.Info("ignoring stripe event", "type", string(event.Type), "event_id", event.ID)
		return nil, false, nil
	}
	if event.Data == nil {
		return nil, true, ErrMalformedEvent
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, true, errs.Mark(errs.Wrap(err, "failed to decode checkout session"), ErrMalformedEvent)
	}
	// delayed payment methods complete unpaid; async_payment_succeeded follows once funds arrive
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		g.logger.Info("ignoring unpaid checkout session",
			"type", string(event.Type),
			"session_id", sess.ID,
			"payment_status", string(sess.PaymentStatus))
		return nil, false, nil
	}
	intent := intentFromSession(&sess)
	return &intent, true, nil
}

func (g *StripeGateway) RetrieveCompletedSession(ctx context.Context, sessionID string) (*checkout.Intent, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to retrieve checkout session")
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, errs.Wrapf(errs.ErrPaymentNotCompleted, "session %s payment status %q", sess.ID, sess.PaymentStatus)
	}
	intent := intentFromSession(sess)
	return &intent, nil
}

func (g *StripeGateway) CreateSession(ctx context.Context, req shared.CheckoutSessionRequest) (*shared.CheckoutSession, error) {
	currency := strings.ToLower(req.Currency)
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}

	for _, l := range req.Lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{Name: stripe.String(l.Name)}
		if l.Image != "" {
			product.Images = []*string{stripe.String(l.Image)}
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				UnitAmount:  stripe.Int64(l.UnitAmountCents),
				ProductData: product,
			},
			Quantity: stripe.Int64(int64(l.Quantity)),
		})
	}
	if req.TaxCents > 0 {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				UnitAmount:  stripe.Int64(req.TaxCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{Name: stripe.String("Sales tax")},
			},
			Quantity: stripe.Int64(1),
		})
	}
	params.ShippingOptions = []*stripe.CheckoutSessionShippingOptionParams{{
		ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
			Type:        stripe.String("fixed_amount"),
			DisplayName: stripe.String("Standard shipping"),
			FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
				Amount:   stripe.Int64(req.ShippingCents),
				Currency: stripe.String(currency),
			},
		},
	}}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create checkout session")
	}
	return &shared.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func intentFromSession(sess *stripe.CheckoutSession) checkout.Intent {
	intent := checkout.IntentFromMetadata(sess.ID, sess.Metadata)
	intent.AmountTotalCents = sess.AmountTotal
	intent.Currency = strings.ToLower(string(sess.Currency))
	if sess.PaymentIntent != nil {
		intent.PaymentIntentID = sess.PaymentIntent.ID
	}
	if intent.Email == "" {
		switch {
		case sess.CustomerDetails != nil && sess.CustomerDetails.Email != "":
			intent.Email = strings.ToLower(sess.CustomerDetails.Email)
		case sess.CustomerEmail != "":
			intent.Email = strings.ToLower(sess.CustomerEmail)
		}
	}
	return intent
}
