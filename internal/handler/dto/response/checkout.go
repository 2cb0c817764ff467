package response

import "storefront-sync/internal/usecase/commands"

type CheckoutSessionResponse struct {
	SessionID     string `json:"sessionId"`
	URL           string `json:"url"`
	SubtotalCents int64  `json:"subtotalCents"`
	ShippingCents int64  `json:"shippingCents"`
	TaxCents      int64  `json:"taxCents"`
	TotalCents    int64  `json:"totalCents"`
}

func FromCreateSessionResult(r *commands.CreateSessionResult) *CheckoutSessionResponse {
	return &CheckoutSessionResponse{
		SessionID:     r.SessionID,
		URL:           r.URL,
		SubtotalCents: r.SubtotalCents,
		ShippingCents: r.ShippingCents,
		TaxCents:      r.TaxCents,
		TotalCents:    r.TotalCents,
	}
}

type ConfirmCheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// ConfirmFailureResponse deliberately carries no detail.
type ConfirmFailureResponse struct {
	Error string `json:"error"`
}

type WebhookAckResponse struct {
	Received bool   `json:"received"`
	OrderID  string `json:"orderId,omitempty"`
}
