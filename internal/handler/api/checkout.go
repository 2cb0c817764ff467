package api

import (
	"io"
	"log/slog"
	"net/http"

	reqdto "storefront-sync/internal/handler/dto/request"
	resdto "storefront-sync/internal/handler/dto/response"
	"storefront-sync/internal/handler/httperr"
	"storefront-sync/internal/handler/middleware"
	"storefront-sync/internal/infra/payment"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	maxWebhookBodyBytes   = 64 << 10
)

type CheckoutHandler struct {
	checkout     commands.CheckoutCommands
	materializer commands.OrderMaterializer
	logger       *slog.Logger
}

func NewCheckoutHandler(checkout commands.CheckoutCommands, materializer commands.OrderMaterializer, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, materializer: materializer, logger: logger}
}

// @Summary Create checkout session
// @Description Price the cart from the catalog and open a payment session
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCheckoutSessionRequest true "Cart and shipping"
// @Success 201 {object} resdto.CheckoutSessionResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /checkout/session [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req reqdto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	in := commands.CreateSessionRequest{
		Items:    req.LineRefs(),
		Email:    req.Email,
		Shipping: req.Address(),
	}
	if userID, ok := middleware.GetUserID(c); ok {
		in.UserID = &userID
	}

	res, err := h.checkout.CreateSession(c.Request.Context(), in)
	if err != nil {
		status := statusFor(err)
		httperr.AbortWithError(c, status, err, publicMessage(status, err, "Failed to create checkout session"), nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateSessionResult(res))
}

// @Summary Confirm checkout
// @Description Fallback order materialization after redirect-back from payment
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.ConfirmCheckoutRequest true "Session id"
// @Success 200 {object} resdto.ConfirmCheckoutResponse
// @Failure 400 {object} resdto.ConfirmFailureResponse
// @Failure 500 {object} resdto.ConfirmFailureResponse
// @Router /checkout/confirm [post]
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.ConfirmFailureResponse{Error: "Invalid request"})
		return
	}

	res, err := h.materializer.Confirm(c.Request.Context(), req.SessionID)
	if err != nil {
		_ = c.Error(err)
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("checkout confirmation failed", "session_id", req.SessionID, "error", err.Error())
		}
		c.JSON(status, resdto.ConfirmFailureResponse{Error: "Unable to confirm order"})
		return
	}
	c.JSON(http.StatusOK, resdto.ConfirmCheckoutResponse{Success: true, OrderID: res.OrderID.String()})
}

// @Summary Payment webhook
// @Description Signed payment processor events. Completed checkouts become orders exactly once.
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} resdto.WebhookAckResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /webhooks/stripe [post]
func (h *CheckoutHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			h.logger.Warn("webhook body too large", "limit_bytes", tooLarge.Limit)
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Payload too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	res, handled, err := h.materializer.FromWebhook(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader))
	switch {
	case errs.Is(err, payment.ErrInvalidSignature):
		h.logger.Warn("webhook signature verification failed", "error", err.Error())
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid signature", nil)
		return
	case err != nil:
		// a 5xx makes the processor redeliver
		h.logger.Error("webhook materialization failed", "error", err.Error())
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Webhook processing failed", nil)
		return
	}

	ack := resdto.WebhookAckResponse{Received: true}
	if handled && res != nil {
		ack.OrderID = res.OrderID.String()
	}
	c.JSON(http.StatusOK, ack)
}
