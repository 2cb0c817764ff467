//go:build unit

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"storefront-sync/internal/domain/checkout"
	"storefront-sync/internal/handler/api"
	reqdto "storefront-sync/internal/handler/dto/request"
	resdto "storefront-sync/internal/handler/dto/response"
	"storefront-sync/internal/infra/payment"
	"storefront-sync/internal/pkg/errs"
	"storefront-sync/internal/testutil"
	"storefront-sync/internal/testutil/httptest"
	commandsmock "storefront-sync/internal/testutil/mock/commands"
	"storefront-sync/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCheckout     *commandsmock.MockCheckoutCommands
	mockMaterializer *commandsmock.MockOrderMaterializer
	userID           uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockMaterializer = commandsmock.NewMockOrderMaterializer(s.mockCtrl)
	h := api.NewCheckoutHandler(s.mockCheckout, s.mockMaterializer, discardLogger)

	// optional auth: a bearer header identifies the purchaser
	s.userID = uuid.New()
	optionalAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
		c.Next()
	}

	s.router.POST("/checkout/session", optionalAuth, h.CreateSession)
	s.router.POST("/checkout/confirm", h.Confirm)
	s.router.POST("/webhooks/stripe", h.StripeWebhook)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func validSessionRequest() reqdto.CreateCheckoutSessionRequest {
	return reqdto.CreateCheckoutSessionRequest{
		Items: []reqdto.CheckoutItem{{ExternalID: "p1", Quantity: 2}},
		Email: "buyer@example.com",
		Shipping: reqdto.ShippingAddress{
			Name: "Ada", Line1: "1 Main", City: "Austin", State: "TX", PostalCode: "73301",
		},
	}
}

// ================================================================================
// TestCreateSession
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestCreateSession() {
	url := "/checkout/session"
	reqBody := validSessionRequest()
	result := &commands.CreateSessionResult{
		SessionID: "cs_1", URL: "https://pay.example/cs_1",
		SubtotalCents: 2000, ShippingCents: 999, TotalCents: 2999,
	}

	s.Run("success: anonymous purchaser, country defaults to US", func() {
		s.mockCheckout.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.CreateSessionRequest) (*commands.CreateSessionResult, error) {
				s.Nil(req.UserID)
				s.Equal([]checkout.LineRef{{ExternalID: "p1", Quantity: 2}}, req.Items)
				s.Equal("US", req.Shipping.Country)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.CheckoutSessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("cs_1", body.SessionID)
		s.Equal(int64(2999), body.TotalCents)
	})

	s.Run("success: signed-in purchaser is attached", func() {
		s.mockCheckout.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.CreateSessionRequest) (*commands.CreateSessionResult, error) {
				s.Require().NotNil(req.UserID)
				s.Equal(s.userID, *req.UserID)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing items", mutate: testutil.Field("items", nil)},
			{name: "empty items", mutate: testutil.Field("items", []any{})},
			{name: "zero quantity", mutate: testutil.Field("items", []any{map[string]any{"externalId": "p1", "quantity": 0}})},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing shipping", mutate: testutil.Field("shipping", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "unknown item", err: errs.Mark(errors.New("p1"), errs.ErrCatalogItemNotFound), expectedStatus: http.StatusNotFound},
			{name: "unpriced item", err: errs.Mark(errors.New("p1"), errs.ErrItemUnavailable), expectedStatus: http.StatusConflict},
			{name: "cart too large", err: checkout.ErrCapacityExceeded, expectedStatus: http.StatusRequestEntityTooLarge},
			{name: "processor failure", err: errors.New("stripe: connection reset"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Failed to create checkout session"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCheckout.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.NotContains(rec.Body.String(), "connection reset")
			})
		}
	})
}

// ================================================================================
// TestConfirm
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestConfirm() {
	url := "/checkout/confirm"

	s.Run("success: returns the order id", func() {
		id := uuid.New()
		s.mockMaterializer.EXPECT().Confirm(gomock.Any(), "cs_1").
			Return(&commands.MaterializeResult{OrderID: id, Created: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.ConfirmCheckoutRequest{SessionID: "cs_1"}, "")

		var body resdto.ConfirmCheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Success)
		s.Equal(id.String(), body.OrderID)
	})

	s.Run("error: failures carry a generic message", func() {
		cases := []struct {
			name           string
			err            error
			expectedStatus int
		}{
			{name: "missing session id", err: errs.ErrMissingSessionID, expectedStatus: http.StatusBadRequest},
			{name: "unpaid session", err: errs.Mark(errors.New("cs_1 unpaid"), errs.ErrPaymentNotCompleted), expectedStatus: http.StatusBadRequest},
			{name: "store failure", err: errors.New("db down"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockMaterializer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.ConfirmCheckoutRequest{SessionID: "cs_1"}, "")

				s.Equal(tc.expectedStatus, rec.Code)
				var body resdto.ConfirmFailureResponse
				httptest.DecodeJSON(s.T(), rec, &body)
				s.Equal("Unable to confirm order", body.Error)
			})
		}
	})
}

// ================================================================================
// TestStripeWebhook
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestStripeWebhook() {
	url := "/webhooks/stripe"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	headers := map[string]string{"Stripe-Signature": "t=1,v1=abc", "Content-Type": "application/json"}

	s.Run("success: raw body and signature reach the materializer", func() {
		id := uuid.New()
		s.mockMaterializer.EXPECT().FromWebhook(gomock.Any(), payload, "t=1,v1=abc").
			Return(&commands.MaterializeResult{OrderID: id, Created: true}, true, nil).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, url, payload, headers)

		var body resdto.WebhookAckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Received)
		s.Equal(id.String(), body.OrderID)
	})

	s.Run("success: other event types are acknowledged", func() {
		s.mockMaterializer.EXPECT().FromWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, false, nil).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, url, payload, headers)

		var body resdto.WebhookAckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Received)
		s.Empty(body.OrderID)
	})

	s.Run("error: 400 on invalid signature", func() {
		s.mockMaterializer.EXPECT().FromWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, false, errs.Mark(errors.New("bad sig"), payment.ErrInvalidSignature)).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, url, payload, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid signature")
	})

	s.Run("error: 413 when the body exceeds the webhook limit", func() {
		s.mockMaterializer.EXPECT().FromWebhook(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		oversized := []byte(`{"id":"evt_big","data":"` + strings.Repeat("x", 65<<10) + `"}`)
		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, url, oversized, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusRequestEntityTooLarge, "Payload too large")
	})

	s.Run("error: 500 so the processor redelivers", func() {
		s.mockMaterializer.EXPECT().FromWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, true, errs.Wrap(errors.New("connection reset"), "failed to load catalog item")).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, url, payload, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Webhook processing failed")
	})
}
