package api

import (
	"net/http"

	reqdto "storefront-sync/internal/handler/dto/request"
	resdto "storefront-sync/internal/handler/dto/response"
	"storefront-sync/internal/handler/httperr"
	"storefront-sync/internal/usecase/commands"
	"storefront-sync/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	cmds commands.OrderStatusCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderStatusCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Look up an order
// @Description Find an order by its short number and the purchaser's email
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.OrderLookupRequest true "Order number and email"
// @Success 200 {object} resdto.OrderLookupResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/lookup [post]
func (h *OrderHandler) Lookup(c *gin.Context) {
	var req reqdto.OrderLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.q.Lookup(c.Request.Context(), req.OrderNumber, req.Email)
	if err != nil {
		status := statusFor(err)
		httperr.AbortWithError(c, status, err, publicMessage(status, err, "Failed to look up order"), nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Update fulfillment status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	o, err := h.cmds.UpdateFulfillment(c.Request.Context(), id, commands.UpdateFulfillmentRequest{
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Notes:          req.Notes,
	})
	if err != nil {
		status := statusFor(err)
		httperr.AbortWithError(c, status, err, publicMessage(status, err, "Failed to update order"), nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(o))
}
