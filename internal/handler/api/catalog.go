package api

import (
	"net/http"

	reqdto "storefront-sync/internal/handler/dto/request"
	resdto "storefront-sync/internal/handler/dto/response"
	"storefront-sync/internal/handler/httperr"
	"storefront-sync/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog queries.CatalogQueries
	pricing queries.PricingQueries
}

func NewCatalogHandler(catalog queries.CatalogQueries, pricing queries.PricingQueries) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, pricing: pricing}
}

// @Summary List catalog items
// @Description List catalog items with display prices
// @Tags catalog
// @Produce json
// @Param page query int false "Page number"
// @Param perPage query int false "Items per page"
// @Param pricedOnly query bool false "Only items with a price"
// @Success 200 {object} resdto.CatalogPageResponse
// @Failure 400 {object} map[string]string
// @Router /catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var q reqdto.CatalogListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	page, err := h.catalog.List(c.Request.Context(), q.Page, q.PerPage, q.PricedOnly)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list catalog", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCatalogPage(page))
}

// @Summary Get catalog item
// @Tags catalog
// @Produce json
// @Param externalId path string true "Supplier item number"
// @Success 200 {object} resdto.CatalogItemResponse
// @Failure 404 {object} map[string]string
// @Router /catalog/{externalId} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	view, err := h.catalog.Get(c.Request.Context(), c.Param("externalId"))
	if err != nil {
		status := statusFor(err)
		httperr.AbortWithError(c, status, err, publicMessage(status, err, "Failed to load catalog item"), nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCatalogItemView(view))
}

// @Summary Shipping quote
// @Description Flat zone shipping cost for a destination state and subtotal
// @Tags catalog
// @Produce json
// @Param state query string true "State or territory code"
// @Param subtotal query int false "Subtotal in cents"
// @Success 200 {object} resdto.ShippingQuoteResponse
// @Failure 400 {object} map[string]string
// @Router /shipping/quote [get]
func (h *CatalogHandler) ShippingQuote(c *gin.Context) {
	var q reqdto.ShippingQuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShippingQuote(h.pricing.ShippingQuote(q.State, q.Subtotal)))
}
