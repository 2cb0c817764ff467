package api

import (
	"net/http"

	reqdto "storefront-sync/internal/handler/dto/request"
	resdto "storefront-sync/internal/handler/dto/response"
	"storefront-sync/internal/handler/httperr"
	"storefront-sync/internal/usecase/commands"
	"storefront-sync/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	cmds    commands.SettingsCommands
	pricing queries.PricingQueries
}

func NewSettingsHandler(cmds commands.SettingsCommands, pricing queries.PricingQueries) *SettingsHandler {
	return &SettingsHandler{cmds: cmds, pricing: pricing}
}

// @Summary Get pricing settings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.PricingSettingsResponse
// @Router /admin/settings/pricing [get]
func (h *SettingsHandler) GetPricing(c *gin.Context) {
	s, err := h.pricing.Settings(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load settings", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPricingSettingsResponse(s.MarkupPercent))
}

// @Summary Update pricing settings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdatePricingSettingsRequest true "Pricing settings"
// @Success 200 {object} resdto.PricingSettingsResponse
// @Failure 400 {object} map[string]string
// @Router /admin/settings/pricing [put]
func (h *SettingsHandler) UpdatePricing(c *gin.Context) {
	var req reqdto.UpdatePricingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	s, err := h.cmds.UpdatePricing(c.Request.Context(), *req.Pricing.MarkupPercent)
	if err != nil {
		status := statusFor(err)
		httperr.AbortWithError(c, status, err, publicMessage(status, err, "Failed to save settings"), nil)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPricingSettingsResponse(s.MarkupPercent))
}
