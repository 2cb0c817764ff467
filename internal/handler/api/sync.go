package api

import (
	"log/slog"
	"net/http"

	reqdto "storefront-sync/internal/handler/dto/request"
	resdto "storefront-sync/internal/handler/dto/response"
	"storefront-sync/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	sync   commands.CatalogSync
	logger *slog.Logger
}

func NewSyncHandler(sync commands.CatalogSync, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{sync: sync, logger: logger}
}

// @Summary Sync one supplier page
// @Description Upsert one page of supplier products and enrich their prices
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SyncPageRequest true "Page to sync"
// @Success 200 {object} resdto.SyncPageResponse
// @Failure 400 {object} resdto.SyncFailureResponse
// @Failure 500 {object} resdto.SyncFailureResponse
// @Router /admin/catalog/sync [post]
func (h *SyncHandler) SyncPage(c *gin.Context) {
	var req reqdto.SyncPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.SyncFailureResponse{OK: false, Error: "page must be a positive integer"})
		return
	}

	res, err := h.sync.SyncPage(c.Request.Context(), req.Page)
	if err != nil {
		_ = c.Error(err)
		h.logger.Error("catalog sync page failed", "page", req.Page, "error", err.Error())
		c.JSON(http.StatusInternalServerError, resdto.SyncFailureResponse{OK: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resdto.FromSyncPageResult(res))
}
