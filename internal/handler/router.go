package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-sync/internal/domain/user"
	"storefront-sync/internal/handler/api"
	"storefront-sync/internal/handler/middleware"
	"storefront-sync/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Sync     *api.SyncHandler
	Catalog  *api.CatalogHandler
	Settings *api.SettingsHandler
	Checkout *api.CheckoutHandler
	Order    *api.OrderHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/catalog", Handler: h.Catalog.List},
			{Method: http.MethodGet, Path: "/catalog/:externalId", Handler: h.Catalog.Get},
			{Method: http.MethodGet, Path: "/shipping/quote", Handler: h.Catalog.ShippingQuote},
			{Method: http.MethodPost, Path: "/checkout/session", Handler: h.Checkout.CreateSession, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			{Method: http.MethodPost, Path: "/checkout/confirm", Handler: h.Checkout.Confirm},
			{Method: http.MethodPost, Path: "/webhooks/stripe", Handler: h.Checkout.StripeWebhook},
			{Method: http.MethodPost, Path: "/orders/lookup", Handler: h.Order.Lookup},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/catalog/sync", Handler: h.Sync.SyncPage},
				{Method: http.MethodGet, Path: "/settings/pricing", Handler: h.Settings.GetPricing},
				{Method: http.MethodPut, Path: "/settings/pricing", Handler: h.Settings.UpdatePricing},
				{Method: http.MethodPatch, Path: "/orders/:id/status", Handler: h.Order.UpdateStatus},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
