package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cargo-backoffice/internal/handler/api"
	"cargo-backoffice/internal/handler/middleware"
	"cargo-backoffice/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, manifestHandler *api.ManifestHandler, scanHandler *api.ScanHandler, queueHandler *api.QueueHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, manifestHandler, scanHandler, queueHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, manifestHandler *api.ManifestHandler, scanHandler *api.ScanHandler, queueHandler *api.QueueHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		manifests := apiGroup.Group("/manifests")
		manifests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(manifests, []route{
				{Method: http.MethodPost, Path: "", Handler: manifestHandler.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: manifestHandler.Get},
				{Method: http.MethodGet, Path: "/:id/items", Handler: manifestHandler.ListItems},
				{Method: http.MethodGet, Path: "/:id/scan-log", Handler: manifestHandler.ListScanLog},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: manifestHandler.UpdateStatus},
				{Method: http.MethodPost, Path: "/:id/close", Handler: manifestHandler.Close},
				{Method: http.MethodPost, Path: "/:id/depart", Handler: manifestHandler.Depart},
				{Method: http.MethodPost, Path: "/:id/arrive", Handler: manifestHandler.Arrive},
				{Method: http.MethodPost, Path: "/:id/recalculate", Handler: manifestHandler.Recalculate},
				{Method: http.MethodPost, Path: "/:id/scans", Handler: scanHandler.Scan},
				{Method: http.MethodDelete, Path: "/:id/items/:shipmentId", Handler: manifestHandler.RemoveItem},
			})
		}

		// Scan queue endpoints attribute staff when a token is present but
		// stay reachable for anonymous scan devices.
		queue := apiGroup.Group("/scan-queue")
		queue.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(queue, []route{
				{Method: http.MethodPost, Path: "", Handler: queueHandler.Add},
				{Method: http.MethodGet, Path: "", Handler: queueHandler.Get},
				{Method: http.MethodPost, Path: "/retry", Handler: queueHandler.Retry},
				{Method: http.MethodDelete, Path: "/synced", Handler: queueHandler.ClearSynced},
				{Method: http.MethodPut, Path: "/online", Handler: queueHandler.SetOnline},
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
