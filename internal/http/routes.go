package http

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mines_arena/internal/http/handlers"
	"mines_arena/internal/http/middleware"
	"mines_arena/internal/room"
)

// RegisterRoutes wires the REST surface, websocket endpoint and health
// probes onto the engine.
func RegisterRoutes(r *gin.Engine, manager *room.Manager, version string) {
	h := handlers.NewHandler(manager)
	healthHandler := handlers.NewHealthHandler(manager, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h)

	// Legacy unversioned routes kept for older clients
	api := r.Group("/api")
	api.Use(middleware.RateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(api, h)

	// Realtime sync for seated players
	r.GET("/ws", h.WS())
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.POST("/room", h.CreateRoom)
	api.POST("/room/:roomId/join", h.JoinRoom)
	api.GET("/room/:roomId", h.GetRoom)
	api.GET("/difficulties", h.Difficulties)
}
