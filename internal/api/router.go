package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"triage-queue-backend/config"
	"triage-queue-backend/internal/metrics"
	"triage-queue-backend/internal/mw"
	"triage-queue-backend/internal/queue"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(engine *queue.Engine, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	handler := NewHandler(engine, cacheStore)

	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Equipment listing is the hot read; cache the computed fields.
		api.GET("/equipment", caching, handler.GetEquipment)

		api.POST("/bookings", handler.CreateBooking)
		api.GET("/bookings/pending", handler.GetPendingBookings)
		api.POST("/bookings/:id/confirm", handler.ConfirmBooking)
		api.POST("/bookings/:id/serve", handler.ServeBooking)

		api.GET("/queue/:equipment_id", handler.GetQueue)
		api.POST("/queue/:equipment_id/next", handler.CallNext)
	}

	return r
}
