package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"roster-backend/config"
	"roster-backend/internal/mw"
	"roster-backend/internal/notification"
	"roster-backend/internal/solver"
	"roster-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, sc *solver.Client, pool *notification.WorkerPool, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, sc, pool, webpushOptions, cfg)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Shift lifecycle
		api.POST("/shifts", handler.CreateShift)
		api.POST("/shifts/bulk", handler.CreateShiftsBulk)
		api.GET("/shifts", handler.ListShifts)
		api.GET("/shifts/:shift_id", handler.GetShift)
		api.PATCH("/shifts/:shift_id", handler.UpdateShift)
		api.DELETE("/shifts/:shift_id", handler.DeleteShift)

		// Assignment engine
		api.POST("/shifts/:shift_id/assign", handler.AssignShift)
		api.POST("/shifts/:shift_id/unassign", handler.UnassignShift)

		// Availability windows
		api.POST("/availability", handler.CreateAvailability)
		api.GET("/workers/:worker_id/availability", handler.ListAvailability)
		api.DELETE("/availability/:window_id", handler.DeleteAvailability)

		// Calendar view (cached reads)
		api.GET("/calendar", caching, handler.GetCalendar)

		// Optimizer
		api.POST("/optimize", handler.Optimize)
		api.POST("/optimize/apply", handler.ApplyOptimization)
		api.GET("/solver/health", handler.SolverHealth)

		// Push subscriptions
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
