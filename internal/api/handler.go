package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"roster-backend/config"
	"roster-backend/internal/notification"
	"roster-backend/internal/solver"
	"roster-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	solver  *solver.Client
	pool    *notification.WorkerPool
	webpush *webpush.Options
	cfg     *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sc *solver.Client, pool *notification.WorkerPool, webpushOptions *webpush.Options, cfg *config.Config) *Handler {
	return &Handler{
		store:   s,
		solver:  sc,
		pool:    pool,
		webpush: webpushOptions,
		cfg:     cfg,
	}
}

// dispatch forwards an assignment event to the notification pool, if
// one is running.
func (h *Handler) dispatch(event notification.Event) {
	if h.pool != nil {
		h.pool.Dispatch(event)
	}
}
