package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roster-backend/internal/store"
)

// CreateAvailability handles POST /api/availability.
func (h *Handler) CreateAvailability(c *gin.Context) {
	var input store.CreateAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	window, err := h.store.CreateAvailabilityWindow(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, window)
}

// ListAvailability handles GET /api/workers/:worker_id/availability
// with optional RFC3339 from/to query bounds.
func (h *Handler) ListAvailability(c *gin.Context) {
	from, ok := parseTimeParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeParam(c, "to")
	if !ok {
		return
	}

	windows, err := h.store.WindowsForWorker(c.Request.Context(), c.Param("worker_id"), from, to)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// DeleteAvailability handles DELETE /api/availability/:window_id.
func (h *Handler) DeleteAvailability(c *gin.Context) {
	if err := h.store.DeleteAvailabilityWindow(c.Request.Context(), c.Param("window_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseTimeParam(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid '" + name + "' timestamp format. Use RFC3339."})
		return time.Time{}, false
	}
	return t, true
}
