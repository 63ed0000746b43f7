package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roster-backend/internal/model"
	"roster-backend/internal/store"
)

// CreateShift handles POST /api/shifts.
func (h *Handler) CreateShift(c *gin.Context) {
	var input store.CreateShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	shift, err := h.store.CreateShift(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

type bulkCreateRequest struct {
	Shifts []store.CreateShiftInput `json:"shifts" binding:"required"`
}

// CreateShiftsBulk handles POST /api/shifts/bulk.
func (h *Handler) CreateShiftsBulk(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	created, err := h.store.CreateShifts(c.Request.Context(), req.Shifts)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": created})
}

// ListShifts handles GET /api/shifts with optional teamId, from, to,
// status and workerId query filters.
func (h *Handler) ListShifts(c *gin.Context) {
	filter := store.ShiftFilter{
		TeamID:   c.Query("teamId"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Status:   model.ShiftStatus(c.Query("status")),
		WorkerID: c.Query("workerId"),
	}

	shifts, err := h.store.ListShifts(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// GetShift handles GET /api/shifts/:shift_id.
func (h *Handler) GetShift(c *gin.Context) {
	shift, err := h.store.GetShift(c.Request.Context(), c.Param("shift_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// UpdateShift handles PATCH /api/shifts/:shift_id. The body may carry
// expectedRevision for an optimistic concurrency check.
func (h *Handler) UpdateShift(c *gin.Context) {
	var input store.UpdateShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	shift, err := h.store.UpdateShift(c.Request.Context(), c.Param("shift_id"), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift handles DELETE /api/shifts/:shift_id.
func (h *Handler) DeleteShift(c *gin.Context) {
	if err := h.store.DeleteShift(c.Request.Context(), c.Param("shift_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
