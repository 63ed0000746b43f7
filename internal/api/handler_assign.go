package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roster-backend/internal/model"
	"roster-backend/internal/notification"
)

type assignRequest struct {
	WorkerID string                 `json:"workerId" binding:"required"`
	Source   model.AssignmentSource `json:"source"`
}

// AssignShift handles POST /api/shifts/:shift_id/assign.
func (h *Handler) AssignShift(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Source == "" {
		req.Source = model.SourceManual
	}

	shift, err := h.store.AssignShift(c.Request.Context(), c.Param("shift_id"), req.WorkerID, req.Source)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.dispatch(notification.Event{
		Kind:     notification.EventAssigned,
		ShiftID:  shift.ID,
		WorkerID: req.WorkerID,
	})
	c.JSON(http.StatusOK, shift)
}

// UnassignShift handles POST /api/shifts/:shift_id/unassign.
func (h *Handler) UnassignShift(c *gin.Context) {
	shift, previous, err := h.store.UnassignShift(c.Request.Context(), c.Param("shift_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	// Only the worker this call removed gets an alert. The metadata
	// slot may still name an assignee from an earlier unassignment.
	if previous != "" {
		h.dispatch(notification.Event{
			Kind:     notification.EventUnassigned,
			ShiftID:  shift.ID,
			WorkerID: previous,
		})
	}
	c.JSON(http.StatusOK, shift)
}
