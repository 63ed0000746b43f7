package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roster-backend/internal/roster"
)

// abortWithError maps an engine error to an HTTP response. Every error
// body carries "error" plus a machine-readable "kind" (and detail
// fields where the taxonomy has them) so callers can branch without
// parsing messages.
func abortWithError(c *gin.Context, err error) {
	var notFound *roster.NotFoundError
	var invalidState *roster.InvalidStateTransitionError
	var missingSkills *roster.MissingSkillsError
	var blackout *roster.BlackoutConflictError
	var doubleBooking *roster.DoubleBookingError
	var staleRevision *roster.StaleRevisionError
	var validation *roster.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
			"kind":  "not_found",
		})
	case errors.As(err, &invalidState):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  err.Error(),
			"kind":   "invalid_state_transition",
			"status": invalidState.Status,
		})
	case errors.As(err, &missingSkills):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":         err.Error(),
			"kind":          "missing_skills",
			"missingSkills": missingSkills.Missing,
		})
	case errors.As(err, &blackout):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"kind":  "blackout_conflict",
		})
	case errors.As(err, &doubleBooking):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":              err.Error(),
			"kind":               "double_booking",
			"conflictingShiftId": doubleBooking.ConflictingShiftID,
		})
	case errors.As(err, &staleRevision):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":            err.Error(),
			"kind":             "stale_revision",
			"expectedRevision": staleRevision.Expected,
			"actualRevision":   staleRevision.Actual,
		})
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"kind":  "validation",
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"kind":  "internal",
		})
	}
}
