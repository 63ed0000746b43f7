package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roster-backend/internal/notification"
	"roster-backend/internal/solver"
)

type optimizeRequest struct {
	TeamID string `json:"teamId" binding:"required"`
	From   string `json:"from" binding:"required"` // YYYY-MM-DD
	To     string `json:"to" binding:"required"`   // YYYY-MM-DD
	Apply  bool   `json:"apply"`
}

// Optimize handles POST /api/optimize: builds the solver payload from
// database state, runs the solver, and optionally replays the
// proposals through the assignment engine.
func (h *Handler) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	payload, err := solver.BuildRequest(ctx, h.store, h.cfg.Solver, req.TeamID, req.From, req.To)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp, err := h.solver.Optimize(ctx, payload)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "kind": "solver_unavailable"})
		return
	}

	result := gin.H{"result": resp}
	if req.Apply {
		report := solver.Apply(ctx, h.store, resp)
		for _, proposal := range resp.Assignments {
			failed := false
			for _, f := range report.Failures {
				if f.ShiftID == proposal.ShiftID {
					failed = true
					break
				}
			}
			if !failed && resp.Status.Applicable() {
				h.dispatch(notification.Event{
					Kind:     notification.EventAssigned,
					ShiftID:  proposal.ShiftID,
					WorkerID: proposal.EmployeeID,
				})
			}
		}
		result["applied"] = report
	}
	c.JSON(http.StatusOK, result)
}

type applyRequest struct {
	Result solver.OptimizeResponse `json:"result" binding:"required"`
}

// ApplyOptimization handles POST /api/optimize/apply for callers that
// solved earlier and apply later.
func (h *Handler) ApplyOptimization(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	report := solver.Apply(c.Request.Context(), h.store, &req.Result)
	c.JSON(http.StatusOK, report)
}

// SolverHealth handles GET /api/solver/health.
func (h *Handler) SolverHealth(c *gin.Context) {
	health, err := h.solver.Health(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "kind": "solver_unavailable"})
		return
	}
	c.JSON(http.StatusOK, health)
}
