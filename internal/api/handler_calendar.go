package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roster-backend/internal/model"
	"roster-backend/internal/store"
)

// calendarEvent is the flattened structure calendar clients render.
type calendarEvent struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Start          string            `json:"start"`
	End            string            `json:"end"`
	ShiftCode      string            `json:"shiftCode"`
	Status         model.ShiftStatus `json:"status"`
	AssignedWorker *string           `json:"assignedWorkerId"`
	RequiredSkills []string          `json:"requiredSkills"`
	Revision       int               `json:"revision"`
}

// GetCalendar handles GET /api/calendar?teamId&from&to, returning the
// team's shifts as calendar events plus summary counts.
func (h *Handler) GetCalendar(c *gin.Context) {
	teamID := c.Query("teamId")
	if teamID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "teamId is required"})
		return
	}

	ctx := c.Request.Context()
	team, err := h.store.GetTeam(ctx, teamID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	shifts, err := h.store.ListShifts(ctx, store.ShiftFilter{
		TeamID: teamID,
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	events := make([]calendarEvent, 0, len(shifts))
	var open, assigned int
	for i := range shifts {
		s := &shifts[i]

		title := "Open Shift"
		if s.AssignedWorker != nil {
			title = s.AssignedWorker.FirstName + " " + s.AssignedWorker.LastName
		}

		switch s.Status {
		case model.StatusOpen:
			open++
		case model.StatusAssigned:
			assigned++
		}

		events = append(events, calendarEvent{
			ID:             s.ID,
			Title:          title,
			Start:          s.StartAt.Format(time.RFC3339),
			End:            s.EndAt.Format(time.RFC3339),
			ShiftCode:      s.ShiftCode,
			Status:         s.Status,
			AssignedWorker: s.AssignedWorkerID,
			RequiredSkills: s.RequiredSkills,
			Revision:       s.Revision,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"meta": gin.H{
			"teamId":         teamID,
			"teamName":       team.Name,
			"totalShifts":    len(shifts),
			"openShifts":     open,
			"assignedShifts": assigned,
		},
	})
}
