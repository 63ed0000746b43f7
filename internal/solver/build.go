package solver

import (
	"context"
	"fmt"
	"time"

	"roster-backend/config"
	"roster-backend/internal/model"
	"roster-backend/internal/store"
)

// BuildRequest assembles an optimizer payload from database state: the
// team's members with their skills and availability in range, plus the
// team's OPEN shifts between from and to (inclusive dates, YYYY-MM-DD).
func BuildRequest(ctx context.Context, st store.Store, cfg config.SolverConfig, teamID, from, to string) (*OptimizeRequest, error) {
	team, err := st.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	fromAt, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	toAt, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	// Windows on the last day still count.
	toAt = toAt.AddDate(0, 0, 1)

	employees := make([]Employee, 0, len(team.Members))
	for i := range team.Members {
		member := &team.Members[i]

		windows, err := st.WindowsForWorker(ctx, member.ID, fromAt, toAt)
		if err != nil {
			return nil, err
		}

		availability := make([]Window, 0, len(windows))
		for _, w := range windows {
			availability = append(availability, Window{
				Start: w.StartAt.Format(time.RFC3339),
				End:   w.EndAt.Format(time.RFC3339),
				Type:  string(w.Kind),
			})
		}

		skills := make([]string, 0, len(member.Skills))
		for _, s := range member.Skills {
			skills = append(skills, s.Code)
		}

		employees = append(employees, Employee{
			ID:           member.ID,
			Skills:       skills,
			Availability: availability,
			Preferences:  map[string]float64{},
		})
	}

	shifts, err := st.ListShifts(ctx, store.ShiftFilter{
		TeamID: teamID,
		From:   from,
		To:     to,
		Status: model.StatusOpen,
	})
	if err != nil {
		return nil, err
	}

	openShifts := make([]OpenShift, 0, len(shifts))
	for _, s := range shifts {
		openShifts = append(openShifts, OpenShift{
			ID:             s.ID,
			Day:            s.Date,
			ShiftCode:      s.ShiftCode,
			RequiredSkills: s.RequiredSkills,
			DurationHours:  s.DurationHours,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
		})
	}

	return &OptimizeRequest{
		TeamID:     teamID,
		DateFrom:   from,
		DateTo:     to,
		Employees:  employees,
		OpenShifts: openShifts,
		Settings: Settings{
			UnassignedPenalty: cfg.UnassignedPenalty,
			MaxShiftsPerDay:   cfg.MaxShiftsPerDay,
			TimeoutSeconds:    cfg.TimeoutSeconds,
			Weights: Weights{
				Preferred: cfg.PreferredWeight,
				Neutral:   cfg.NeutralWeight,
				Avoided:   cfg.AvoidedWeight,
			},
		},
	}, nil
}
